package model

import "time"

// FollowEdge is a row in the `followers` table. The ordered pair
// (FollowerID, FolloweeID) is the whole identity; there is no
// surrogate key because the only operations are existence check,
// insert and delete. The schema enforces at most one edge per pair
// and the service layer rejects FollowerID == FolloweeID.
type FollowEdge struct {
	FollowerID uint64    // followers.follower_id
	FolloweeID uint64    // followers.followee_id
	CreatedAt  time.Time // followers.created_at
}
