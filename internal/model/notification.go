package model

import "time"

// Notification types. These are stored as strings in the
// notifications.type column and reused as the event type on the
// message queue.
const (
	NotificationNewFollower = "NEW_FOLLOWER"
	NotificationNewLike     = "NEW_LIKE"
	NotificationNewComment  = "NEW_COMMENT"
)

// Notification is a row in the `notifications` table. Notifications
// are created only as a side effect of social and engagement
// mutations, never directly by a client. The recipient may flip the
// read flag and delete their own notifications; nothing else is
// mutable.
//
// Fields:
//  ID          – primary key identifier.
//  RecipientID – user the notification belongs to.
//  Type        – one of the Notification* constants above.
//  EmitterID   – user whose action caused the notification (nullable).
//  RecipeID    – recipe the notification refers to (nullable; unset
//                for new-follower notifications).
//  Message     – rendered human-readable text.
//  Read        – whether the recipient has seen it.
//  CreatedAt   – creation timestamp.
type Notification struct {
	ID          uint64    // notifications.id
	RecipientID uint64    // notifications.recipient_id
	Type        string    // notifications.type
	EmitterID   *uint64   // notifications.emitter_id (nullable)
	RecipeID    *uint64   // notifications.recipe_id (nullable)
	Message     string    // notifications.message
	Read        bool      // notifications.read
	CreatedAt   time.Time // notifications.created_at
}
