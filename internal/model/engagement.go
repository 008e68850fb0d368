package model

import "time"

// LikeEdge is a row in the `recipe_likes` table. Like FollowEdge,
// the pair (UserID, RecipeID) is the sole identity; the table's
// primary key spans both columns.
type LikeEdge struct {
	UserID    uint64    // recipe_likes.user_id
	RecipeID  uint64    // recipe_likes.recipe_id
	CreatedAt time.Time // recipe_likes.created_at
}

// Rating is a row in the `ratings` table. Unlike the edge tables it
// carries a surrogate ID because Score and RatedAt are mutable: a
// second rating by the same user overwrites the row in place. The
// schema keeps (UserID, RecipeID) unique so the upsert can never
// produce two rows for a pair.
//
// Fields:
//  ID       – surrogate primary key.
//  UserID   – user who rated.
//  RecipeID – recipe being rated.
//  Score    – integer score, inclusive range 1..5.
//  RatedAt  – time of the most recent (re-)rating.
type Rating struct {
	ID       uint64    // ratings.id
	UserID   uint64    // ratings.user_id
	RecipeID uint64    // ratings.recipe_id
	Score    int       // ratings.score
	RatedAt  time.Time // ratings.rated_at
}

// Comment is a row in the `comments` table.
type Comment struct {
	ID        uint64    // comments.id
	UserID    uint64    // comments.user_id
	RecipeID  uint64    // comments.recipe_id
	Text      string    // comments.text
	CreatedAt time.Time // comments.created_at
}
