package model

import "time"

// Recipe is a row in the `recipes` table. Only the columns the
// engagement and browse features need are mapped here; ingredient,
// step and category detail lives with their own services.
//
// Fields:
//  ID          – primary key identifier.
//  AuthorID    – user who published the recipe.
//  Title       – recipe title, used in notification messages.
//  Description – free-text body.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Recipe struct {
	ID          uint64    // recipes.id
	AuthorID    uint64    // recipes.author_id
	Title       string    // recipes.title
	Description string    // recipes.description
	CreatedAt   time.Time // recipes.created_at
	UpdatedAt   time.Time // recipes.updated_at
}
