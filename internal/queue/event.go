// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationEvent is published whenever a social or engagement
// mutation creates a notification. It carries enough information for
// downstream consumers to log or fan out to push/email channels
// without querying the primary database. The Type field reuses the
// model.Notification* constants.
type NotificationEvent struct {
	NotificationID uint64 `json:"notification_id"`
	Type           string `json:"type"`
	RecipientID    uint64 `json:"recipient_id"`
	EmitterID      uint64 `json:"emitter_id"`
	EmitterName    string `json:"emitter_name"`
	RecipeID       uint64 `json:"recipe_id,omitempty"`
	RecipeTitle    string `json:"recipe_title,omitempty"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
}
