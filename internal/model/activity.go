package model

import "time"

// Activity is an audit record of a mutating action, persisted
// asynchronously by the activity worker.
type Activity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	Action     string    `gorm:"size:32;not null" json:"action"`
	TargetType string    `gorm:"size:16;not null" json:"target_type"`
	TargetID   uint      `gorm:"not null" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	TargetTypeUser    = "user"
	TargetTypePost    = "post"
	TargetTypeComment = "comment"
)
