package model

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by the aggregating feed queries, not columns.
	AuthorUsername string `gorm:"->;-:migration" json:"author_username,omitempty"`
	CommentCount   int64  `gorm:"->;-:migration" json:"comment_count"`
}
