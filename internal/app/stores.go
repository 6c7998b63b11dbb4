package app

import (
	"context"

	"goforum/internal/model"
)

// Store interfaces are what the services consume; the gorm repositories
// in internal/repository satisfy them, and tests substitute in-memory
// fakes.

type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	Exists(id uint) (bool, error)
	ListWithPostCount() ([]model.User, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	List(offset, limit int) ([]model.Post, error)
	ListByUserID(userID uint, offset, limit int) ([]model.Post, error)
	ListHot(offset, limit int) ([]model.Post, error)
	Save(post *model.Post) error
	Delete(id uint) error
}

type CommentStore interface {
	Create(comment *model.Comment) error
	GetByID(id uint) (*model.Comment, error)
	ListByPostID(postID uint) ([]model.Comment, error)
	ListByUserID(userID uint) ([]model.Comment, error)
	Save(comment *model.Comment) error
	Delete(id uint) error
}

type ActivityStore interface {
	Create(activity *model.Activity) error
	ListRecent(limit int) ([]model.Activity, error)
}

// ActivityPublisher hands audit events to the message broker; the
// worker persists them out of band.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

// FeedCache caches assembled hot-feed pages.
type FeedCache interface {
	GetPage(ctx context.Context, page, limit int) ([]model.Post, bool, error)
	SetPage(ctx context.Context, page, limit int, posts []model.Post) error
	Invalidate(ctx context.Context) error
}
