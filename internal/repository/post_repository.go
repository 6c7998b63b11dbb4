package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"goforum/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Model(&model.Post{}).
		Select("posts.*, users.username AS author_username, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) List(offset, limit int) ([]model.Post, error) {
	return r.list(r.feedQuery(), "posts.created_at DESC", offset, limit)
}

func (r *PostRepository) ListByUserID(userID uint, offset, limit int) ([]model.Post, error) {
	return r.list(r.feedQuery().Where("posts.user_id = ?", userID), "posts.created_at DESC", offset, limit)
}

// ListHot ranks by comment count with creation time as the tie-break so
// pages stay stable under pagination.
func (r *PostRepository) ListHot(offset, limit int) ([]model.Post, error) {
	return r.list(r.feedQuery(), "comment_count DESC, posts.created_at DESC", offset, limit)
}

func (r *PostRepository) Save(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("save post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) feedQuery() *gorm.DB {
	return r.db.Model(&model.Post{}).
		Select("posts.*, users.username AS author_username, COUNT(comments.id) AS comment_count").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id, users.username")
}

func (r *PostRepository) list(query *gorm.DB, order string, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := query.Order(order).Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}
