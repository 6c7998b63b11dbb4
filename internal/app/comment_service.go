package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"goforum/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService struct {
	comments  CommentStore
	posts     PostStore
	users     UserStore
	feedCache FeedCache
	publisher ActivityPublisher
}

type CreateCommentInput struct {
	Content string
	UserID  uint
	PostID  uint
}

func NewCommentService(comments CommentStore, posts PostStore, users UserStore, feedCache FeedCache, publisher ActivityPublisher) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		users:     users,
		feedCache: feedCache,
		publisher: publisher,
	}
}

func (s *CommentService) Create(input CreateCommentInput) (*model.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if input.UserID == 0 || input.PostID == 0 || content == "" || len(content) > maxContentLen {
		return nil, ErrInvalidInput
	}

	exists, err := s.users.Exists(input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	post, err := s.posts.GetByID(input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Content: content,
		UserID:  input.UserID,
		PostID:  input.PostID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	s.invalidateFeed()
	s.publish(input.UserID, model.ActionCreated, comment.ID)
	return comment, nil
}

func (s *CommentService) ListByPost(postID uint) ([]model.Comment, error) {
	if postID == 0 {
		return nil, ErrInvalidInput
	}
	return s.comments.ListByPostID(postID)
}

func (s *CommentService) ListByUser(userID uint) ([]model.Comment, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.comments.ListByUserID(userID)
}

// Update lets the comment owner or an admin replace the content.
func (s *CommentService) Update(commentID, requesterID uint, content string) (*model.Comment, error) {
	if commentID == 0 || requesterID == 0 {
		return nil, ErrInvalidInput
	}
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxContentLen {
		return nil, ErrInvalidInput
	}

	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	if err := s.authorize(comment.UserID, requesterID); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.comments.Save(comment); err != nil {
		return nil, err
	}

	s.publish(requesterID, model.ActionUpdated, comment.ID)
	return comment, nil
}

func (s *CommentService) Delete(commentID, requesterID uint) error {
	if commentID == 0 || requesterID == 0 {
		return ErrInvalidInput
	}

	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if err := s.authorize(comment.UserID, requesterID); err != nil {
		return err
	}

	if err := s.comments.Delete(commentID); err != nil {
		return err
	}

	s.invalidateFeed()
	s.publish(requesterID, model.ActionDeleted, commentID)
	return nil
}

func (s *CommentService) authorize(ownerID, requesterID uint) error {
	if ownerID == requesterID {
		return nil
	}
	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		return err
	}
	if requester == nil || requester.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *CommentService) invalidateFeed() {
	if s.feedCache == nil {
		return
	}
	if err := s.feedCache.Invalidate(context.Background()); err != nil {
		log.Printf("invalidate feed cache failed: %v", err)
	}
}

func (s *CommentService) publish(actorID uint, action string, commentID uint) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), model.Activity{
		ActorID:    actorID,
		Action:     action,
		TargetType: model.TargetTypeComment,
		TargetID:   commentID,
	})
}
