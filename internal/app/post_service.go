package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"goforum/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

const (
	maxTitleLen   = 200
	maxContentLen = 5000

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type PostService struct {
	posts     PostStore
	users     UserStore
	feedCache FeedCache
	publisher ActivityPublisher
}

type CreatePostInput struct {
	Title   string
	Content string
	UserID  uint
}

type UpdatePostInput struct {
	Title   *string
	Content *string
}

// PageOptions is the pagination window requested by the caller; zero
// values fall back to the defaults.
type PageOptions struct {
	Page  int
	Limit int
}

func (o PageOptions) normalize() (offset, limit int) {
	page := o.Page
	if page < 1 {
		page = defaultPage
	}
	limit = o.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return (page - 1) * limit, limit
}

func NewPostService(posts PostStore, users UserStore, feedCache FeedCache, publisher ActivityPublisher) *PostService {
	return &PostService{
		posts:     posts,
		users:     users,
		feedCache: feedCache,
		publisher: publisher,
	}
}

func (s *PostService) Create(input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if input.UserID == 0 || title == "" || len(title) > maxTitleLen || len(input.Content) > maxContentLen {
		return nil, ErrInvalidInput
	}

	exists, err := s.users.Exists(input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	post := &model.Post{
		Title:   title,
		Content: input.Content,
		UserID:  input.UserID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	s.invalidateFeed()
	s.publish(input.UserID, model.ActionCreated, post.ID)
	return post, nil
}

func (s *PostService) Get(id uint) (*model.Post, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) List(opts PageOptions) ([]model.Post, error) {
	offset, limit := opts.normalize()
	return s.posts.List(offset, limit)
}

func (s *PostService) ListByUser(userID uint, opts PageOptions) ([]model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	offset, limit := opts.normalize()
	return s.posts.ListByUserID(userID, offset, limit)
}

// ListHot serves comment-count-ranked pages through the redis cache;
// a cache failure falls through to the database.
func (s *PostService) ListHot(opts PageOptions) ([]model.Post, error) {
	offset, limit := opts.normalize()
	page := offset/limit + 1

	ctx := context.Background()
	if s.feedCache != nil {
		if cached, hit, err := s.feedCache.GetPage(ctx, page, limit); err == nil && hit {
			return cached, nil
		}
	}

	posts, err := s.posts.ListHot(offset, limit)
	if err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		if err := s.feedCache.SetPage(ctx, page, limit, posts); err != nil {
			log.Printf("cache hot feed page failed: %v", err)
		}
	}
	return posts, nil
}

// Update lets the owner or an admin edit title and content.
func (s *PostService) Update(postID, requesterID uint, input UpdatePostInput) (*model.Post, error) {
	if postID == 0 || requesterID == 0 {
		return nil, ErrInvalidInput
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := s.authorize(post.UserID, requesterID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > maxTitleLen {
			return nil, ErrInvalidInput
		}
		post.Title = title
	}
	if input.Content != nil {
		if len(*input.Content) > maxContentLen {
			return nil, ErrInvalidInput
		}
		post.Content = *input.Content
	}

	if err := s.posts.Save(post); err != nil {
		return nil, err
	}

	s.publish(requesterID, model.ActionUpdated, post.ID)
	return post, nil
}

func (s *PostService) Delete(postID, requesterID uint) error {
	if postID == 0 || requesterID == 0 {
		return ErrInvalidInput
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.authorize(post.UserID, requesterID); err != nil {
		return err
	}

	if err := s.posts.Delete(postID); err != nil {
		return err
	}

	s.invalidateFeed()
	s.publish(requesterID, model.ActionDeleted, postID)
	return nil
}

func (s *PostService) authorize(ownerID, requesterID uint) error {
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

func (s *PostService) invalidateFeed() {
	if s.feedCache == nil {
		return
	}
	if err := s.feedCache.Invalidate(context.Background()); err != nil {
		log.Printf("invalidate feed cache failed: %v", err)
	}
}

func (s *PostService) publish(actorID uint, action string, postID uint) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), model.Activity{
		ActorID:    actorID,
		Action:     action,
		TargetType: model.TargetTypePost,
		TargetID:   postID,
	})
}
