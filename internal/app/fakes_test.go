package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"goforum/internal/model"
)

// In-memory stand-ins for the gorm repositories. They mirror the
// repository contract: (nil, nil) on not-found, copies on read.

type fakeUserStore struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]model.User)}
}

func (s *fakeUserStore) Create(user *model.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Exists(id uint) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s *fakeUserStore) ListWithPostCount() ([]model.User, error) {
	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *fakeUserStore) UpdateFields(id uint, fields map[string]interface{}) error {
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	for column, value := range fields {
		switch column {
		case "username":
			user.Username = value.(string)
		case "password_hash":
			user.PasswordHash = value.(string)
		case "is_active":
			user.IsActive = value.(bool)
		case "role":
			user.Role = value.(model.Role)
		}
	}
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) Delete(id uint) error {
	delete(s.users, id)
	return nil
}

type fakePostStore struct {
	posts  map[uint]model.Post
	nextID uint
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[uint]model.Post)}
}

func (s *fakePostStore) Create(post *model.Post) error {
	s.nextID++
	post.ID = s.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (s *fakePostStore) List(offset, limit int) ([]model.Post, error) {
	return window(s.sorted(func(a, b model.Post) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), offset, limit), nil
}

func (s *fakePostStore) ListByUserID(userID uint, offset, limit int) ([]model.Post, error) {
	all := s.sorted(func(a, b model.Post) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	filtered := all[:0:0]
	for _, post := range all {
		if post.UserID == userID {
			filtered = append(filtered, post)
		}
	}
	return window(filtered, offset, limit), nil
}

func (s *fakePostStore) ListHot(offset, limit int) ([]model.Post, error) {
	return window(s.sorted(func(a, b model.Post) bool {
		if a.CommentCount != b.CommentCount {
			return a.CommentCount > b.CommentCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	}), offset, limit), nil
}

func (s *fakePostStore) Save(post *model.Post) error {
	post.UpdatedAt = time.Now()
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) Delete(id uint) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) sorted(less func(a, b model.Post) bool) []model.Post {
	posts := make([]model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return less(posts[i], posts[j]) })
	return posts
}

func window(posts []model.Post, offset, limit int) []model.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

type fakeCommentStore struct {
	comments map[uint]model.Comment
	nextID   uint
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[uint]model.Comment)}
}

func (s *fakeCommentStore) Create(comment *model.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeCommentStore) GetByID(id uint) (*model.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (s *fakeCommentStore) ListByPostID(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *fakeCommentStore) ListByUserID(userID uint) ([]model.Comment, error) {
	var comments []model.Comment
	for _, comment := range s.comments {
		if comment.UserID == userID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (s *fakeCommentStore) Save(comment *model.Comment) error {
	comment.UpdatedAt = time.Now()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeCommentStore) Delete(id uint) error {
	delete(s.comments, id)
	return nil
}

type recordingPublisher struct {
	published []model.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, activity model.Activity) error {
	p.published = append(p.published, activity)
	return nil
}

type fakeFeedCache struct {
	pages         map[string][]model.Post
	invalidations int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{pages: make(map[string][]model.Post)}
}

func (c *fakeFeedCache) GetPage(_ context.Context, page, limit int) ([]model.Post, bool, error) {
	posts, ok := c.pages[fmt.Sprintf("%d:%d", page, limit)]
	return posts, ok, nil
}

func (c *fakeFeedCache) SetPage(_ context.Context, page, limit int, posts []model.Post) error {
	c.pages[fmt.Sprintf("%d:%d", page, limit)] = posts
	return nil
}

func (c *fakeFeedCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.pages = make(map[string][]model.Post)
	return nil
}
