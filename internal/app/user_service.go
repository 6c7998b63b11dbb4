package app

import (
	"context"
	"errors"
	"strings"

	"goforum/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("operation not permitted")
)

type UserService struct {
	users     UserStore
	publisher ActivityPublisher
}

// UpdateUserInput carries the sparse field set of a profile update;
// nil means "leave unchanged".
type UpdateUserInput struct {
	Username *string
	Password *string
	IsActive *bool
	Role     *model.Role
}

func NewUserService(users UserStore, publisher ActivityPublisher) *UserService {
	return &UserService{users: users, publisher: publisher}
}

func (s *UserService) List() ([]model.User, error) {
	return s.users.ListWithPostCount()
}

func (s *UserService) Get(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update enforces the profile mutation rules: admins are immutable to
// non-admins, only self or an admin may update a profile, only admins
// may change roles, and an admin can never be deactivated.
func (s *UserService) Update(targetID, requesterID uint, input UpdateUserInput) (*model.User, error) {
	if targetID == 0 || requesterID == 0 {
		return nil, ErrInvalidInput
	}

	target, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		return nil, err
	}
	requesterIsAdmin := requester != nil && requester.Role == model.RoleAdmin

	if target.Role == model.RoleAdmin && !requesterIsAdmin {
		return nil, ErrForbidden
	}
	if requesterID != targetID && !requesterIsAdmin {
		return nil, ErrForbidden
	}
	if input.Role != nil && !requesterIsAdmin {
		return nil, ErrForbidden
	}
	if input.IsActive != nil && !*input.IsActive && target.Role == model.RoleAdmin {
		return nil, ErrForbidden
	}

	fields := make(map[string]interface{})
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrInvalidInput
		}
		fields["username"] = username
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidInput
		}
		fields["role"] = *input.Role
	}

	if err := s.users.UpdateFields(targetID, fields); err != nil {
		return nil, err
	}

	s.publish(requesterID, model.ActionUpdated, model.TargetTypeUser, targetID)
	return s.users.GetByID(targetID)
}

// Delete removes a user account. Admin accounts are never deletable,
// not even by themselves.
func (s *UserService) Delete(targetID, requesterID uint) error {
	if targetID == 0 || requesterID == 0 {
		return ErrInvalidInput
	}

	target, err := s.users.GetByID(targetID)
	if err != nil {
		return err
	}
	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		return err
	}

	if target == nil {
		return ErrUserNotFound
	}
	if requester == nil {
		return ErrForbidden
	}
	if target.ID != requesterID && requester.Role != model.RoleAdmin {
		return ErrForbidden
	}
	if target.Role == model.RoleAdmin {
		return ErrForbidden
	}

	if err := s.users.Delete(targetID); err != nil {
		return err
	}

	s.publish(requesterID, model.ActionDeleted, model.TargetTypeUser, targetID)
	return nil
}

func (s *UserService) publish(actorID uint, action, targetType string, targetID uint) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), model.Activity{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	})
}
