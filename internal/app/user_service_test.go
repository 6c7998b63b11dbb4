package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goforum/internal/model"
)

func seedUser(t *testing.T, users *fakeUserStore, username string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, users.Create(user))
	return user
}

func strptr(s string) *string          { return &s }
func boolptr(b bool) *bool             { return &b }
func roleptr(r model.Role) *model.Role { return &r }

func TestUserUpdateRules(t *testing.T) {
	tests := []struct {
		name      string
		target    model.Role
		requester model.Role
		self      bool
		input     UpdateUserInput
		wantErr   error
	}{
		{
			name:      "self update username",
			target:    model.RoleUser,
			requester: model.RoleUser,
			self:      true,
			input:     UpdateUserInput{Username: strptr("renamed")},
		},
		{
			name:      "other regular user denied",
			target:    model.RoleUser,
			requester: model.RoleUser,
			input:     UpdateUserInput{Username: strptr("renamed")},
			wantErr:   ErrForbidden,
		},
		{
			name:      "admin updates regular user",
			target:    model.RoleUser,
			requester: model.RoleAdmin,
			input:     UpdateUserInput{Username: strptr("renamed")},
		},
		{
			name:      "non-admin cannot touch admin",
			target:    model.RoleAdmin,
			requester: model.RoleUser,
			input:     UpdateUserInput{Username: strptr("renamed")},
			wantErr:   ErrForbidden,
		},
		{
			name:      "admin updates admin",
			target:    model.RoleAdmin,
			requester: model.RoleAdmin,
			input:     UpdateUserInput{Username: strptr("renamed")},
		},
		{
			name:      "regular user cannot grant roles",
			target:    model.RoleUser,
			requester: model.RoleUser,
			self:      true,
			input:     UpdateUserInput{Role: roleptr(model.RoleAdmin)},
			wantErr:   ErrForbidden,
		},
		{
			name:      "admin grants admin role",
			target:    model.RoleUser,
			requester: model.RoleAdmin,
			input:     UpdateUserInput{Role: roleptr(model.RoleAdmin)},
		},
		{
			name:      "admin cannot be deactivated",
			target:    model.RoleAdmin,
			requester: model.RoleAdmin,
			input:     UpdateUserInput{IsActive: boolptr(false)},
			wantErr:   ErrForbidden,
		},
		{
			name:      "admin deactivates regular user",
			target:    model.RoleUser,
			requester: model.RoleAdmin,
			input:     UpdateUserInput{IsActive: boolptr(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserStore()
			svc := NewUserService(users, &recordingPublisher{})

			target := seedUser(t, users, "target", tt.target)
			requesterID := target.ID
			if !tt.self {
				requesterID = seedUser(t, users, "requester", tt.requester).ID
			}

			updated, err := svc.Update(target.ID, requesterID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, updated)

			if tt.input.Username != nil {
				assert.Equal(t, *tt.input.Username, updated.Username)
			}
			if tt.input.Role != nil {
				assert.Equal(t, *tt.input.Role, updated.Role)
			}
			if tt.input.IsActive != nil {
				assert.Equal(t, *tt.input.IsActive, updated.IsActive)
			}
		})
	}
}

func TestUserUpdateMissingTarget(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, &recordingPublisher{})
	requester := seedUser(t, users, "requester", model.RoleAdmin)

	_, err := svc.Update(999, requester.ID, UpdateUserInput{Username: strptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, &recordingPublisher{})
	target := seedUser(t, users, "alice", model.RoleUser)
	oldHash := target.PasswordHash

	updated, err := svc.Update(target.ID, target.ID, UpdateUserInput{Password: strptr("new-password")})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
}

func TestUserDeleteRules(t *testing.T) {
	tests := []struct {
		name      string
		target    model.Role
		requester model.Role
		self      bool
		wantErr   error
	}{
		{name: "self delete", target: model.RoleUser, requester: model.RoleUser, self: true},
		{name: "admin deletes regular user", target: model.RoleUser, requester: model.RoleAdmin},
		{name: "other regular user denied", target: model.RoleUser, requester: model.RoleUser, wantErr: ErrForbidden},
		{name: "admin never deletable by admin", target: model.RoleAdmin, requester: model.RoleAdmin, wantErr: ErrForbidden},
		{name: "admin never deletable by self", target: model.RoleAdmin, requester: model.RoleAdmin, self: true, wantErr: ErrForbidden},
		{name: "admin never deletable by regular user", target: model.RoleAdmin, requester: model.RoleUser, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserStore()
			svc := NewUserService(users, &recordingPublisher{})

			target := seedUser(t, users, "target", tt.target)
			requesterID := target.ID
			if !tt.self {
				requesterID = seedUser(t, users, "requester", tt.requester).ID
			}

			err := svc.Delete(target.ID, requesterID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				still, _ := users.GetByID(target.ID)
				assert.NotNil(t, still, "target must survive a denied delete")
				return
			}
			require.NoError(t, err)
			gone, _ := users.GetByID(target.ID)
			assert.Nil(t, gone)
		})
	}
}

func TestUserDeleteMissingParties(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, &recordingPublisher{})
	target := seedUser(t, users, "target", model.RoleUser)

	assert.ErrorIs(t, svc.Delete(999, target.ID), ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(target.ID, 999), ErrForbidden)
}

func TestUserListIncludesEveryAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, &recordingPublisher{})
	seedUser(t, users, "a", model.RoleUser)
	seedUser(t, users, "b", model.RoleAdmin)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
