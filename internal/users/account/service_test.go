// Copyright (c) 2026 Cinelog. All rights reserved.

package account_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/catalog/movie"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/users/account"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepo struct {
	users map[string]*auth.User // keyed by public ID
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*auth.User)}
	for _, u := range users {
		copy := *u
		repo.users[u.PublicID] = &copy
	}
	return repo
}

func (r *fakeUserRepo) FindByPublicID(_ context.Context, publicID string) (*auth.User, error) {
	u, ok := r.users[publicID]
	if !ok {
		return nil, auth.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*auth.User, error) {
	out := make([]*auth.User, 0, len(r.users))
	for _, u := range r.users {
		copy := *u
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	copy := *user
	r.users[user.PublicID] = &copy
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	for id, u := range r.users {
		if u.ID == user.ID {
			copy := *user
			r.users[id] = &copy
			return nil
		}
	}
	return auth.ErrNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	for publicID, u := range r.users {
		if u.ID == id {
			delete(r.users, publicID)
			return nil
		}
	}
	return auth.ErrNotFound
}

type fakeLikes struct {
	byUser map[int64][]*movie.Movie
}

func (l *fakeLikes) LikedBy(_ context.Context, userID int64) ([]*movie.Movie, error) {
	return l.byUser[userID], nil
}

// # Fixtures

var (
	owner = &auth.User{ID: 1, PublicID: "owner-public-id", Username: "marta", DisplayName: "Marta"}
	other = &auth.User{ID: 2, PublicID: "other-public-id", Username: "joao", DisplayName: "João"}
	root  = &auth.User{ID: 3, PublicID: "root-public-id", Username: "root", Admin: true}
)

func newTestService(likes *fakeLikes) (*account.Service, *fakeUserRepo) {
	repo := newFakeUserRepo(owner, other, root)
	if likes == nil {
		likes = &fakeLikes{}
	}
	return account.NewService(repo, likes), repo
}

// # Ownership Matrix

/*
TestGetProfile_Ownership walks the access matrix: owners and admins pass,
cross-user members are a 403, unknown targets a 404 regardless of caller.
*/
func TestGetProfile_Ownership(t *testing.T) {
	tests := []struct {
		name        string
		caller      *auth.User
		target      string
		wantStatus  int
		wantMessage string
	}{
		{"owner_reads_self", owner, owner.PublicID, 0, ""},
		{"admin_reads_anyone", root, owner.PublicID, 0, ""},
		{
			name:        "member_reads_other",
			caller:      other,
			target:      owner.PublicID,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Forbidden access for the current user",
		},
		{
			name:        "unknown_target",
			caller:      root,
			target:      "ghost",
			wantStatus:  http.StatusNotFound,
			wantMessage: "User information not found",
		},
		{
			// Existence wins over ownership: the 404 leaks nothing the
			// profile listing would not.
			name:        "member_probes_unknown",
			caller:      other,
			target:      "ghost",
			wantStatus:  http.StatusNotFound,
			wantMessage: "User information not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(nil)

			user, err := service.GetProfile(context.Background(), tt.caller, tt.target)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.target, user.PublicID)
				return
			}

			assert.Nil(t, user)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.StatusCode)
			assert.Equal(t, tt.wantMessage, ae.Message)
		})
	}
}

/*
TestUpdateProfile verifies the display name update and its access control.
*/
func TestUpdateProfile(t *testing.T) {
	service, repo := newTestService(nil)

	// 1. Owner updates their own display name
	updated, err := service.UpdateProfile(context.Background(), owner, owner.PublicID, "Marta V.")
	require.NoError(t, err)
	assert.Equal(t, "Marta V.", updated.DisplayName)

	stored, _ := repo.FindByPublicID(context.Background(), owner.PublicID)
	assert.Equal(t, "Marta V.", stored.DisplayName)

	// 2. Cross-user update is forbidden
	_, err = service.UpdateProfile(context.Background(), other, owner.PublicID, "Hacked")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.StatusCode)

	// 3. Admin may update anyone
	_, err = service.UpdateProfile(context.Background(), root, other.PublicID, "João P.")
	assert.NoError(t, err)
}

/*
TestLikedMovies verifies the liked listing with the same access rules.
*/
func TestLikedMovies(t *testing.T) {
	likes := &fakeLikes{byUser: map[int64][]*movie.Movie{
		owner.ID: {
			{PublicID: "m1", Title: "Stalker", Likes: 3},
			{PublicID: "m2", Title: "Yi Yi", Likes: 1},
		},
	}}
	service, _ := newTestService(likes)

	// 1. Owner sees their likes
	movies, err := service.LikedMovies(context.Background(), owner, owner.PublicID)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Stalker", movies[0].Title)

	// 2. A user with no likes gets an empty list, not an error
	movies, err = service.LikedMovies(context.Background(), other, other.PublicID)
	require.NoError(t, err)
	assert.Empty(t, movies)

	// 3. Cross-user access is forbidden
	_, err = service.LikedMovies(context.Background(), other, owner.PublicID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.StatusCode)
	assert.Equal(t, "Users can only retrieve their own information.", ae.Description)
}
