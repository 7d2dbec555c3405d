package service

import (
	"context"
	"testing"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGigService_CreateGig(t *testing.T) {
	store := newFakeStore()
	store.addUser("client1", "Client One", "client1@example.com")
	svc := newTestGigService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   *entity.CreateGigInput
		wantErr error
	}{
		{
			name:    "empty title",
			input:   &entity.CreateGigInput{Title: "", Description: "desc", Budget: 100, OwnerUsername: "client1"},
			wantErr: ErrInvalidGigInput,
		},
		{
			name:    "non-positive budget",
			input:   &entity.CreateGigInput{Title: "Gig", Description: "desc", Budget: 0, OwnerUsername: "client1"},
			wantErr: ErrInvalidGigInput,
		},
		{
			name:    "unknown owner",
			input:   &entity.CreateGigInput{Title: "Gig", Description: "desc", Budget: 100, OwnerUsername: "ghost"},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gig, err := svc.CreateGig(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, gig)
		})
	}

	t.Run("success starts open with owner resolved", func(t *testing.T) {
		gig, err := svc.CreateGig(ctx, &entity.CreateGigInput{
			Title: "Build a landing page", Description: "responsive, one page", Budget: 500, OwnerUsername: "client1",
		})
		require.NoError(t, err)
		assert.Equal(t, common.GigOpen, gig.Status)
		assert.Equal(t, "Client One", gig.OwnerName)
		assert.Equal(t, 500.0, gig.Budget)
	})
}

func TestGigService_GetOpenGigs(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("client1", "Client One", "client1@example.com")
	store.addGig(owner, "Build a landing page", 500)
	store.addGig(owner, "Logo design", 150)
	assigned := store.addGig(owner, "Landing copy rewrite", 200)
	assigned.Status = common.GigAssigned

	svc := newTestGigService(store)
	pg := entity.NewPaginationInput(20, 0)

	t.Run("assigned gigs are hidden", func(t *testing.T) {
		gigs, err := svc.GetOpenGigs(context.Background(), "", pg)
		require.NoError(t, err)
		assert.Len(t, gigs, 2)
	})

	t.Run("search filters by title", func(t *testing.T) {
		gigs, err := svc.GetOpenGigs(context.Background(), "landing", pg)
		require.NoError(t, err)
		require.Len(t, gigs, 1)
		assert.Equal(t, "Build a landing page", gigs[0].Title)
	})
}

func TestGigService_GetUserGigs(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("client1", "Client One", "client1@example.com")
	other := store.addUser("client2", "Client Two", "client2@example.com")
	store.addGig(owner, "Gig A", 500)
	store.addGig(other, "Gig B", 300)

	svc := newTestGigService(store)

	gigs, err := svc.GetUserGigs(context.Background(), "client1", entity.NewPaginationInput(20, 0))
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	assert.Equal(t, "Gig A", gigs[0].Title)

	_, err = svc.GetUserGigs(context.Background(), "ghost", entity.NewPaginationInput(20, 0))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGigService_GetGigById(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("client1", "Client One", "client1@example.com")
	gig := store.addGig(owner, "Build a landing page", 500)

	svc := newTestGigService(store)

	found, err := svc.GetGigById(context.Background(), gig.Id.String())
	require.NoError(t, err)
	assert.Equal(t, gig.Id.String(), found.Id)
	assert.Equal(t, "client1@example.com", found.OwnerEmail)

	_, err = svc.GetGigById(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.ErrorIs(t, err, ErrGigNotFound)
}
