package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestService(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	user := &models.User{ID: 1}

	t.Run("Create", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewRequestService(repo, 10, &logger)
		repo.On("GetUserByID", ctx, int64(1)).Return(user, nil).Once()
		repo.On("CreateRequest", ctx, mock.Anything).Return(nil).Once()

		req, err := svc.CreateRequest(ctx, 1, "need a ladder")
		require.NoError(t, err)
		assert.Equal(t, int64(1), req.RequesterID)
		assert.NotNil(t, req.Items)

		_, err = svc.CreateRequest(ctx, 1, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("ListOwnAttachesItems", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewRequestService(repo, 10, &logger)
		r1, r2 := int64(1), int64(2)
		reqs := []*models.ItemRequest{{ID: 2, RequesterID: 1}, {ID: 1, RequesterID: 1}}
		items := []*models.Item{
			{ID: 5, Name: "Ladder", RequestID: &r1},
			{ID: 6, Name: "Step", RequestID: &r1},
			{ID: 7, Name: "Rope", RequestID: &r2},
		}
		repo.On("GetUserByID", ctx, int64(1)).Return(user, nil).Once()
		repo.On("GetRequestsByRequester", ctx, int64(1)).Return(reqs, nil).Once()
		repo.On("GetItemsByRequests", ctx, []int64{2, 1}).Return(items, nil).Once()

		got, err := svc.ListOwnRequests(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Len(t, got[0].Items, 1)
		assert.Len(t, got[1].Items, 2)
	})

	t.Run("ListOtherPaged", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewRequestService(repo, 10, &logger)
		repo.On("GetUserByID", ctx, int64(1)).Return(user, nil).Once()
		repo.On("GetRequestsExcept", ctx, int64(1), 10, 10).Return([]*models.ItemRequest{}, nil).Once()

		got, err := svc.ListOtherRequests(ctx, 1, 15, 30)
		require.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertNotCalled(t, "GetItemsByRequests", mock.Anything, mock.Anything)
	})

	t.Run("GetAttachFailure", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewRequestService(repo, 10, &logger)
		repo.On("GetUserByID", ctx, int64(1)).Return(user, nil).Once()
		repo.On("GetRequest", ctx, int64(3)).Return(&models.ItemRequest{ID: 3}, nil).Once()
		repo.On("GetItemsByRequests", ctx, []int64{3}).Return(nil, errors.New("db gone")).Once()

		got, err := svc.GetRequest(ctx, 1, 3)
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetUnknownUser", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewRequestService(repo, 10, &logger)
		repo.On("GetUserByID", ctx, int64(8)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.GetRequest(ctx, 8, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
