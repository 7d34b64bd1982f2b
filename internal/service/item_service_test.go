package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestItemService(repo *mockRepo, now time.Time) *ItemService {
	logger := zerolog.New(io.Discard)
	svc := NewItemService(repo, 20, &logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestItemService_CreateItem(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 1, Name: "owner", Email: "owner@example.com"}

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		reqID := int64(4)

		repo.On("GetUserByID", ctx, int64(1)).Return(owner, nil).Once()
		repo.On("GetRequest", ctx, int64(4)).Return(&models.ItemRequest{ID: 4}, nil).Once()
		repo.On("CreateItem", ctx, mock.MatchedBy(func(i *models.Item) bool {
			return i.Owner.ID == 1 && i.Name == "Drill" && *i.RequestID == 4
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Item).ID = 11
		}).Return(nil).Once()

		got, err := svc.CreateItem(ctx, 1, models.Item{Name: "Drill", Description: "cordless", Available: true, RequestID: &reqID})
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
		assert.Equal(t, *owner, got.Owner)
		repo.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())

		_, err := svc.CreateItem(ctx, 1, models.Item{Name: " ", Description: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		_, err = svc.CreateItem(ctx, 1, models.Item{Name: "x", Description: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		_, err = svc.CreateItem(ctx, 1, models.Item{Name: "x", Description: strings.Repeat("a", 201)})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})

	t.Run("UnknownRequest", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		reqID := int64(99)
		repo.On("GetUserByID", ctx, int64(1)).Return(owner, nil).Once()
		repo.On("GetRequest", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.CreateItem(ctx, 1, models.Item{Name: "x", Description: "y", RequestID: &reqID})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestItemService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 3, Name: "Saw", Description: "hand saw", Available: true, Owner: models.User{ID: 1}}

	t.Run("PatchMergesFields", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		available := false
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("UpdateItem", ctx, mock.Anything).Return(nil).Once()

		got, err := svc.UpdateItem(ctx, 1, 3, models.ItemPatch{Available: &available})
		require.NoError(t, err)
		assert.False(t, got.Available)
		assert.Equal(t, "Saw", got.Name)
		assert.True(t, item.Available, "stored snapshot must not be mutated")
	})

	t.Run("UpdateByStranger", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		name := "mine"
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()

		_, err := svc.UpdateItem(ctx, 2, 3, models.ItemPatch{Name: &name})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("DeleteByOwner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("DeleteItem", ctx, int64(3)).Return(nil).Once()

		require.NoError(t, svc.DeleteItem(ctx, 1, 3))
		repo.AssertExpectations(t)
	})

	t.Run("DeleteByStranger", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, time.Now())
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()

		assert.ErrorIs(t, svc.DeleteItem(ctx, 2, 3), domain.ErrForbidden)
		repo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})
}

func TestItemService_GetItemView(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	item := &models.Item{ID: 3, Name: "Saw", Description: "hand saw", Available: true, Owner: models.User{ID: 1}}
	last := &models.Booking{ID: 20, Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour), Booker: models.User{ID: 2}, Status: models.StatusApproved}
	next := &models.Booking{ID: 21, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Booker: models.User{ID: 2}, Status: models.StatusWaiting}
	comments := map[int64][]models.Comment{3: {{ID: 1, Text: "nice", ItemID: 3, AuthorName: "bob"}}}

	t.Run("Owner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("GetCommentsByItems", ctx, []int64{3}).Return(comments, nil).Once()
		repo.On("GetNearestBookings", ctx, int64(3), now).Return(models.Nearest{Last: last, Next: next}, nil).Once()

		view, err := svc.GetItemView(ctx, 1, 3)
		require.NoError(t, err)
		require.NotNil(t, view.LastBooking)
		require.NotNil(t, view.NextBooking)
		assert.Equal(t, int64(20), view.LastBooking.ID)
		assert.Equal(t, int64(21), view.NextBooking.ID)
		assert.Equal(t, int64(2), view.NextBooking.BookerID)
		assert.Len(t, view.Comments, 1)
	})

	t.Run("NonOwner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil).Once()
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("GetCommentsByItems", ctx, []int64{3}).Return(map[int64][]models.Comment{}, nil).Once()

		view, err := svc.GetItemView(ctx, 2, 3)
		require.NoError(t, err)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
		assert.NotNil(t, view.Comments)
		assert.Empty(t, view.Comments)
		repo.AssertNotCalled(t, "GetNearestBookings", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownActor", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		repo.On("GetUserByID", ctx, int64(9)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.GetItemView(ctx, 9, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestItemService_ListOwnerItems(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := models.User{ID: 1}
	drill := &models.Item{ID: 1, Name: "Drill", Owner: owner}
	saw := &models.Item{ID: 2, Name: "Saw", Owner: owner}

	b := func(id, itemID int64, start, end time.Duration) *models.Booking {
		return &models.Booking{
			ID:     id,
			Start:  now.Add(start),
			End:    now.Add(end),
			Item:   models.Item{ID: itemID, Owner: owner},
			Booker: models.User{ID: 2},
			Status: models.StatusApproved,
		}
	}
	bookings := []*models.Booking{
		b(10, 1, -72*time.Hour, -48*time.Hour),
		b(11, 1, -24*time.Hour, -time.Hour),
		b(12, 1, 24*time.Hour, 48*time.Hour),
		b(13, 2, 2*time.Hour, 3*time.Hour),
	}

	repo := new(mockRepo)
	svc := newTestItemService(repo, now)
	repo.On("GetUserByID", ctx, int64(1)).Return(&owner, nil).Once()
	repo.On("GetItemsByOwner", ctx, int64(1)).Return([]*models.Item{drill, saw}, nil).Once()
	repo.On("GetBookingsByItems", ctx, []int64{1, 2}).Return(bookings, nil).Once()
	repo.On("GetCommentsByItems", ctx, []int64{1, 2}).Return(map[int64][]models.Comment{}, nil).Once()

	views, err := svc.ListOwnerItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, int64(11), views[0].LastBooking.ID)
	assert.Equal(t, int64(12), views[0].NextBooking.ID)
	assert.Nil(t, views[1].LastBooking)
	assert.Equal(t, int64(13), views[1].NextBooking.ID)
	repo.AssertExpectations(t)
}

func TestItemService_ListOwnerItemsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newTestItemService(repo, time.Now())
	repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
	repo.On("GetItemsByOwner", ctx, int64(1)).Return([]*models.Item{}, nil).Once()

	views, err := svc.ListOwnerItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, views)
	repo.AssertNotCalled(t, "GetBookingsByItems", mock.Anything, mock.Anything)
}

func TestItemService_SearchItems(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newTestItemService(repo, time.Now())

	got, err := svc.SearchItems(ctx, "   ", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "SearchAvailableItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.SearchItems(ctx, "drill", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	found := []*models.Item{{ID: 1, Name: "Drill"}}
	repo.On("SearchAvailableItems", ctx, "drill", 20, 20).Return(found, nil).Once()
	got, err = svc.SearchItems(ctx, "drill", 25, 40)
	require.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestItemService_AddComment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	item := &models.Item{ID: 3, Owner: models.User{ID: 1}}
	author := &models.User{ID: 2, Name: "Bob"}

	t.Run("AfterFinishedBooking", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		finished := []*models.Booking{{
			ID: 5, Start: now.Add(-3 * time.Hour), End: now.Add(-time.Hour),
			Item: *item, Booker: *author, Status: models.StatusApproved,
		}}
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("GetUserByID", ctx, int64(2)).Return(author, nil).Once()
		repo.On("GetFinishedBookings", ctx, int64(3), int64(2), now).Return(finished, nil).Once()
		repo.On("CreateComment", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 8
		}).Return(nil).Once()

		c, err := svc.AddComment(ctx, 2, 3, "great saw")
		require.NoError(t, err)
		assert.Equal(t, int64(8), c.ID)
		assert.Equal(t, "Bob", c.AuthorName)
	})

	t.Run("WithoutFinishedBooking", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		repo.On("GetItemByID", ctx, int64(3)).Return(item, nil).Once()
		repo.On("GetUserByID", ctx, int64(2)).Return(author, nil).Once()
		repo.On("GetFinishedBookings", ctx, int64(3), int64(2), now).Return([]*models.Booking{}, nil).Once()

		_, err := svc.AddComment(ctx, 2, 3, "great saw")
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("BlankText", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)

		_, err := svc.AddComment(ctx, 2, 3, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestItemService(repo, now)
		repo.On("GetItemByID", ctx, int64(3)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.AddComment(ctx, 2, 3, "hi")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
