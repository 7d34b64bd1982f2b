package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/internal/access"
	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/timeline"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo        domain.Repository
	maxPageSize int
	logger      *zerolog.Logger
	now         func() time.Time
}

var _ domain.ItemService = (*ItemService)(nil)

func NewItemService(repo domain.Repository, maxPageSize int, logger *zerolog.Logger) *ItemService {
	if maxPageSize <= 0 {
		maxPageSize = models.MaxPageSize
	}
	return &ItemService{repo: repo, maxPageSize: maxPageSize, logger: logger, now: time.Now}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item models.Item) (*models.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	owner, err := s.repo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}

	created := models.Item{
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		Owner:       *owner,
		RequestID:   item.RequestID,
	}
	if err := s.repo.CreateItem(ctx, &created); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Int64("owner_id", ownerID).Msg("item created")
	return &created, nil
}

// UpdateItem merges the non-nil patch fields into a new snapshot of the item.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := access.CanModifyItem(actorID, item); err != nil {
		return nil, err
	}

	updated := patch.Apply(*item)
	if err := validateItem(updated); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("actor_id", actorID).Msg("item updated")
	return &updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, actorID, itemID int64) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := access.CanModifyItem(actorID, item); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("actor_id", actorID).Msg("item deleted")
	return nil
}

// GetItemView returns the item with its comments. Last and next bookings are
// filled only when the actor owns the item.
func (s *ItemService) GetItemView(ctx context.Context, actorID, itemID int64) (*models.ItemView, error) {
	if _, err := s.repo.GetUserByID(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.GetCommentsByItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	view := newItemView(item, comments[itemID])

	if actorID == item.Owner.ID {
		nearest, err := s.repo.GetNearestBookings(ctx, itemID, s.now())
		if err != nil {
			return nil, err
		}
		setNearest(view, nearest)
	}
	return view, nil
}

// ListOwnerItems returns the owner's items with comments and nearest
// bookings, resolved from one bookings query for all items.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemView, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*models.ItemView{}, nil
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	bookings, err := s.repo.GetBookingsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.GetCommentsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	nearest := timeline.GroupNearest(bookings, s.now())
	views := make([]*models.ItemView, len(items))
	for i, it := range items {
		views[i] = newItemView(it, comments[it.ID])
		setNearest(views[i], nearest[it.ID])
	}
	return views, nil
}

// SearchItems finds available items whose name or description contains text.
// Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	page, err := timeline.NewPage(from, size, s.maxPageSize)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, text, page.Offset, page.Limit)
}

// AddComment lets a user comment on an item they have finished renting.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if err := requireText("text", text); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	finished, err := s.repo.GetFinishedBookings(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if err := access.CanComment(authorID, itemID, finished, now); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return comment, nil
}

func newItemView(item *models.Item, comments []models.Comment) *models.ItemView {
	if comments == nil {
		comments = []models.Comment{}
	}
	return &models.ItemView{Item: *item, Comments: comments}
}

func setNearest(view *models.ItemView, n models.Nearest) {
	if n.Last != nil {
		view.LastBooking = n.Last.Brief()
	}
	if n.Next != nil {
		view.NextBooking = n.Next.Brief()
	}
}
