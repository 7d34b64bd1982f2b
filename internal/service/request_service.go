package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/timeline"

	"github.com/rs/zerolog"
)

// RequestService manages item requests and attaches the items offered in answer.
type RequestService struct {
	repo        domain.Repository
	maxPageSize int
	logger      *zerolog.Logger
}

var _ domain.RequestService = (*RequestService)(nil)

func NewRequestService(repo domain.Repository, maxPageSize int, logger *zerolog.Logger) *RequestService {
	if maxPageSize <= 0 {
		maxPageSize = models.MaxPageSize
	}
	return &RequestService{repo: repo, maxPageSize: maxPageSize, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	if err := requireDescription("description", description); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	req := &models.ItemRequest{Description: description, RequesterID: userID, Items: []models.Item{}}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", req.ID).Int64("user_id", userID).Msg("item request created")
	return req, nil
}

func (s *RequestService) ListOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.GetRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListOtherRequests pages through other users' requests, newest first.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	page, err := timeline.NewPage(from, size, s.maxPageSize)
	if err != nil {
		return nil, err
	}
	reqs, err := s.repo.GetRequestsExcept(ctx, userID, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, []*models.ItemRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) attachItems(ctx context.Context, reqs []*models.ItemRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	ids := make([]int64, len(reqs))
	byID := make(map[int64]*models.ItemRequest, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
		r.Items = []models.Item{}
		byID[r.ID] = r
	}

	items, err := s.repo.GetItemsByRequests(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		if r, ok := byID[*it.RequestID]; ok {
			r.Items = append(r.Items, *it)
		}
	}
	return nil
}
