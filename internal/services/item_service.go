package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/repositories"
	"go.uber.org/zap"
)

// ItemRepository is the interface that wraps methods for Item table data access
type ItemRepository interface {
	// Method Create inserts a new item into the database.
	//
	// "item" parameter is used to create a new item; its ID is set on success.
	//
	// If some error occurs during item creation, the error will be returned.
	Create(ctx context.Context, item *models.Item) error
	// Method GetByID retrieves an item by ID together with its owner's name and email.
	//
	// "itemID" parameter is used to retrieve an item by ID.
	//
	// If item with such ID does not exist, repositories.ErrItemNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, itemID int) (*models.Item, error)
	// Method GetAll retrieves a page of items matching the filter, newest first.
	//
	// "filter" parameter carries the ownership scope, search term and paging.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	GetAll(ctx context.Context, filter repositories.ItemFilter) ([]models.Item, error)
	// Method Count returns the number of items matching the filter, ignoring paging.
	//
	// If some error occurs during data retrieval, the error will be returned together with 0.
	Count(ctx context.Context, filter repositories.ItemFilter) (int, error)
	// Method Update updates an item's title, description and updated_at.
	//
	// If some error occurs during item update, the error will be returned.
	Update(ctx context.Context, item *models.Item) error
	// Method Delete deletes an item by ID.
	//
	// If item with such ID does not exist, repositories.ErrItemNotFound will be returned.
	Delete(ctx context.Context, itemID int) error
}

// itemService implements ItemService
type itemService struct {
	itemRepo ItemRepository
	logger   *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(itemRepo ItemRepository, logger *zap.Logger) *itemService {
	return &itemService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// ListItems returns a page of items visible to the requesting identity.
// Non-admins are always scoped to their own records; admins see everything.
func (s *itemService) ListItems(ctx context.Context, authCtx auth.Context, page, limit int, search string) (*models.ItemListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := repositories.ItemFilter{
		OwnerID: auth.OwnerScope(authCtx),
		Search:  strings.TrimSpace(search),
		Page:    page,
		Count:   limit,
	}

	items, err := s.itemRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit

	return &models.ItemListResponse{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

// GetItem retrieves a single item, enforcing the ownership policy
func (s *itemService) GetItem(ctx context.Context, authCtx auth.Context, itemID int) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !auth.CanAccess(authCtx, item.UserID) {
		return nil, ErrForbidden
	}

	return item, nil
}

// CreateItem creates an item owned by the requesting identity. The owner is
// always the authenticated subject, never taken from the request body.
func (s *itemService) CreateItem(ctx context.Context, authCtx auth.Context, req *models.ItemRequest) (*models.Item, error) {
	now := time.Now().UTC()
	item := &models.Item{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		UserID:      authCtx.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	// Re-read to pick up the joined owner fields
	return s.itemRepo.GetByID(ctx, item.ID)
}

// UpdateItem updates an item, enforcing the ownership policy
func (s *itemService) UpdateItem(ctx context.Context, authCtx auth.Context, itemID int, req *models.ItemRequest) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !auth.CanAccess(authCtx, item.UserID) {
		return nil, ErrForbidden
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = strings.TrimSpace(req.Description)
	item.UpdatedAt = time.Now().UTC()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem deletes an item, enforcing the ownership policy
func (s *itemService) DeleteItem(ctx context.Context, authCtx auth.Context, itemID int) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !auth.CanAccess(authCtx, item.UserID) {
		return ErrForbidden
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
