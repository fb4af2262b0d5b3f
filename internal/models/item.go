package models

import "time"

// Item represents a personal record owned by a user.
// UserName and UserEmail are joined from the owning user for display.
type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int       `json:"userId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemRequest represents an item create or update request body
type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemListResponse is a paginated page of items
type ItemListResponse struct {
	Items       []Item `json:"items"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int    `json:"totalItems"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
}
