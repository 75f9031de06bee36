package models

import "time"

// LostItemStatus represents the state of a lost-and-found listing
type LostItemStatus string

const (
	LostItemLost     LostItemStatus = "lost"
	LostItemFound    LostItemStatus = "found"
	LostItemClaimed  LostItemStatus = "claimed"
	LostItemReturned LostItemStatus = "returned"
)

// ValidLostItemStatus reports whether the given status is one of the known statuses.
func ValidLostItemStatus(s LostItemStatus) bool {
	switch s {
	case LostItemLost, LostItemFound, LostItemClaimed, LostItemReturned:
		return true
	}
	return false
}

// LostItem represents a lost-and-found listing.
type LostItem struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description,omitempty" db:"description"`
	Category    *string        `json:"category,omitempty" db:"category"`
	Location    *string        `json:"location,omitempty" db:"location"`
	ImageURL    *string        `json:"imageUrl,omitempty" db:"image_url"`
	Status      LostItemStatus `json:"status" db:"status"`
	OwnerID     int64          `json:"ownerId" db:"owner_id"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}
