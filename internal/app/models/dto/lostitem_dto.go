package dto

// CreateLostItemRequest is the payload for POST /lost-items
type CreateLostItemRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
	Status      string  `json:"status" binding:"omitempty,oneof=lost found claimed returned"`
}

// UpdateLostItemRequest is the payload for PUT /lost-items/:id
type UpdateLostItemRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
	Status      *string `json:"status" binding:"omitempty,oneof=lost found claimed returned"`
}
