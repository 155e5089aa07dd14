package domain

import (
	"errors"
)

var (
	MessageSuccessAddNote       = "Note added successfully"
	MessageSuccessFixExpiryDate = "Fixed %d expiryDate values."

	MessageFailedAddFoodItem     = "failed to add food item"
	MessageFailedUpdateFoodItem  = "failed to update food item"
	MessageFailedDeleteFoodItem  = "failed to delete food item"
	MessageFailedGetFoodItems    = "failed to retrieve food items"
	MessageFailedGetRecentFoods  = "Failed to fetch recent products"
	MessageFailedAddNote         = "failed to add note"
	MessageFailedNoteNotAllowed  = "You are not allowed to add note to this food item"
	MessageFailedFixExpiryDates  = "Internal error occurred"
	MessageFailedInvalidFoodID   = "invalid food id"
	MessageFailedValidateRequest = "invalid request"

	ErrInvalidFoodID    = errors.New("invalid food id")
	ErrFoodItemNotFound = errors.New("food item not found")
)

type (
	// UpdateFoodItemRequest lists the only fields a partial update may touch.
	// Anything else in the body is dropped during decoding.
	UpdateFoodItemRequest struct {
		Title    *string `json:"title"`
		Quantity any     `json:"quantity"`
		Category *string `json:"category"`
	}

	// AddNoteRequest is appended as sent; an empty note is still a note.
	AddNoteRequest struct {
		Note      string `json:"note"`
		UserEmail string `json:"userEmail"`
	}

	AddNoteResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	FixExpiryDatesResponse struct {
		Message string `json:"message"`
		Fixed   int    `json:"fixed"`
		Skipped int    `json:"skipped"`
	}
)

// Fields returns the $set document for the request, leaving out absent keys.
func (r UpdateFoodItemRequest) Fields() map[string]any {
	fields := make(map[string]any, 3)
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Quantity != nil {
		fields["quantity"] = r.Quantity
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	return fields
}
