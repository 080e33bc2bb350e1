// Package domain contains the core data types for the RecipeBox application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Recipe is a single recipe owned by one user.
// OwnerID is bound at creation and never changed by an update.
// The validate tags are the field constraints enforced by the service layer;
// the json tags double as form field names in validation messages.
// Ranking is capped at the range of its INTEGER column.
type Recipe struct {
	ID           int64     `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name" validate:"required,max=200"`
	Ingredients  string    `json:"ingredients" validate:"required"`
	Instructions string    `json:"instructions"`
	Ranking      int       `json:"ranking" validate:"gte=0,lte=2147483647"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Tags is populated only by detail reads; nil everywhere else.
	Tags []RecipeTag `json:"tags,omitempty"`
}
