package entity

import (
	"github.com/google/uuid"
)

// db model
type Gig struct {
	Id          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Budget      float64   `json:"budget" db:"budget"`
	Status      string    `json:"status" db:"status"`
	OwnerId     uuid.UUID `json:"ownerId" db:"owner_id"`
	OwnerName   string    `json:"ownerName" db:"owner_name"`
	OwnerEmail  string    `json:"ownerEmail" db:"owner_email"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateGigInput struct {
	Title         string  // given
	Description   string  // given
	Budget        float64 // given
	OwnerUsername string  // given
	// Id UUID sets automatically
	// Status starts as "open"
	// CreatedAt sets automatically
}

// controller model
type GigOutputModel struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Status      string  `json:"status"`
	OwnerId     string  `json:"ownerId"`
	OwnerName   string  `json:"ownerName"`
	OwnerEmail  string  `json:"ownerEmail"`
	CreatedAt   string  `json:"createdAt"`
}
