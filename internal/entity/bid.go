package entity

import (
	"github.com/google/uuid"
)

// db model; freelancer name/email are joined in on read
type Bid struct {
	Id              uuid.UUID `json:"id" db:"id"`
	GigId           uuid.UUID `json:"gigId" db:"gig_id"`
	FreelancerId    uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	FreelancerName  string    `json:"freelancerName" db:"freelancer_name"`
	FreelancerEmail string    `json:"freelancerEmail" db:"freelancer_email"`
	Message         string    `json:"message" db:"message"`
	Price           float64   `json:"price" db:"price"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	GigId              string  // given
	FreelancerUsername string  // given
	Message            string  // given
	Price              float64 // given
	// Id UUID sets automatically
	// Status starts as "pending"
	// CreatedAt sets automatically
}

// controller model
type BidOutputModel struct {
	Id              string  `json:"id"`
	GigId           string  `json:"gigId"`
	FreelancerId    string  `json:"freelancerId"`
	FreelancerName  string  `json:"freelancerName"`
	FreelancerEmail string  `json:"freelancerEmail"`
	Message         string  `json:"message"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

// controller model for a successful hire: the winning bid plus the
// gig fields the owner sees on the confirmation screen
type HireOutputModel struct {
	Bid            BidOutputModel `json:"bid"`
	GigTitle       string         `json:"gigTitle"`
	GigDescription string         `json:"gigDescription"`
}
