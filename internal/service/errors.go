package service

import "errors"

var (
	ErrGigNotFound  = errors.New("gig not found")
	ErrBidNotFound  = errors.New("bid not found")
	ErrUserNotFound = errors.New("user with given username not found")

	ErrNotGigOwner = errors.New("user isn't the owner of the gig")

	ErrInvalidBidInput = errors.New("bid message and a positive price are required")
	ErrInvalidGigInput = errors.New("gig title, description and a positive budget are required")

	ErrGigClosed          = errors.New("gig is no longer open for bidding")
	ErrDuplicateBid       = errors.New("a bid for this gig was already submitted by this freelancer")
	ErrGigAlreadyAssigned = errors.New("gig is already assigned")
	ErrBidNotAvailable    = errors.New("bid is no longer available")
)
