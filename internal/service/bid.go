package service

import (
	"context"
	"errors"
	"fmt"
	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/notifier"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"
)

// Publisher is the outbound notification channel. Publishing must never
// fail a hire: the hub drops events it cannot deliver.
type Publisher interface {
	Publish(recipientId string, event notifier.Event)
}

type BidService struct {
	bidRepo   repo.Bid
	gigRepo   repo.Gig
	userRepo  repo.User
	publisher Publisher
}

func NewBidService(repos *repo.Repositories, publisher Publisher) *BidService {
	return &BidService{
		bidRepo:   repos.Bid,
		gigRepo:   repos.Gig,
		userRepo:  repos.User,
		publisher: publisher,
	}
}

func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if input.Message == "" || input.Price <= 0 {
		return nil, ErrInvalidBidInput
	}

	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigClosed
	}

	freelancer, err := s.userRepo.GetUserByUsername(ctx, input.FreelancerUsername)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	// friendly pre-check; the unique constraint settles a race between
	// two submissions from the same freelancer
	_, err = s.bidRepo.GetBidByGigAndFreelancer(ctx, gig.Id, freelancer.Id)
	if err == nil {
		return nil, ErrDuplicateBid
	}
	if !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, err
	}

	id, err := s.bidRepo.CreateBid(ctx, input, freelancer.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrDuplicateBid
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// Bids on a gig are visible to the gig owner only, newest first.
func (s *BidService) GetGigBids(ctx context.Context, gigId string, username string) ([]entity.BidOutputModel, error) {
	requester, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId != requester.Id {
		return nil, ErrNotGigOwner
	}

	bids, err := s.bidRepo.GetGigBids(ctx, gig.Id)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetUserBids(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	freelancer, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetUserBids(ctx, freelancer.Id, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

// HireBid selects the winning bid for its gig. The repo call applies
// gig->assigned, winner->hired, pending siblings->rejected atomically
// and re-checks both preconditions under a row lock, so of two
// concurrent hires on one gig exactly the first committer wins.
// The winner is notified only after the commit landed.
func (s *BidService) HireBid(ctx context.Context, bidId string, username string) (*entity.HireOutputModel, error) {
	requester, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId != requester.Id {
		return nil, ErrNotGigOwner
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigAlreadyAssigned
	}

	if bid.Status != common.BidPending {
		return nil, ErrBidNotAvailable
	}

	if err = s.bidRepo.HireBid(ctx, gig.Id, bid.Id); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, s.classifyHireConflict(ctx, gig.Id.String())
		}

		return nil, err
	}

	hired, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(hired.FreelancerId.String(), notifier.Event{
		Type:    notifier.EventHired,
		Message: fmt.Sprintf("You have been hired for %s!", gig.Title),
		Gig:     notifier.GigRef{Id: gig.Id.String(), Title: gig.Title},
		Bid:     notifier.BidRef{Id: hired.Id.String(), Price: hired.Price},
	})

	return &entity.HireOutputModel{
		Bid:            *mapBid(hired),
		GigTitle:       gig.Title,
		GigDescription: gig.Description,
	}, nil
}

// A conflict out of the hire transaction means another hire got there
// first. Re-read the gig to report which precondition broke.
func (s *BidService) classifyHireConflict(ctx context.Context, gigId string) error {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		return ErrGigAlreadyAssigned
	}

	if gig.Status != common.GigOpen {
		return ErrGigAlreadyAssigned
	}

	return ErrBidNotAvailable
}
