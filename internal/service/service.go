package service

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/notifier"
	"gig-marketplace-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)
	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)
	GetUserGigs(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetGigBids(ctx context.Context, gigId string, username string) ([]entity.BidOutputModel, error)
	GetUserBids(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	HireBid(ctx context.Context, bidId string, username string) (*entity.HireOutputModel, error)
}

type Notification interface {
	Subscribe(ctx context.Context, username string) (<-chan notifier.Event, func(), error)
}

type Services struct {
	Diagnostics  Diagnostics
	Gig          Gig
	Bid          Bid
	Notification Notification
}

func NewServices(repos *repo.Repositories, hub *notifier.Hub) *Services {
	return &Services{
		Diagnostics:  NewDiagnosticsService(repos),
		Gig:          NewGigService(repos),
		Bid:          NewBidService(repos, hub),
		Notification: NewNotificationService(repos, hub),
	}
}
