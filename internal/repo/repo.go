package repo

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/pgdb"
	"gig-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput, ownerId uuid.UUID) (uuid.UUID, error)
	GetGigById(ctx context.Context, id string) (*entity.Gig, error)
	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error)
	GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput, freelancerId uuid.UUID) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetBidByGigAndFreelancer(ctx context.Context, gigId uuid.UUID, freelancerId uuid.UUID) (*entity.Bid, error)
	GetGigBids(ctx context.Context, gigId uuid.UUID) ([]entity.Bid, error)
	GetUserBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error)
	// HireBid applies gig->assigned, winner->hired and pending
	// siblings->rejected as one transaction, re-checking both
	// preconditions under a row lock before writing.
	HireBid(ctx context.Context, gigId uuid.UUID, winningBidId uuid.UUID) error
}

type Repositories struct {
	Diagnostics
	User
	Gig
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Gig:         pgdb.NewGigRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
