package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput, freelancerId uuid.UUID) (uuid.UUID, error) {
	gigUuid, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("gig_id", "freelancer_id", "message", "price", "status").
		Values(gigUuid, freelancerId, input.Message, input.Price, common.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err = r.Database.QueryRow(createBidSql, args...).Scan(&bidId)
	if err != nil {
		// the (gig_id, freelancer_id) unique constraint is the
		// authoritative duplicate check; a prior read may have raced
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}

		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("users on bid.freelancer_id = users.id").
		Where("bid.id = ?", uuidForm).
		ToSql()

	var bid entity.Bid
	var createdAt time.Time
	row := r.Database.QueryRow(getBidSql, args...)
	err = row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.FreelancerName, &bid.FreelancerEmail,
		&bid.Message, &bid.Price, &bid.Status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func (r *BidRepo) GetBidByGigAndFreelancer(ctx context.Context, gigId uuid.UUID, freelancerId uuid.UUID) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("users on bid.freelancer_id = users.id").
		Where("bid.gig_id = ?", gigId).
		Where("bid.freelancer_id = ?", freelancerId).
		ToSql()

	var bid entity.Bid
	var createdAt time.Time
	row := r.Database.QueryRow(getBidSql, args...)
	err := row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.FreelancerName, &bid.FreelancerEmail,
		&bid.Message, &bid.Price, &bid.Status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId uuid.UUID) ([]entity.Bid, error) {
	getGigBidsSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("users on bid.freelancer_id = users.id").
		Where("bid.gig_id = ?", gigId).
		OrderBy("bid.created_at DESC").
		ToSql()

	return r.scanBids(getGigBidsSql, args)
}

func (r *BidRepo) GetUserBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	getUserBidsSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("users on bid.freelancer_id = users.id").
		Where("bid.freelancer_id = ?", freelancerId).
		OrderBy("bid.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.scanBids(getUserBidsSql, args)
}

func (r *BidRepo) scanBids(query string, args []interface{}) ([]entity.Bid, error) {
	rows, err := r.Database.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		var createdAt time.Time
		if err := rows.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.FreelancerName, &bid.FreelancerEmail,
			&bid.Message, &bid.Price, &bid.Status, &createdAt); err != nil {
			return bids, err
		}
		bid.CreatedAt = createdAt.Format(time.RFC3339)
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

// HireBid commits the three-way hire update as one transaction.
// The gig row is locked first, then both preconditions are checked
// again inside the transaction; a service-level check may have read
// state that a concurrent hire has since invalidated. Returns
// repo_errors.ErrConflict when either precondition no longer holds.
func (r *BidRepo) HireBid(ctx context.Context, gigId uuid.UUID, winningBidId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	gigStatusSql, args, _ := r.SqlBuilder.
		Select("status").
		From("gig").
		Where("id = ?", gigId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var gigStatus string
	if err = tx.QueryRow(gigStatusSql, args...).Scan(&gigStatus); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if gigStatus != common.GigOpen {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	bidStatusSql, args, _ := r.SqlBuilder.
		Select("status").
		From("bid").
		Where("id = ?", winningBidId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var bidStatus string
	if err = tx.QueryRow(bidStatusSql, args...).Scan(&bidStatus); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if bidStatus != common.BidPending {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	if err = r.updateGigStatus(tx, gigId, common.GigAssigned); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = r.updateBidStatus(tx, winningBidId, common.BidHired); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = r.updateBidsStatusBulk(tx, gigId, winningBidId, common.BidPending, common.BidRejected); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *BidRepo) updateGigStatus(tx *sql.Tx, gigId uuid.UUID, newStatus string) error {
	updateGigSql, args, _ := r.SqlBuilder.
		Update("gig").
		Set("status", newStatus).
		Where("id = ?", gigId).
		RunWith(tx).
		ToSql()

	_, err := tx.Exec(updateGigSql, args...)

	return err
}

func (r *BidRepo) updateBidStatus(tx *sql.Tx, bidId uuid.UUID, newStatus string) error {
	updateBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Where("id = ?", bidId).
		RunWith(tx).
		ToSql()

	_, err := tx.Exec(updateBidSql, args...)

	return err
}

func (r *BidRepo) updateBidsStatusBulk(tx *sql.Tx, gigId uuid.UUID, excludeBidId uuid.UUID, fromStatus string, toStatus string) error {
	updateSiblingsSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", toStatus).
		Where("gig_id = ?", gigId).
		Where("id <> ?", excludeBidId).
		Where("status = ?", fromStatus).
		RunWith(tx).
		ToSql()

	_, err := tx.Exec(updateSiblingsSql, args...)

	return err
}
