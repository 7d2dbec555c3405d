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
)

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput, ownerId uuid.UUID) (uuid.UUID, error) {
	createGigSql, args, _ := r.SqlBuilder.
		Insert("gig").
		Columns("title", "description", "budget", "owner_id", "status").
		Values(input.Title, input.Description, input.Budget, ownerId, common.GigOpen).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	if err := r.Database.QueryRow(createGigSql, args...).Scan(&gigId); err != nil {
		return uuid.Nil, err
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigSql, args, _ := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.status, gig.owner_id, users.name, users.email, gig.created_at").
		From("gig").
		InnerJoin("users on gig.owner_id = users.id").
		Where("gig.id = ?", uuidForm).
		ToSql()

	var gig entity.Gig
	var createdAt time.Time
	row := r.Database.QueryRow(getGigSql, args...)
	err = row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.Status,
		&gig.OwnerId, &gig.OwnerName, &gig.OwnerEmail, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	gig.CreatedAt = createdAt.Format(time.RFC3339)

	return &gig, nil
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.status, gig.owner_id, users.name, users.email, gig.created_at").
		From("gig").
		InnerJoin("users on gig.owner_id = users.id").
		Where("gig.status = ?", common.GigOpen)

	if search != "" {
		builder = builder.Where("gig.title ilike ?", "%"+search+"%")
	}

	getOpenGigsSql, args, _ := builder.
		OrderBy("gig.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.scanGigs(getOpenGigsSql, args)
}

func (r *GigRepo) GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error) {
	getOwnerGigsSql, args, _ := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.status, gig.owner_id, users.name, users.email, gig.created_at").
		From("gig").
		InnerJoin("users on gig.owner_id = users.id").
		Where("gig.owner_id = ?", ownerId).
		OrderBy("gig.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.scanGigs(getOwnerGigsSql, args)
}

func (r *GigRepo) scanGigs(query string, args []interface{}) ([]entity.Gig, error) {
	rows, err := r.Database.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		var gig entity.Gig
		var createdAt time.Time
		if err := rows.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.Status,
			&gig.OwnerId, &gig.OwnerName, &gig.OwnerEmail, &createdAt); err != nil {
			return gigs, err
		}
		gig.CreatedAt = createdAt.Format(time.RFC3339)
		gigs = append(gigs, gig)
	}
	if err = rows.Err(); err != nil {
		return gigs, err
	}

	return gigs, nil
}
