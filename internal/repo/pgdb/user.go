package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "username", "name", "email").
		From("users").
		Where("username = ?", username).
		ToSql()

	var user entity.User
	err := r.Database.QueryRow(sqlReq, args...).
		Scan(&user.Id, &user.Username, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "username", "name", "email").
		From("users").
		Where("id = ?", id).
		ToSql()

	var user entity.User
	err := r.Database.QueryRow(sqlReq, args...).
		Scan(&user.Id, &user.Username, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}
