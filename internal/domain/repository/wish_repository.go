package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wishlist_api/internal/common"
	"wishlist_api/internal/domain/model"
)

// WishRepository executes owner-scoped queries over the wishes table. The
// owner parameter is mandatory on every read/write: nil means the caller is
// an admin and the query runs unscoped, a value is always compiled into an
// owner_id predicate. Ownership decisions themselves live in the service
// layer; the repository executes whatever scope it is given.
type WishRepository interface {
	Create(ctx context.Context, wish *model.Wish) error
	FindByID(ctx context.Context, id int64, owner *int64) (*model.Wish, error)
	List(ctx context.Context, owner *int64, limit, offset int, priceFilter *float64) ([]model.Wish, int, error)
	Update(ctx context.Context, wish *model.Wish, owner *int64) error
	Delete(ctx context.Context, id int64, owner *int64) error
}

type pgWishRepository struct {
	db *sql.DB
}

func NewPgWishRepository(db *sql.DB) WishRepository {
	return &pgWishRepository{db: db}
}

const wishColumns = `id, title, link, price_estimate, notes, owner_id, created_at, updated_at`

func (r *pgWishRepository) Create(ctx context.Context, wish *model.Wish) error {
	query := `INSERT INTO wishes (title, link, price_estimate, notes, owner_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		wish.Title, wish.Link, wish.PriceEstimate, wish.Notes, wish.OwnerID,
	).Scan(&wish.ID, &wish.CreatedAt, &wish.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgWishRepository.Create: %w", err)
	}
	return nil
}

func (r *pgWishRepository) FindByID(ctx context.Context, id int64, owner *int64) (*model.Wish, error) {
	query := `SELECT ` + wishColumns + ` FROM wishes WHERE id = $1`
	args := []interface{}{id}
	if owner != nil {
		query += ` AND owner_id = $2`
		args = append(args, *owner)
	}

	wish := &model.Wish{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&wish.ID, &wish.Title, &wish.Link, &wish.PriceEstimate,
		&wish.Notes, &wish.OwnerID, &wish.CreatedAt, &wish.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgWishRepository.FindByID: %w", err)
	}
	return wish, nil
}

func (r *pgWishRepository) List(ctx context.Context, owner *int64, limit, offset int, priceFilter *float64) ([]model.Wish, int, error) {
	where, args := listPredicate(owner, priceFilter)

	countQuery := `SELECT COUNT(*) FROM wishes` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgWishRepository.List count: %w", err)
	}

	query := `SELECT ` + wishColumns + ` FROM wishes` + where +
		` ORDER BY id LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgWishRepository.List: %w", err)
	}
	defer rows.Close()

	wishes := []model.Wish{}
	for rows.Next() {
		var wish model.Wish
		if err := rows.Scan(
			&wish.ID, &wish.Title, &wish.Link, &wish.PriceEstimate,
			&wish.Notes, &wish.OwnerID, &wish.CreatedAt, &wish.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("pgWishRepository.List: %w", err)
		}
		wishes = append(wishes, wish)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgWishRepository.List: %w", err)
	}
	return wishes, total, nil
}

func listPredicate(owner *int64, priceFilter *float64) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if owner != nil {
		args = append(args, *owner)
		conditions = append(conditions, `owner_id = $`+strconv.Itoa(len(args)))
	}
	if priceFilter != nil {
		args = append(args, *priceFilter)
		conditions = append(conditions, `price_estimate <= $`+strconv.Itoa(len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(conditions, ` AND `), args
}

func (r *pgWishRepository) Update(ctx context.Context, wish *model.Wish, owner *int64) error {
	query := `UPDATE wishes
	          SET title = $1, link = $2, price_estimate = $3, notes = $4, updated_at = NOW()
	          WHERE id = $5`
	args := []interface{}{wish.Title, wish.Link, wish.PriceEstimate, wish.Notes, wish.ID}
	if owner != nil {
		query += ` AND owner_id = $6`
		args = append(args, *owner)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgWishRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgWishRepository.Update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgWishRepository) Delete(ctx context.Context, id int64, owner *int64) error {
	query := `DELETE FROM wishes WHERE id = $1`
	args := []interface{}{id}
	if owner != nil {
		query += ` AND owner_id = $2`
		args = append(args, *owner)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgWishRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgWishRepository.Delete: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
