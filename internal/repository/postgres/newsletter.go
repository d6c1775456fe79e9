package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// NewsletterRepository implements repository.NewsletterRepository using PostgreSQL.
type NewsletterRepository struct {
	pool DB
}

// NewNewsletterRepository creates a new PostgreSQL-backed newsletter repository.
func NewNewsletterRepository(pool DB) *NewsletterRepository {
	return &NewsletterRepository{pool: pool}
}

// Subscribe inserts a subscriber. Returns ErrAlreadyExists if the email is
// already subscribed.
func (r *NewsletterRepository) Subscribe(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (email, discount_code, subscribed_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, sub.Email, sub.DiscountCode, sub.SubscribedAt).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("subscriber", "email", sub.Email)
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}

	return nil
}

// GetByEmail retrieves a subscriber by email.
func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `SELECT id, email, discount_code, subscribed_at FROM newsletter_subscribers WHERE email = $1`

	var sub domain.Subscriber
	err := r.pool.QueryRow(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.DiscountCode, &sub.SubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("subscriber", email)
		}
		return nil, fmt.Errorf("get subscriber: %w", err)
	}

	return &sub, nil
}

// List returns subscribers with the total count, newest first.
func (r *NewsletterRepository) List(ctx context.Context, page, perPage int) ([]domain.Subscriber, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * perPage
	}

	query := `
		SELECT id, email, discount_code, subscribed_at, count(*) OVER() AS total_count
		FROM newsletter_subscribers
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var (
		subs       = []domain.Subscriber{}
		totalCount int
	)

	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.DiscountCode, &sub.SubscribedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan subscriber row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscriber rows: %w", err)
	}

	return subs, totalCount, nil
}

// Unsubscribe removes a subscriber by email.
func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM newsletter_subscribers WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("subscriber", email)
	}

	return nil
}

// CreateDiscountCode stores a newly issued discount code.
func (r *NewsletterRepository) CreateDiscountCode(ctx context.Context, code *domain.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (code, percent, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, code.Code, code.Percent, code.ExpiresAt, code.CreatedAt).Scan(&code.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("discount code", "code", code.Code)
		}
		return fmt.Errorf("insert discount code: %w", err)
	}

	return nil
}

// GetDiscountCode retrieves a discount code by its code string.
func (r *NewsletterRepository) GetDiscountCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	query := `SELECT id, code, percent, expires_at, used_at, created_at FROM discount_codes WHERE code = $1`

	var dc domain.DiscountCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&dc.ID, &dc.Code, &dc.Percent, &dc.ExpiresAt, &dc.UsedAt, &dc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("discount code", code)
		}
		return nil, fmt.Errorf("get discount code: %w", err)
	}

	return &dc, nil
}

// MarkDiscountCodeUsed records the code as redeemed.
func (r *NewsletterRepository) MarkDiscountCodeUsed(ctx context.Context, code string) error {
	query := `UPDATE discount_codes SET used_at = $1 WHERE code = $2 AND used_at IS NULL`

	ct, err := r.pool.Exec(ctx, query, time.Now().UTC(), code)
	if err != nil {
		return fmt.Errorf("mark discount code used: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.Conflict("discount code already used or unknown")
	}

	return nil
}
