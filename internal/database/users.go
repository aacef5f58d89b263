package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/models"
	"github.com/chybatronik/goUserDirectory/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultOperationTimeout bounds every database operation.
const DefaultOperationTimeout = 5 * time.Second

// Sentinel errors for the soft-delete state machine. The caller maps them
// to 404/409 at the HTTP boundary.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyDeleted = errors.New("user already deleted")
)

const userColumns = "id, fname, lname, email, review, created_at"

// CountActiveUsers returns the number of records visible through the read
// endpoints.
func CountActiveUsers(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	var total int64
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE status = 'active'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return total, nil
}

// ListUsers fetches one page of active users plus the total active count.
// Ordering is fname descending with id descending as the tie-breaker, so
// a fixed (offset, limit) window is deterministic. The count and the page
// are two statements; a total that moves between them is an accepted,
// benign inconsistency.
func ListUsers(ctx context.Context, pool *pgxpool.Pool, params types.ListUsersParams) ([]models.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	if err := validateListParams(params); err != nil {
		return nil, 0, fmt.Errorf("parameter validation failed: %w", err)
	}

	total, err := CountActiveUsers(ctx, pool)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE status = 'active'
		ORDER BY fname DESC, id DESC
		LIMIT $1 OFFSET $2`, userColumns)

	rows, err := pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// SearchUsers runs a case-insensitive substring match against fname,
// lname, and the concatenated full name of active records. It returns at
// most types.SearchResultCap rows ordered by (fname, lname, id) ascending,
// the unbounded count of matching records, and the overall active total.
func SearchUsers(ctx context.Context, pool *pgxpool.Pool, params types.SearchUsersParams) ([]models.User, int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	if params.Term == "" {
		return nil, 0, 0, fmt.Errorf("search term must not be empty")
	}

	pattern := "%" + params.Term + "%"

	searchPredicate := `
		status = 'active'
		AND (
			LOWER(fname) LIKE LOWER($1)
			OR LOWER(lname) LIKE LOWER($1)
			OR LOWER(fname || ' ' || lname) LIKE LOWER($1)
		)`

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY fname ASC, lname ASC, id ASC
		LIMIT %d`, userColumns, searchPredicate, types.SearchResultCap)

	rows, err := pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	// Count of ALL matching active users, not just the capped page, so the
	// client can show "Showing 6 of N matches".
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s`, searchPredicate)

	var matchTotal int64
	if err := pool.QueryRow(ctx, countQuery, pattern).Scan(&matchTotal); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count search matches: %w", err)
	}

	total, err := CountActiveUsers(ctx, pool)
	if err != nil {
		return nil, 0, 0, err
	}

	return users, matchTotal, total, nil
}

// SoftDeleteUser transitions a record from active to deleted and returns
// the fresh active total. The transition is a conditional update guarded
// by the current status, so concurrent deletes of the same id resolve to
// exactly one winner; the losers see zero affected rows and get
// ErrUserAlreadyDeleted.
func SoftDeleteUser(ctx context.Context, pool *pgxpool.Pool, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	if id < 1 {
		return 0, fmt.Errorf("user id must be a positive integer")
	}

	// Status probe distinguishes 404 from 409. The probe is advisory: the
	// conditional update below is what actually decides the race.
	var status string
	err := pool.QueryRow(ctx, `SELECT status FROM users WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to look up user %d: %w", id, err)
	}

	if status == models.StatusDeleted {
		return 0, ErrUserAlreadyDeleted
	}

	cmdTag, err := pool.Exec(ctx,
		`UPDATE users SET status = 'deleted' WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Lost the race to a concurrent delete between probe and update.
		return 0, ErrUserAlreadyDeleted
	}

	total, err := CountActiveUsers(ctx, pool)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// validateListParams validates the pagination window
func validateListParams(params types.ListUsersParams) error {
	if params.Limit < types.MinLimit || params.Limit > types.MaxLimit {
		return fmt.Errorf("invalid limit: %d (must be between %d and %d)",
			params.Limit, types.MinLimit, types.MaxLimit)
	}

	if params.Offset < 0 {
		return fmt.Errorf("invalid offset: %d (must be >= 0)", params.Offset)
	}

	return nil
}

// scanUsers collects user rows, returning an empty slice rather than nil
// so the JSON encoding is always an array.
func scanUsers(rows pgx.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Fname, &user.Lname, &user.Email, &user.Review, &user.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.Status = models.StatusActive
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
