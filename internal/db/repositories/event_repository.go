// event_repository.go implements EventRepository for church events and
// programs.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// EventRepository handles event database operations
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventFilters contains filters for querying events
type EventFilters struct {
	Category   *string
	ActiveOnly bool
	// UpcomingOnly restricts to events that have not yet started
	UpcomingOnly bool
}

// CreateEvent inserts a new event
func (r *EventRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	e.ID = uuid.New().String()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO events (id, title, category, description, location, image_path,
			starts_at, ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Category, e.Description, e.Location, e.ImagePath,
		e.StartsAt, e.EndsAt, e.IsActive, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetEvent retrieves an event by ID, or nil if not found
func (r *EventRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := r.db.GetContext(ctx, &e, `SELECT * FROM events WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEvents retrieves events with optional filters and pagination, soonest first
func (r *EventRepository) ListEvents(ctx context.Context, filters EventFilters, limit, offset int) ([]*models.Event, int, error) {
	countQuery := `SELECT COUNT(*) FROM events WHERE 1=1`
	query := `SELECT * FROM events WHERE 1=1`

	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Category != nil {
		clause := fmt.Sprintf(` AND category = $%d`, paramIndex)
		countQuery += clause
		query += clause
		args = append(args, *filters.Category)
		paramIndex++
	}

	if filters.ActiveOnly {
		countQuery += ` AND is_active = true`
		query += ` AND is_active = true`
	}

	if filters.UpcomingOnly {
		clause := fmt.Sprintf(` AND starts_at >= $%d`, paramIndex)
		countQuery += clause
		query += clause
		args = append(args, time.Now())
		paramIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY starts_at ASC NULLS LAST LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	var events []*models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// UpdateEvent updates an existing event
func (r *EventRepository) UpdateEvent(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events SET
			title = $2, category = $3, description = $4, location = $5,
			image_path = $6, starts_at = $7, ends_at = $8, is_active = $9, updated_at = $10
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Category, e.Description, e.Location,
		e.ImagePath, e.StartsAt, e.EndsAt, e.IsActive, time.Now(),
	)
	return err
}

// DeleteEvent deletes an event and reports whether a row was removed
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether an event with the given ID exists
func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id)
	return exists, err
}
