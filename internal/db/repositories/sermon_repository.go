// sermon_repository.go implements SermonRepository, providing filtered sermon
// queries for the public archive and admin CRUD.
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

// SermonRepository handles sermon database operations
type SermonRepository struct {
	db *sqlx.DB
}

// NewSermonRepository creates a new sermon repository
func NewSermonRepository(db *sqlx.DB) *SermonRepository {
	return &SermonRepository{db: db}
}

// SermonFilters contains filters for querying sermons
type SermonFilters struct {
	Speaker       *string
	Series        *string
	PublishedOnly bool
}

// CreateSermon inserts a new sermon
func (r *SermonRepository) CreateSermon(ctx context.Context, s *models.Sermon) error {
	s.ID = uuid.New().String()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO sermons (id, title, speaker, series, description, video_url, audio_url,
			image_path, preached_at, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Speaker, s.Series, s.Description, s.VideoURL, s.AudioURL,
		s.ImagePath, s.PreachedAt, s.IsPublished, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// GetSermon retrieves a sermon by ID, or nil if not found
func (r *SermonRepository) GetSermon(ctx context.Context, id string) (*models.Sermon, error) {
	var s models.Sermon
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sermons WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSermons retrieves sermons with optional filters and pagination, newest first
func (r *SermonRepository) ListSermons(ctx context.Context, filters SermonFilters, limit, offset int) ([]*models.Sermon, int, error) {
	countQuery := `SELECT COUNT(*) FROM sermons WHERE 1=1`
	query := `SELECT * FROM sermons WHERE 1=1`

	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Speaker != nil {
		clause := fmt.Sprintf(` AND speaker = $%d`, paramIndex)
		countQuery += clause
		query += clause
		args = append(args, *filters.Speaker)
		paramIndex++
	}

	if filters.Series != nil {
		clause := fmt.Sprintf(` AND series = $%d`, paramIndex)
		countQuery += clause
		query += clause
		args = append(args, *filters.Series)
		paramIndex++
	}

	if filters.PublishedOnly {
		countQuery += ` AND is_published = true`
		query += ` AND is_published = true`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY preached_at DESC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	var sermons []*models.Sermon
	if err := r.db.SelectContext(ctx, &sermons, query, args...); err != nil {
		return nil, 0, err
	}

	return sermons, total, nil
}

// UpdateSermon updates an existing sermon
func (r *SermonRepository) UpdateSermon(ctx context.Context, s *models.Sermon) error {
	query := `
		UPDATE sermons SET
			title = $2, speaker = $3, series = $4, description = $5,
			video_url = $6, audio_url = $7, image_path = $8,
			preached_at = $9, is_published = $10, updated_at = $11
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Speaker, s.Series, s.Description,
		s.VideoURL, s.AudioURL, s.ImagePath,
		s.PreachedAt, s.IsPublished, time.Now(),
	)
	return err
}

// DeleteSermon deletes a sermon and reports whether a row was removed
func (r *SermonRepository) DeleteSermon(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sermons WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a sermon with the given ID exists
func (r *SermonRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM sermons WHERE id = $1)`, id)
	return exists, err
}
