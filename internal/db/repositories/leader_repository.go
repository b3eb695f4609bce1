// leader_repository.go implements LeaderRepository for leadership profiles
// and PhotoGalleryRepository for the gallery page.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// LeaderRepository handles leadership profile database operations
type LeaderRepository struct {
	db *sqlx.DB
}

// NewLeaderRepository creates a new leader repository
func NewLeaderRepository(db *sqlx.DB) *LeaderRepository {
	return &LeaderRepository{db: db}
}

// CreateLeader inserts a new leadership profile
func (r *LeaderRepository) CreateLeader(ctx context.Context, l *models.Leader) error {
	l.ID = uuid.New().String()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
		INSERT INTO leaders (id, name, role, bio, image_path, is_featured, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Role, l.Bio, l.ImagePath,
		l.IsFeatured, l.SortOrder, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// GetLeader retrieves a leadership profile by ID, or nil if not found
func (r *LeaderRepository) GetLeader(ctx context.Context, id string) (*models.Leader, error) {
	var l models.Leader
	err := r.db.GetContext(ctx, &l, `SELECT * FROM leaders WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeaders returns leadership profiles ordered for display.
// featuredOnly restricts to profiles highlighted on the homepage.
func (r *LeaderRepository) ListLeaders(ctx context.Context, featuredOnly bool) ([]*models.Leader, error) {
	query := `SELECT * FROM leaders`
	if featuredOnly {
		query += ` WHERE is_featured = true`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	var leaders []*models.Leader
	err := r.db.SelectContext(ctx, &leaders, query)
	return leaders, err
}

// UpdateLeader updates an existing leadership profile
func (r *LeaderRepository) UpdateLeader(ctx context.Context, l *models.Leader) error {
	query := `
		UPDATE leaders SET
			name = $2, role = $3, bio = $4, image_path = $5,
			is_featured = $6, sort_order = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Role, l.Bio, l.ImagePath,
		l.IsFeatured, l.SortOrder, time.Now(),
	)
	return err
}

// DeleteLeader deletes a leadership profile and reports whether a row was removed
func (r *LeaderRepository) DeleteLeader(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leaders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a leader with the given ID exists
func (r *LeaderRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM leaders WHERE id = $1)`, id)
	return exists, err
}

// PhotoGalleryRepository handles gallery photo database operations
type PhotoGalleryRepository struct {
	db *sqlx.DB
}

// NewPhotoGalleryRepository creates a new photo gallery repository
func NewPhotoGalleryRepository(db *sqlx.DB) *PhotoGalleryRepository {
	return &PhotoGalleryRepository{db: db}
}

// CreatePhoto inserts a new gallery photo
func (r *PhotoGalleryRepository) CreatePhoto(ctx context.Context, p *models.PhotoGalleryItem) error {
	p.ID = uuid.New().String()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO photo_gallery (id, title, category, image_path, taken_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Category, p.ImagePath, p.TakenAt, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetPhoto retrieves a gallery photo by ID, or nil if not found
func (r *PhotoGalleryRepository) GetPhoto(ctx context.Context, id string) (*models.PhotoGalleryItem, error) {
	var p models.PhotoGalleryItem
	err := r.db.GetContext(ctx, &p, `SELECT * FROM photo_gallery WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPhotos returns gallery photos, optionally filtered by category, newest first
func (r *PhotoGalleryRepository) ListPhotos(ctx context.Context, category string) ([]*models.PhotoGalleryItem, error) {
	query := `SELECT * FROM photo_gallery`
	args := make([]interface{}, 0)
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	var photos []*models.PhotoGalleryItem
	err := r.db.SelectContext(ctx, &photos, query, args...)
	return photos, err
}

// UpdatePhoto updates an existing gallery photo
func (r *PhotoGalleryRepository) UpdatePhoto(ctx context.Context, p *models.PhotoGalleryItem) error {
	query := `
		UPDATE photo_gallery SET title = $2, category = $3, image_path = $4, taken_at = $5, updated_at = $6
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Category, p.ImagePath, p.TakenAt, time.Now(),
	)
	return err
}

// DeletePhoto deletes a gallery photo and reports whether a row was removed
func (r *PhotoGalleryRepository) DeletePhoto(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photo_gallery WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a gallery photo with the given ID exists
func (r *PhotoGalleryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM photo_gallery WHERE id = $1)`, id)
	return exists, err
}
