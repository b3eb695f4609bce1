// banner_repository.go implements HomeBannerRepository for the homepage
// carousel slides.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// HomeBannerRepository handles homepage banner database operations
type HomeBannerRepository struct {
	db *sqlx.DB
}

// NewHomeBannerRepository creates a new banner repository
func NewHomeBannerRepository(db *sqlx.DB) *HomeBannerRepository {
	return &HomeBannerRepository{db: db}
}

// CreateBanner inserts a new banner
func (r *HomeBannerRepository) CreateBanner(ctx context.Context, b *models.HomeBanner) error {
	b.ID = uuid.New().String()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO home_banners (id, title, subtitle, image_path, link_url, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Subtitle, b.ImagePath, b.LinkURL,
		b.IsActive, b.SortOrder, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetBanner retrieves a banner by ID, or nil if not found
func (r *HomeBannerRepository) GetBanner(ctx context.Context, id string) (*models.HomeBanner, error) {
	var b models.HomeBanner
	err := r.db.GetContext(ctx, &b, `SELECT * FROM home_banners WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBanners returns banners ordered for display. activeOnly restricts to
// banners shown on the public site.
func (r *HomeBannerRepository) ListBanners(ctx context.Context, activeOnly bool) ([]*models.HomeBanner, error) {
	var banners []*models.HomeBanner
	query := `SELECT * FROM home_banners`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order ASC, created_at DESC`
	err := r.db.SelectContext(ctx, &banners, query)
	return banners, err
}

// UpdateBanner updates an existing banner
func (r *HomeBannerRepository) UpdateBanner(ctx context.Context, b *models.HomeBanner) error {
	query := `
		UPDATE home_banners SET
			title = $2, subtitle = $3, image_path = $4, link_url = $5,
			is_active = $6, sort_order = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Subtitle, b.ImagePath, b.LinkURL,
		b.IsActive, b.SortOrder, time.Now(),
	)
	return err
}

// DeleteBanner deletes a banner and reports whether a row was removed
func (r *HomeBannerRepository) DeleteBanner(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM home_banners WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a banner with the given ID exists
func (r *HomeBannerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM home_banners WHERE id = $1)`, id)
	return exists, err
}
