// giving_repository.go implements repositories for the GivingInfo singleton
// and the giving page image strip.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// GivingInfoRepository handles the giving_info singleton
type GivingInfoRepository struct {
	db *sqlx.DB
}

// NewGivingInfoRepository creates a new giving info repository
func NewGivingInfoRepository(db *sqlx.DB) *GivingInfoRepository {
	return &GivingInfoRepository{db: db}
}

// GetGivingInfo retrieves the singleton row, or nil if not yet created
func (r *GivingInfoRepository) GetGivingInfo(ctx context.Context) (*models.GivingInfo, error) {
	var info models.GivingInfo
	err := r.db.GetContext(ctx, &info, `SELECT * FROM giving_info LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateGivingInfo inserts the singleton row. Returns ErrSingletonExists if a
// row is already present.
func (r *GivingInfoRepository) CreateGivingInfo(ctx context.Context, info *models.GivingInfo) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM giving_info`); err != nil {
		return err
	}
	if count > 0 {
		return ErrSingletonExists
	}

	info.ID = uuid.New().String()
	now := time.Now()
	info.CreatedAt = now
	info.UpdatedAt = now

	query := `
		INSERT INTO giving_info (id, heading, message, bank_name, account_name, account_number,
			mobile_money_name, mobile_money_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		info.ID, info.Heading, info.Message, info.BankName, info.AccountName,
		info.AccountNumber, info.MobileMoneyName, info.MobileMoneyNumber,
		info.CreatedAt, info.UpdatedAt,
	)
	return err
}

// UpdateGivingInfo updates the singleton row
func (r *GivingInfoRepository) UpdateGivingInfo(ctx context.Context, info *models.GivingInfo) error {
	query := `
		UPDATE giving_info SET
			heading = $2, message = $3, bank_name = $4, account_name = $5,
			account_number = $6, mobile_money_name = $7, mobile_money_number = $8,
			updated_at = $9
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		info.ID, info.Heading, info.Message, info.BankName, info.AccountName,
		info.AccountNumber, info.MobileMoneyName, info.MobileMoneyNumber, time.Now(),
	)
	return err
}

// GivingImageRepository handles giving page image database operations
type GivingImageRepository struct {
	db *sqlx.DB
}

// NewGivingImageRepository creates a new giving image repository
func NewGivingImageRepository(db *sqlx.DB) *GivingImageRepository {
	return &GivingImageRepository{db: db}
}

// CreateGivingImage inserts a new giving page image
func (r *GivingImageRepository) CreateGivingImage(ctx context.Context, g *models.GivingImage) error {
	g.ID = uuid.New().String()
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := `
		INSERT INTO giving_images (id, caption, image_path, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.Caption, g.ImagePath, g.SortOrder, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

// GetGivingImage retrieves a giving page image by ID, or nil if not found
func (r *GivingImageRepository) GetGivingImage(ctx context.Context, id string) (*models.GivingImage, error) {
	var g models.GivingImage
	err := r.db.GetContext(ctx, &g, `SELECT * FROM giving_images WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGivingImages returns giving page images ordered for display
func (r *GivingImageRepository) ListGivingImages(ctx context.Context) ([]*models.GivingImage, error) {
	var images []*models.GivingImage
	err := r.db.SelectContext(ctx, &images, `SELECT * FROM giving_images ORDER BY sort_order ASC, created_at DESC`)
	return images, err
}

// UpdateGivingImage updates an existing giving page image
func (r *GivingImageRepository) UpdateGivingImage(ctx context.Context, g *models.GivingImage) error {
	query := `
		UPDATE giving_images SET caption = $2, image_path = $3, sort_order = $4, updated_at = $5
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, g.ID, g.Caption, g.ImagePath, g.SortOrder, time.Now())
	return err
}

// DeleteGivingImage deletes a giving page image and reports whether a row was removed
func (r *GivingImageRepository) DeleteGivingImage(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM giving_images WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a giving page image with the given ID exists
func (r *GivingImageRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM giving_images WHERE id = $1)`, id)
	return exists, err
}
