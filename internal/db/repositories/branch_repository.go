// branch_repository.go implements BranchRepository for satellite church
// locations.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// BranchRepository handles branch database operations
type BranchRepository struct {
	db *sqlx.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *sqlx.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// CreateBranch inserts a new branch
func (r *BranchRepository) CreateBranch(ctx context.Context, b *models.Branch) error {
	b.ID = uuid.New().String()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO branches (id, name, address, phone, email, pastor_name, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Address, b.Phone, b.Email, b.PastorName,
		b.ImagePath, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetBranch retrieves a branch by ID, or nil if not found
func (r *BranchRepository) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	var b models.Branch
	err := r.db.GetContext(ctx, &b, `SELECT * FROM branches WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBranches returns all branches ordered by name
func (r *BranchRepository) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	var branches []*models.Branch
	err := r.db.SelectContext(ctx, &branches, `SELECT * FROM branches ORDER BY name ASC`)
	return branches, err
}

// UpdateBranch updates an existing branch
func (r *BranchRepository) UpdateBranch(ctx context.Context, b *models.Branch) error {
	query := `
		UPDATE branches SET
			name = $2, address = $3, phone = $4, email = $5,
			pastor_name = $6, image_path = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Address, b.Phone, b.Email,
		b.PastorName, b.ImagePath, time.Now(),
	)
	return err
}

// DeleteBranch deletes a branch and reports whether a row was removed
func (r *BranchRepository) DeleteBranch(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a branch with the given ID exists
func (r *BranchRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM branches WHERE id = $1)`, id)
	return exists, err
}
