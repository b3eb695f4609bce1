// image_log_repository.go implements ImageLogRepository, providing database queries
// for the image provenance log and its orphan reconciliation sweep.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/churchsite/church-backend/internal/db/models"
)

// ImageLogRepository handles image provenance log database operations
type ImageLogRepository struct {
	db *sql.DB
}

// NewImageLogRepository creates a new ImageLogRepository
func NewImageLogRepository(db *sql.DB) *ImageLogRepository {
	return &ImageLogRepository{db: db}
}

// CreateImageLog inserts a new provenance record
func (r *ImageLogRepository) CreateImageLog(ctx context.Context, log *models.ImageLog) error {
	log.ID = uuid.New().String()
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO image_logs (id, image_path, owner_type, owner_id, section_label, file_size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.ImagePath,
		log.OwnerType,
		log.OwnerID,
		log.SectionLabel,
		log.FileSizeBytes,
		log.CreatedAt,
	)

	return err
}

// ListImageLogs retrieves provenance records with pagination, newest first.
// ownerType filters by owner kind when non-empty.
func (r *ImageLogRepository) ListImageLogs(ctx context.Context, ownerType string, limit, offset int) ([]*models.ImageLog, int, error) {
	countQuery := `SELECT COUNT(*) FROM image_logs`
	query := `
		SELECT id, image_path, owner_type, owner_id, section_label, file_size_bytes, created_at
		FROM image_logs
	`

	args := make([]interface{}, 0)
	if ownerType != "" {
		countQuery += ` WHERE owner_type = $1`
		query += ` WHERE owner_type = $1`
		args = append(args, ownerType)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if ownerType != "" {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]*models.ImageLog, 0)
	for rows.Next() {
		log := &models.ImageLog{}
		err := rows.Scan(
			&log.ID,
			&log.ImagePath,
			&log.OwnerType,
			&log.OwnerID,
			&log.SectionLabel,
			&log.FileSizeBytes,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, log)
	}

	return logs, total, rows.Err()
}

// ListOwnerIDsByType returns the distinct owner IDs that have provenance
// records of the given kind. Used by the reconciliation sweep.
func (r *ImageLogRepository) ListOwnerIDsByType(ctx context.Context, ownerType string) ([]string, error) {
	query := `SELECT DISTINCT owner_id FROM image_logs WHERE owner_type = $1`

	rows, err := r.db.QueryContext(ctx, query, ownerType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// DeleteByOwner removes all provenance records belonging to one entity and
// returns how many rows were deleted.
func (r *ImageLogRepository) DeleteByOwner(ctx context.Context, ownerType, ownerID string) (int64, error) {
	query := `DELETE FROM image_logs WHERE owner_type = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, ownerType, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
