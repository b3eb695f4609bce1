// church_repository.go implements repositories for the ChurchInfo and
// HeadPastor singletons and the weekly service schedule.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// ChurchInfoRepository handles the church_info singleton
type ChurchInfoRepository struct {
	db *sqlx.DB
}

// NewChurchInfoRepository creates a new church info repository
func NewChurchInfoRepository(db *sqlx.DB) *ChurchInfoRepository {
	return &ChurchInfoRepository{db: db}
}

// GetChurchInfo retrieves the singleton row, or nil if not yet created
func (r *ChurchInfoRepository) GetChurchInfo(ctx context.Context) (*models.ChurchInfo, error) {
	var info models.ChurchInfo
	err := r.db.GetContext(ctx, &info, `SELECT * FROM church_info LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateChurchInfo inserts the singleton row. Returns ErrSingletonExists if a
// row is already present.
func (r *ChurchInfoRepository) CreateChurchInfo(ctx context.Context, info *models.ChurchInfo) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM church_info`); err != nil {
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
		INSERT INTO church_info (id, name, mission, vision, about, address, phone, email,
			facebook_url, youtube_url, instagram_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		info.ID, info.Name, info.Mission, info.Vision, info.About,
		info.Address, info.Phone, info.Email,
		info.FacebookURL, info.YoutubeURL, info.InstagramURL,
		info.CreatedAt, info.UpdatedAt,
	)
	return err
}

// UpdateChurchInfo updates the singleton row
func (r *ChurchInfoRepository) UpdateChurchInfo(ctx context.Context, info *models.ChurchInfo) error {
	query := `
		UPDATE church_info SET
			name = $2, mission = $3, vision = $4, about = $5, address = $6,
			phone = $7, email = $8, facebook_url = $9, youtube_url = $10,
			instagram_url = $11, updated_at = $12
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		info.ID, info.Name, info.Mission, info.Vision, info.About,
		info.Address, info.Phone, info.Email,
		info.FacebookURL, info.YoutubeURL, info.InstagramURL, time.Now(),
	)
	return err
}

// HeadPastorRepository handles the head_pastors singleton
type HeadPastorRepository struct {
	db *sqlx.DB
}

// NewHeadPastorRepository creates a new head pastor repository
func NewHeadPastorRepository(db *sqlx.DB) *HeadPastorRepository {
	return &HeadPastorRepository{db: db}
}

// GetHeadPastor retrieves the singleton row, or nil if not yet created
func (r *HeadPastorRepository) GetHeadPastor(ctx context.Context) (*models.HeadPastor, error) {
	var hp models.HeadPastor
	err := r.db.GetContext(ctx, &hp, `SELECT * FROM head_pastors LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hp, nil
}

// CreateHeadPastor inserts the singleton row. Returns ErrSingletonExists if a
// row is already present.
func (r *HeadPastorRepository) CreateHeadPastor(ctx context.Context, hp *models.HeadPastor) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM head_pastors`); err != nil {
		return err
	}
	if count > 0 {
		return ErrSingletonExists
	}

	hp.ID = uuid.New().String()
	now := time.Now()
	hp.CreatedAt = now
	hp.UpdatedAt = now

	query := `
		INSERT INTO head_pastors (id, name, title, bio, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		hp.ID, hp.Name, hp.Title, hp.Bio, hp.ImagePath, hp.CreatedAt, hp.UpdatedAt,
	)
	return err
}

// UpdateHeadPastor updates the singleton row
func (r *HeadPastorRepository) UpdateHeadPastor(ctx context.Context, hp *models.HeadPastor) error {
	query := `
		UPDATE head_pastors SET name = $2, title = $3, bio = $4, image_path = $5, updated_at = $6
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		hp.ID, hp.Name, hp.Title, hp.Bio, hp.ImagePath, time.Now(),
	)
	return err
}

// DeleteHeadPastor deletes the profile and reports whether a row was removed
func (r *HeadPastorRepository) DeleteHeadPastor(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM head_pastors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a head pastor row with the given ID exists
func (r *HeadPastorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM head_pastors WHERE id = $1)`, id)
	return exists, err
}

// ServiceTimeRepository handles the weekly service schedule
type ServiceTimeRepository struct {
	db *sqlx.DB
}

// NewServiceTimeRepository creates a new service time repository
func NewServiceTimeRepository(db *sqlx.DB) *ServiceTimeRepository {
	return &ServiceTimeRepository{db: db}
}

// CreateServiceTime inserts a new schedule entry
func (r *ServiceTimeRepository) CreateServiceTime(ctx context.Context, st *models.ServiceTime) error {
	st.ID = uuid.New().String()
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now

	query := `
		INSERT INTO service_times (id, name, day_of_week, start_time, end_time, location, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		st.ID, st.Name, st.DayOfWeek, st.StartTime, st.EndTime,
		st.Location, st.IsActive, st.SortOrder, st.CreatedAt, st.UpdatedAt,
	)
	return err
}

// GetServiceTime retrieves a schedule entry by ID, or nil if not found
func (r *ServiceTimeRepository) GetServiceTime(ctx context.Context, id string) (*models.ServiceTime, error) {
	var st models.ServiceTime
	err := r.db.GetContext(ctx, &st, `SELECT * FROM service_times WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListServiceTimes returns schedule entries, optionally filtered by day.
// activeOnly restricts to entries shown on the public site.
func (r *ServiceTimeRepository) ListServiceTimes(ctx context.Context, dayOfWeek string, activeOnly bool) ([]*models.ServiceTime, error) {
	query := `SELECT * FROM service_times WHERE 1=1`
	args := make([]interface{}, 0)

	if dayOfWeek != "" {
		args = append(args, dayOfWeek)
		query += ` AND day_of_week = $1`
	}
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY sort_order ASC, start_time ASC`

	var times []*models.ServiceTime
	err := r.db.SelectContext(ctx, &times, query, args...)
	return times, err
}

// UpdateServiceTime updates an existing schedule entry
func (r *ServiceTimeRepository) UpdateServiceTime(ctx context.Context, st *models.ServiceTime) error {
	query := `
		UPDATE service_times SET
			name = $2, day_of_week = $3, start_time = $4, end_time = $5,
			location = $6, is_active = $7, sort_order = $8, updated_at = $9
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		st.ID, st.Name, st.DayOfWeek, st.StartTime, st.EndTime,
		st.Location, st.IsActive, st.SortOrder, time.Now(),
	)
	return err
}

// DeleteServiceTime deletes a schedule entry and reports whether a row was removed
func (r *ServiceTimeRepository) DeleteServiceTime(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_times WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
