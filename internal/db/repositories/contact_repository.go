// contact_repository.go implements repositories for visitor-submitted
// contact messages and testimonies.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// ContactMessageRepository handles contact form database operations
type ContactMessageRepository struct {
	db *sqlx.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sqlx.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

// CreateContactMessage inserts a message from the public contact form
func (r *ContactMessageRepository) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()

	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message, m.IsRead, m.CreatedAt,
	)
	return err
}

// ListContactMessages retrieves messages with pagination, newest first.
// unreadOnly restricts to messages not yet marked read.
func (r *ContactMessageRepository) ListContactMessages(ctx context.Context, unreadOnly bool, limit, offset int) ([]*models.ContactMessage, int, error) {
	countQuery := `SELECT COUNT(*) FROM contact_messages`
	query := `SELECT * FROM contact_messages`
	if unreadOnly {
		countQuery += ` WHERE is_read = false`
		query += ` WHERE is_read = false`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var messages []*models.ContactMessage
	if err := r.db.SelectContext(ctx, &messages, query, limit, offset); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkContactMessageRead flags a message as read
func (r *ContactMessageRepository) MarkContactMessageRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	return err
}

// DeleteContactMessage deletes a message and reports whether a row was removed
func (r *ContactMessageRepository) DeleteContactMessage(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// TestimonyRepository handles testimony database operations
type TestimonyRepository struct {
	db *sqlx.DB
}

// NewTestimonyRepository creates a new testimony repository
func NewTestimonyRepository(db *sqlx.DB) *TestimonyRepository {
	return &TestimonyRepository{db: db}
}

// CreateTestimony inserts a new testimony (unapproved by default)
func (r *TestimonyRepository) CreateTestimony(ctx context.Context, t *models.Testimony) error {
	t.ID = uuid.New().String()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO testimonies (id, author_name, content, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.AuthorName, t.Content, t.IsApproved, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetTestimony retrieves a testimony by ID, or nil if not found
func (r *TestimonyRepository) GetTestimony(ctx context.Context, id string) (*models.Testimony, error) {
	var t models.Testimony
	err := r.db.GetContext(ctx, &t, `SELECT * FROM testimonies WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTestimonies returns testimonies, newest first. approvedOnly restricts
// to testimonies shown on the public site.
func (r *TestimonyRepository) ListTestimonies(ctx context.Context, approvedOnly bool) ([]*models.Testimony, error) {
	query := `SELECT * FROM testimonies`
	if approvedOnly {
		query += ` WHERE is_approved = true`
	}
	query += ` ORDER BY created_at DESC`

	var testimonies []*models.Testimony
	err := r.db.SelectContext(ctx, &testimonies, query)
	return testimonies, err
}

// UpdateTestimony updates an existing testimony
func (r *TestimonyRepository) UpdateTestimony(ctx context.Context, t *models.Testimony) error {
	query := `
		UPDATE testimonies SET author_name = $2, content = $3, is_approved = $4, updated_at = $5
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.AuthorName, t.Content, t.IsApproved, time.Now())
	return err
}

// DeleteTestimony deletes a testimony and reports whether a row was removed
func (r *TestimonyRepository) DeleteTestimony(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM testimonies WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
