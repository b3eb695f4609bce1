// store_repository.go implements repositories for books and merchandise sold
// through the church store.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
)

// BookRepository handles book database operations
type BookRepository struct {
	db *sqlx.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

// CreateBook inserts a new book
func (r *BookRepository) CreateBook(ctx context.Context, b *models.Book) error {
	b.ID = uuid.New().String()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO books (id, title, author, description, price_usd, image_path, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Author, b.Description, b.PriceUSD,
		b.ImagePath, b.IsAvailable, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetBook retrieves a book by ID, or nil if not found
func (r *BookRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	err := r.db.GetContext(ctx, &b, `SELECT * FROM books WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBooks returns books ordered by title. availableOnly restricts to books
// currently for sale.
func (r *BookRepository) ListBooks(ctx context.Context, availableOnly bool) ([]*models.Book, error) {
	query := `SELECT * FROM books`
	if availableOnly {
		query += ` WHERE is_available = true`
	}
	query += ` ORDER BY title ASC`

	var books []*models.Book
	err := r.db.SelectContext(ctx, &books, query)
	return books, err
}

// UpdateBook updates an existing book
func (r *BookRepository) UpdateBook(ctx context.Context, b *models.Book) error {
	query := `
		UPDATE books SET
			title = $2, author = $3, description = $4, price_usd = $5,
			image_path = $6, is_available = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Author, b.Description, b.PriceUSD,
		b.ImagePath, b.IsAvailable, time.Now(),
	)
	return err
}

// DeleteBook deletes a book and reports whether a row was removed
func (r *BookRepository) DeleteBook(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a book with the given ID exists
func (r *BookRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id)
	return exists, err
}

// MerchandiseRepository handles merchandise database operations
type MerchandiseRepository struct {
	db *sqlx.DB
}

// NewMerchandiseRepository creates a new merchandise repository
func NewMerchandiseRepository(db *sqlx.DB) *MerchandiseRepository {
	return &MerchandiseRepository{db: db}
}

// CreateMerchandise inserts a new store item
func (r *MerchandiseRepository) CreateMerchandise(ctx context.Context, m *models.Merchandise) error {
	m.ID = uuid.New().String()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO merchandise (id, name, description, price_usd, image_path, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.PriceUSD,
		m.ImagePath, m.IsAvailable, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetMerchandise retrieves a store item by ID, or nil if not found
func (r *MerchandiseRepository) GetMerchandise(ctx context.Context, id string) (*models.Merchandise, error) {
	var m models.Merchandise
	err := r.db.GetContext(ctx, &m, `SELECT * FROM merchandise WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMerchandise returns store items ordered by name. availableOnly
// restricts to items currently for sale.
func (r *MerchandiseRepository) ListMerchandise(ctx context.Context, availableOnly bool) ([]*models.Merchandise, error) {
	query := `SELECT * FROM merchandise`
	if availableOnly {
		query += ` WHERE is_available = true`
	}
	query += ` ORDER BY name ASC`

	var items []*models.Merchandise
	err := r.db.SelectContext(ctx, &items, query)
	return items, err
}

// UpdateMerchandise updates an existing store item
func (r *MerchandiseRepository) UpdateMerchandise(ctx context.Context, m *models.Merchandise) error {
	query := `
		UPDATE merchandise SET
			name = $2, description = $3, price_usd = $4,
			image_path = $5, is_available = $6, updated_at = $7
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.PriceUSD,
		m.ImagePath, m.IsAvailable, time.Now(),
	)
	return err
}

// DeleteMerchandise deletes a store item and reports whether a row was removed
func (r *MerchandiseRepository) DeleteMerchandise(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM merchandise WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists reports whether a store item with the given ID exists
func (r *MerchandiseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM merchandise WHERE id = $1)`, id)
	return exists, err
}
