// store.go implements admin CRUD for the church store catalog. Prices are
// entered in USD; public price endpoints convert through the rate cache.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/db/repositories"
	"github.com/churchsite/church-backend/internal/events"
)

// StoreAdminHandlers manages books and merchandise
type StoreAdminHandlers struct {
	books *repositories.BookRepository
	merch *repositories.MerchandiseRepository
	bus   *events.Bus
}

// NewStoreAdminHandlers creates a new StoreAdminHandlers instance
func NewStoreAdminHandlers(db *sqlx.DB, bus *events.Bus) *StoreAdminHandlers {
	return &StoreAdminHandlers{
		books: repositories.NewBookRepository(db),
		merch: repositories.NewMerchandiseRepository(db),
		bus:   bus,
	}
}

// BookRequest is the create/update payload for a book
type BookRequest struct {
	Title          string  `json:"title" binding:"required"`
	Author         string  `json:"author"`
	Description    string  `json:"description"`
	PriceUSD       float64 `json:"price_usd" binding:"required,gt=0"`
	ImagePath      string  `json:"image_path"`
	ImageSizeBytes *int64  `json:"image_size_bytes"`
	IsAvailable    *bool   `json:"is_available"`
}

// ListBooks lists all books including unavailable ones
// GET /api/v1/admin/store/books
func (h *StoreAdminHandlers) ListBooks(c *gin.Context) {
	books, err := h.books.ListBooks(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list books",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

// CreateBook adds a book to the catalog
// POST /api/v1/admin/store/books
func (h *StoreAdminHandlers) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PriceUSD:    req.PriceUSD,
		ImagePath:   req.ImagePath,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}

	if err := h.books.CreateBook(c.Request.Context(), book); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create book",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindBook,
		EntityID:       book.ID,
		EntityLabel:    book.Title,
		ImagePath:      book.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// UpdateBook updates a catalog book
// PUT /api/v1/admin/store/books/:id
func (h *StoreAdminHandlers) UpdateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve book",
		})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
		return
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Description = req.Description
	book.PriceUSD = req.PriceUSD
	book.ImagePath = req.ImagePath
	if req.IsAvailable != nil {
		book.IsAvailable = *req.IsAvailable
	}

	if err := h.books.UpdateBook(c.Request.Context(), book); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update book",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindBook,
		EntityID:    book.ID,
		EntityLabel: book.Title,
		ImagePath:   book.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// DeleteBook removes a book from the catalog
// DELETE /api/v1/admin/store/books/:id
func (h *StoreAdminHandlers) DeleteBook(c *gin.Context) {
	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve book",
		})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindBook,
		EntityID:    book.ID,
		EntityLabel: book.Title,
		ImagePath:   book.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.books.DeleteBook(c.Request.Context(), book.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete book",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// MerchandiseRequest is the create/update payload for a merchandise item
type MerchandiseRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	PriceUSD       float64 `json:"price_usd" binding:"required,gt=0"`
	ImagePath      string  `json:"image_path"`
	ImageSizeBytes *int64  `json:"image_size_bytes"`
	IsAvailable    *bool   `json:"is_available"`
}

// ListMerchandise lists all merchandise including unavailable items
// GET /api/v1/admin/store/merchandise
func (h *StoreAdminHandlers) ListMerchandise(c *gin.Context) {
	items, err := h.merch.ListMerchandise(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list merchandise",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchandise": items})
}

// CreateMerchandise adds a merchandise item
// POST /api/v1/admin/store/merchandise
func (h *StoreAdminHandlers) CreateMerchandise(c *gin.Context) {
	var req MerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	item := &models.Merchandise{
		Name:        req.Name,
		Description: req.Description,
		PriceUSD:    req.PriceUSD,
		ImagePath:   req.ImagePath,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}

	if err := h.merch.CreateMerchandise(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create merchandise",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:             events.OpCreate,
		EntityType:     events.KindMerchandise,
		EntityID:       item.ID,
		EntityLabel:    item.Name,
		ImagePath:      item.ImagePath,
		ImageSizeBytes: req.ImageSizeBytes,
	})

	c.JSON(http.StatusCreated, gin.H{"merchandise": item})
}

// UpdateMerchandise updates a merchandise item
// PUT /api/v1/admin/store/merchandise/:id
func (h *StoreAdminHandlers) UpdateMerchandise(c *gin.Context) {
	var req MerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	item, err := h.merch.GetMerchandise(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merchandise",
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Merchandise not found",
		})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.PriceUSD = req.PriceUSD
	item.ImagePath = req.ImagePath
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.merch.UpdateMerchandise(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update merchandise",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), events.Change{
		Op:          events.OpUpdate,
		EntityType:  events.KindMerchandise,
		EntityID:    item.ID,
		EntityLabel: item.Name,
		ImagePath:   item.ImagePath,
	})

	c.JSON(http.StatusOK, gin.H{"merchandise": item})
}

// DeleteMerchandise removes a merchandise item
// DELETE /api/v1/admin/store/merchandise/:id
func (h *StoreAdminHandlers) DeleteMerchandise(c *gin.Context) {
	item, err := h.merch.GetMerchandise(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merchandise",
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Merchandise not found",
		})
		return
	}

	change := events.Change{
		Op:          events.OpDelete,
		EntityType:  events.KindMerchandise,
		EntityID:    item.ID,
		EntityLabel: item.Name,
		ImagePath:   item.ImagePath,
	}
	h.bus.PublishPreDelete(c.Request.Context(), change)

	if _, err := h.merch.DeleteMerchandise(c.Request.Context(), item.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete merchandise",
		})
		return
	}

	h.bus.Publish(c.Request.Context(), change)

	c.JSON(http.StatusOK, gin.H{"message": "Merchandise deleted"})
}
