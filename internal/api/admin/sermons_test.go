package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/events"
)

var sermonCols = []string{
	"id", "title", "speaker", "series", "description", "video_url", "audio_url",
	"image_path", "preached_at", "is_published", "created_at", "updated_at",
}

// busRecorder captures published changes for assertions.
type busRecorder struct {
	changes    []events.Change
	preDeletes []events.Change
}

func (b *busRecorder) register(bus *events.Bus) {
	bus.Subscribe(func(_ context.Context, c events.Change) {
		b.changes = append(b.changes, c)
	})
	bus.SubscribePreDelete(func(_ context.Context, c events.Change) {
		b.preDeletes = append(b.preDeletes, c)
	})
}

func newSermonTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *busRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bus := events.NewBus()
	rec := &busRecorder{}
	rec.register(bus)

	h := NewSermonHandlers(sqlx.NewDb(db, "postgres"), bus)
	router := gin.New()
	router.POST("/api/v1/admin/sermons", h.CreateSermon)
	router.DELETE("/api/v1/admin/sermons/:id", h.DeleteSermon)
	return router, mock, rec
}

func sampleSermonRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(sermonCols).
		AddRow("sermon-1", "The Prodigal Son", "Pastor John", "Parables", "",
			"", "", "sermons/prodigal.jpg", nil, true, now, now)
}

func TestCreateSermon_PublishesChange(t *testing.T) {
	router, mock, rec := newSermonTestRouter(t)
	mock.ExpectExec("INSERT INTO sermons").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sermons", strings.NewReader(`{
		"title": "The Prodigal Son",
		"speaker": "Pastor John",
		"series": "Parables",
		"image_path": "sermons/prodigal.jpg",
		"image_size_bytes": 204800
	}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	if len(rec.changes) != 1 {
		t.Fatalf("published %d changes, want 1", len(rec.changes))
	}
	change := rec.changes[0]
	if change.Op != events.OpCreate || change.EntityType != events.KindSermon {
		t.Errorf("change = %+v", change)
	}
	if change.EntityLabel != "The Prodigal Son" {
		t.Errorf("EntityLabel = %q, want the sermon title", change.EntityLabel)
	}
	if change.ImagePath != "sermons/prodigal.jpg" {
		t.Errorf("ImagePath = %q", change.ImagePath)
	}
	if change.ImageSizeBytes == nil || *change.ImageSizeBytes != 204800 {
		t.Errorf("ImageSizeBytes = %v, want 204800", change.ImageSizeBytes)
	}

	var body struct {
		Sermon struct {
			ID string `json:"id"`
		} `json:"sermon"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Sermon.ID == "" || change.EntityID != body.Sermon.ID {
		t.Errorf("change EntityID %q does not match created sermon %q", change.EntityID, body.Sermon.ID)
	}
}

func TestCreateSermon_ValidationSkipsBus(t *testing.T) {
	router, _, rec := newSermonTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sermons", strings.NewReader(`{"title": "No speaker"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(rec.changes) != 0 {
		t.Error("rejected request must not publish a change")
	}
}

func TestDeleteSermon_PreDeleteFiresBeforeDelete(t *testing.T) {
	router, mock, rec := newSermonTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM sermons WHERE id`).
		WithArgs("sermon-1").
		WillReturnRows(sampleSermonRow())
	mock.ExpectExec("DELETE FROM sermons").
		WithArgs("sermon-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/sermons/sermon-1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	if len(rec.preDeletes) != 1 {
		t.Fatalf("published %d pre-delete changes, want 1", len(rec.preDeletes))
	}
	if rec.preDeletes[0].Op != events.OpDelete || rec.preDeletes[0].EntityID != "sermon-1" {
		t.Errorf("pre-delete change = %+v", rec.preDeletes[0])
	}

	if len(rec.changes) != 1 || rec.changes[0].Op != events.OpDelete {
		t.Errorf("post-delete changes = %+v, want one delete", rec.changes)
	}
	// The label is snapshotted before the row disappears.
	if rec.changes[0].EntityLabel != "The Prodigal Son" {
		t.Errorf("EntityLabel = %q, want snapshot of the deleted title", rec.changes[0].EntityLabel)
	}
}

func TestDeleteSermon_NotFound(t *testing.T) {
	router, mock, rec := newSermonTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM sermons WHERE id`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(sermonCols))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/sermons/nope", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if len(rec.changes) != 0 || len(rec.preDeletes) != 0 {
		t.Error("missing sermon must not publish any change")
	}
}
