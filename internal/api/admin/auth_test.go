package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/churchsite/church-backend/internal/audit"
	"github.com/churchsite/church-backend/internal/auth"
	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.ConfigureJWTSecret("admin-handler-test-secret-32char!")
}

var userCols = []string{
	"id", "username", "email", "password_hash", "is_admin", "is_active",
	"created_at", "updated_at",
}

// recordingAuditStore captures audit rows written during handler tests.
type recordingAuditStore struct {
	mu   sync.Mutex
	logs []*models.AuditLog
}

func (r *recordingAuditStore) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *recordingAuditStore) snapshot() []*models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.AuditLog(nil), r.logs...)
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *recordingAuditStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auditStore := &recordingAuditStore{}
	recorder := audit.NewRecorder(auditStore, true)
	h := NewAuthHandlers(sqlx.NewDb(db, "postgres"), recorder, time.Hour)

	router := gin.New()
	router.Use(middleware.ClientInfoMiddleware())
	router.POST("/api/v1/auth/login", h.LoginHandler())
	return router, mock, auditStore
}

func userRow(passwordHash string, isActive bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).
		AddRow("user-1", "admin", "admin@church.example", passwordHash, true, isActive, now, now)
}

func login(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "login-test-agent")
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	router, mock, auditStore := newAuthTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM users WHERE username`).
		WithArgs("admin").
		WillReturnRows(userRow(hash, true))

	w := login(router, `{"username": "admin", "password": "correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var body struct {
		Token     string      `json:"token"`
		ExpiresAt string      `json:"expires_at"`
		User      models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token == "" {
		t.Error("response missing token")
	}
	claims, err := auth.ValidateJWT(body.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "admin" || !claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}

	logs := auditStore.snapshot()
	if len(logs) != 1 || logs[0].Action != models.AuditActionLogin {
		t.Errorf("audit rows = %+v, want one LOGIN row", logs)
	}
	if logs[0].UserID == nil || *logs[0].UserID != "user-1" {
		t.Errorf("LOGIN row actor = %v, want user-1", logs[0].UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := auth.HashPassword("the-real-password")

	router, mock, auditStore := newAuthTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM users WHERE username`).
		WithArgs("admin").
		WillReturnRows(userRow(hash, true))

	w := login(router, `{"username": "admin", "password": "wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	logs := auditStore.snapshot()
	if len(logs) != 1 || logs[0].Action != models.AuditActionPermissionDenied {
		t.Fatalf("audit rows = %+v, want one PERMISSION_DENIED row", logs)
	}
	if logs[0].Username != "admin" {
		t.Errorf("audit Username = %q, want attempted username", logs[0].Username)
	}
	if logs[0].UserAgent != "login-test-agent" {
		t.Errorf("audit UserAgent = %q, client info must be captured", logs[0].UserAgent)
	}
}

func TestLogin_UnknownUserMatchesWrongPassword(t *testing.T) {
	router, mock, auditStore := newAuthTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM users WHERE username`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	w := login(router, `{"username": "ghost", "password": "whatever"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	// Same response body and audit action as a wrong password, so the
	// endpoint doesn't reveal which usernames exist.
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Invalid username or password" {
		t.Errorf("error = %v", body["error"])
	}

	logs := auditStore.snapshot()
	if len(logs) != 1 || logs[0].Action != models.AuditActionPermissionDenied {
		t.Errorf("audit rows = %+v, want one PERMISSION_DENIED row", logs)
	}
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	hash, _ := auth.HashPassword("correct-horse")

	router, mock, _ := newAuthTestRouter(t)
	mock.ExpectQuery(`SELECT \* FROM users WHERE username`).
		WithArgs("admin").
		WillReturnRows(userRow(hash, false))

	w := login(router, `{"username": "admin", "password": "correct-horse"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deactivated user", w.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router, _, auditStore := newAuthTestRouter(t)

	w := login(router, `{"username": "admin"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(auditStore.snapshot()) != 0 {
		t.Error("malformed requests must not produce audit rows")
	}
}
