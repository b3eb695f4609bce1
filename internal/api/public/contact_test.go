package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func newContactTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewContactHandlers(sqlx.NewDb(db, "postgres"))
	router := gin.New()
	router.POST("/api/v1/contact", h.SubmitContactMessage)
	return router, mock
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitContactMessage(t *testing.T) {
	router, mock := newContactTestRouter(t)
	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postJSON(router, "/api/v1/contact", `{
		"name": "Jane Visitor",
		"email": "jane@example.com",
		"phone": "555-0100",
		"subject": "Prayer request",
		"message": "Please pray for my family."
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] == nil || body["id"] == "" {
		t.Error("response missing message id")
	}
}

func TestSubmitContactMessage_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email": "a@example.com", "message": "hi"}`},
		{"missing email", `{"name": "Jane", "message": "hi"}`},
		{"invalid email", `{"name": "Jane", "email": "not-an-email", "message": "hi"}`},
		{"missing message", `{"name": "Jane", "email": "a@example.com"}`},
		{"malformed json", `{"name": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newContactTestRouter(t)
			w := postJSON(router, "/api/v1/contact", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestSubmitContactMessage_DBError(t *testing.T) {
	router, mock := newContactTestRouter(t)
	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnError(sqlmock.ErrCancelled)

	w := postJSON(router, "/api/v1/contact", `{
		"name": "Jane", "email": "jane@example.com", "message": "hello"
	}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
