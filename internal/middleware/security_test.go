package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// applySecurityHeaders runs a GET / through SecurityHeadersMiddleware and
// returns the recorder so callers can inspect headers.
func applySecurityHeaders(cfg SecurityHeadersConfig) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestDefaultSecurityHeadersConfig(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig()

	if !cfg.EnableHSTS || cfg.HSTSMaxAge != 31536000 {
		t.Errorf("HSTS defaults wrong: enabled=%v max-age=%d", cfg.EnableHSTS, cfg.HSTSMaxAge)
	}
	if cfg.FrameOptionsValue != "DENY" {
		t.Errorf("FrameOptionsValue = %q, want DENY", cfg.FrameOptionsValue)
	}
	if !cfg.AllowCrossOriginResources {
		t.Error("browser-facing defaults must allow cross-origin resources so the frontend can embed media")
	}
	if cfg.ContentSecurityPolicy == "" || cfg.ReferrerPolicy == "" || cfg.PermissionsPolicy == "" {
		t.Error("default policies must all be non-empty")
	}
}

func TestAPISecurityHeadersConfig(t *testing.T) {
	cfg := APISecurityHeadersConfig()

	if cfg.EnableXSSProtection {
		t.Error("EnableXSSProtection = true, want false for JSON responses")
	}
	if !strings.Contains(cfg.ContentSecurityPolicy, "default-src 'none'") {
		t.Errorf("API CSP = %q, want a deny-everything policy", cfg.ContentSecurityPolicy)
	}
	if cfg.ReferrerPolicy != "no-referrer" {
		t.Errorf("ReferrerPolicy = %q, want no-referrer", cfg.ReferrerPolicy)
	}
	if cfg.AllowCrossOriginResources {
		t.Error("API responses must stay same-origin")
	}
}

func TestSecurityHeadersMiddleware_HSTS(t *testing.T) {
	t.Run("with subdomains and no preload", func(t *testing.T) {
		w := applySecurityHeaders(SecurityHeadersConfig{
			EnableHSTS:            true,
			HSTSMaxAge:            31536000,
			HSTSIncludeSubdomains: true,
		})
		hsts := w.Header().Get("Strict-Transport-Security")
		if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
			t.Errorf("HSTS = %q", hsts)
		}
		if strings.Contains(hsts, "preload") {
			t.Errorf("HSTS = %q, preload must be opt-in", hsts)
		}
	})

	t.Run("with preload", func(t *testing.T) {
		w := applySecurityHeaders(SecurityHeadersConfig{
			EnableHSTS:  true,
			HSTSMaxAge:  86400,
			HSTSPreload: true,
		})
		if hsts := w.Header().Get("Strict-Transport-Security"); !strings.Contains(hsts, "preload") {
			t.Errorf("HSTS = %q, want preload", hsts)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		w := applySecurityHeaders(SecurityHeadersConfig{EnableHSTS: false})
		if got := w.Header().Get("Strict-Transport-Security"); got != "" {
			t.Errorf("HSTS should be absent when disabled, got %q", got)
		}
	})
}

func TestSecurityHeadersMiddleware_FrameOptions(t *testing.T) {
	for _, value := range []string{"DENY", "SAMEORIGIN"} {
		w := applySecurityHeaders(SecurityHeadersConfig{EnableFrameOptions: true, FrameOptionsValue: value})
		if got := w.Header().Get("X-Frame-Options"); got != value {
			t.Errorf("X-Frame-Options = %q, want %q", got, value)
		}
	}

	w := applySecurityHeaders(SecurityHeadersConfig{EnableFrameOptions: false, FrameOptionsValue: "DENY"})
	if got := w.Header().Get("X-Frame-Options"); got != "" {
		t.Errorf("X-Frame-Options should be absent when disabled, got %q", got)
	}

	w = applySecurityHeaders(SecurityHeadersConfig{EnableFrameOptions: true})
	if got := w.Header().Get("X-Frame-Options"); got != "" {
		t.Errorf("X-Frame-Options should be absent for an empty value, got %q", got)
	}
}

func TestSecurityHeadersMiddleware_OptionalHeaders(t *testing.T) {
	tests := []struct {
		name   string
		cfg    SecurityHeadersConfig
		header string
		want   string
	}{
		{"nosniff on", SecurityHeadersConfig{EnableContentTypeOptions: true}, "X-Content-Type-Options", "nosniff"},
		{"nosniff off", SecurityHeadersConfig{}, "X-Content-Type-Options", ""},
		{"xss protection on", SecurityHeadersConfig{EnableXSSProtection: true}, "X-XSS-Protection", "1; mode=block"},
		{"xss protection off", SecurityHeadersConfig{}, "X-XSS-Protection", ""},
		{"csp", SecurityHeadersConfig{ContentSecurityPolicy: "default-src 'self'"}, "Content-Security-Policy", "default-src 'self'"},
		{"csp empty", SecurityHeadersConfig{}, "Content-Security-Policy", ""},
		{"referrer policy", SecurityHeadersConfig{ReferrerPolicy: "no-referrer"}, "Referrer-Policy", "no-referrer"},
		{"referrer policy empty", SecurityHeadersConfig{}, "Referrer-Policy", ""},
		{"permissions policy", SecurityHeadersConfig{PermissionsPolicy: "geolocation=()"}, "Permissions-Policy", "geolocation=()"},
		{"permissions policy empty", SecurityHeadersConfig{}, "Permissions-Policy", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := applySecurityHeaders(tt.cfg)
			if got := w.Header().Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestSecurityHeadersMiddleware_CrossOriginPolicy(t *testing.T) {
	w := applySecurityHeaders(SecurityHeadersConfig{})
	if got := w.Header().Get("Cross-Origin-Resource-Policy"); got != "same-origin" {
		t.Errorf("Cross-Origin-Resource-Policy = %q, want same-origin", got)
	}
	if got := w.Header().Get("Cross-Origin-Opener-Policy"); got != "same-origin" {
		t.Errorf("Cross-Origin-Opener-Policy = %q, want same-origin", got)
	}
	if got := w.Header().Get("X-Permitted-Cross-Domain-Policies"); got != "none" {
		t.Errorf("X-Permitted-Cross-Domain-Policies = %q, want none", got)
	}

	w = applySecurityHeaders(SecurityHeadersConfig{AllowCrossOriginResources: true})
	if got := w.Header().Get("Cross-Origin-Resource-Policy"); got != "cross-origin" {
		t.Errorf("Cross-Origin-Resource-Policy = %q, want cross-origin for media responses", got)
	}
}

func TestSecurityHeadersMiddleware_DefaultConfig(t *testing.T) {
	w := applySecurityHeaders(DefaultSecurityHeadersConfig())
	if w.Code != http.StatusOK {
		t.Errorf("response code = %d, want 200", w.Code)
	}
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Strict-Transport-Security should be set with default config")
	}
	if w.Header().Get("X-Frame-Options") == "" {
		t.Error("X-Frame-Options should be set with default config")
	}
}
