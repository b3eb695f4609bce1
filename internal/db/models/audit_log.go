// Package models - audit_log.go defines the AuditLog model for recording
// security-relevant events, capturing actor, action, affected entity, client
// IP, and user agent.
package models

import "time"

// Audit actions. CRUD actions are emitted for content writes; the remaining
// three are emitted by the auth handlers.
const (
	AuditActionCreate           = "CREATE"
	AuditActionUpdate           = "UPDATE"
	AuditActionDelete           = "DELETE"
	AuditActionLogin            = "LOGIN"
	AuditActionLogout           = "LOGOUT"
	AuditActionPermissionDenied = "PERMISSION_DENIED"
)

// AuditLog represents an audit log entry for tracking user actions
type AuditLog struct {
	ID          string    `json:"id" db:"id"`
	UserID      *string   `json:"user_id,omitempty" db:"user_id"` // Nullable for anonymous events (failed logins)
	Username    string    `json:"username" db:"username"`         // Snapshot; survives user deletion
	Action      string    `json:"action" db:"action"`
	EntityType  string    `json:"entity_type" db:"entity_type"`
	EntityID    *string   `json:"entity_id,omitempty" db:"entity_id"`
	EntityLabel string    `json:"entity_label" db:"entity_label"` // Human-readable snapshot of the entity
	IPAddress   string    `json:"ip_address" db:"ip_address"`
	UserAgent   string    `json:"user_agent" db:"user_agent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
