// Package requestinfo carries per-request client details (authenticated
// actor, IP address, user agent) on a context.Context. The HTTP middleware
// populates it once per request; the audit recorder reads it when a change
// event fires. Because the carrier is the request context itself, values
// never leak between requests and are released with the request.
package requestinfo

import "context"

type contextKey struct{}

// Actor identifies the authenticated user behind a request.
type Actor struct {
	UserID   string
	Username string
}

// Info holds the request details relevant to audit recording. Actor is nil
// for anonymous requests; IP and user agent are captured regardless so
// failed logins can still be attributed to a client.
type Info struct {
	Actor     *Actor
	IPAddress string
	UserAgent string
}

// WithRequestInfo returns a context carrying info.
func WithRequestInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext extracts the request info, reporting whether any was set.
func FromContext(ctx context.Context) (Info, bool) {
	info, ok := ctx.Value(contextKey{}).(Info)
	return info, ok
}

// ActorFromContext returns the authenticated actor, or nil when the request
// is anonymous or carries no request info at all.
func ActorFromContext(ctx context.Context) *Actor {
	info, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return info.Actor
}
