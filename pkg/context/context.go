package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the typed key for request-scoped values.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	UserIDKey    ContextKey = "user_id"
	UsernameKey  ContextKey = "username"
	RoleKey      ContextKey = "role"
	ClientIPKey  ContextKey = "client_ip"
	UserAgentKey ContextKey = "user_agent"
	StartTimeKey ContextKey = "start_time"
	ModuleKey    ContextKey = "module"
	FunctionKey  ContextKey = "function"
)

// NewContext builds a request-scoped context carrying the identifiers the
// log builder extracts: request id, client address, start time, module and
// function. Request id comes from X-Request-ID when the caller supplies one.
func NewContext(ctx context.Context, r *http.Request, module, function string) context.Context {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	ctx = context.WithValue(ctx, ClientIPKey, clientIP(r))
	ctx = context.WithValue(ctx, UserAgentKey, r.UserAgent())
	ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	ctx = context.WithValue(ctx, ModuleKey, module)
	ctx = context.WithValue(ctx, FunctionKey, function)
	return ctx
}

// WithOperation tags the context with the module/function pair used in logs.
func WithOperation(ctx context.Context, module, function string) context.Context {
	ctx = context.WithValue(ctx, ModuleKey, module)
	return context.WithValue(ctx, FunctionKey, function)
}

// WithUserID adds the authenticated user id to the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithUsername adds the authenticated username to the context.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

// WithRole adds the authenticated role to the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

func GetClientIP(ctx context.Context) string {
	if val, ok := ctx.Value(ClientIPKey).(string); ok {
		return val
	}
	return ""
}

func GetUserAgent(ctx context.Context) string {
	if val, ok := ctx.Value(UserAgentKey).(string); ok {
		return val
	}
	return ""
}

func GetUserID(ctx context.Context) (uint, bool) {
	val, ok := ctx.Value(UserIDKey).(uint)
	return val, ok
}

func GetUsername(ctx context.Context) string {
	if val, ok := ctx.Value(UsernameKey).(string); ok {
		return val
	}
	return ""
}

func GetRole(ctx context.Context) string {
	if val, ok := ctx.Value(RoleKey).(string); ok {
		return val
	}
	return ""
}

func GetModule(ctx context.Context) string {
	if val, ok := ctx.Value(ModuleKey).(string); ok {
		return val
	}
	return ""
}

func GetFunction(ctx context.Context) string {
	if val, ok := ctx.Value(FunctionKey).(string); ok {
		return val
	}
	return ""
}

// GetDuration returns elapsed time since the request start, zero when the
// context carries no start time.
func GetDuration(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
