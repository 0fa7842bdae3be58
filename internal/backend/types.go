package backend

import "encoding/json"

// Response is the normalized shape every backend call is coerced into.
// Status is copied from the HTTP status code; transport failures collapse
// to 500 with a generic per-operation message.
type Response struct {
	Status  int
	Message string
	Detail  string
	Data    json.RawMessage
}

// OK reports whether the call succeeded.
func (r Response) OK() bool {
	return r.Status < 400
}

// ErrorMessage returns the backend's detail or message for a failed call,
// falling back to the given generic message.
func (r Response) ErrorMessage(fallback string) string {
	if r.Detail != "" {
		return r.Detail
	}
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// envelope is the raw success/error body the backend emits: successes are
// {message, data}, errors are {detail}.
type envelope struct {
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
	Data    json.RawMessage `json:"data"`
}

// Source is a connectable system to back up.
type Source struct {
	ID         int64   `json:"id"`
	TenantID   string  `json:"tenant_id,omitempty"`
	Name       string  `json:"name"`
	SourceType string  `json:"source_type"`
	URL        string  `json:"url"`
	Login      *string `json:"login"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

// Destination is a storage target for backups.
type Destination struct {
	ID              int64   `json:"id"`
	TenantID        string  `json:"tenant_id,omitempty"`
	Name            string  `json:"name"`
	DestinationType string  `json:"destination_type"`
	URL             string  `json:"url"`
	Login           *string `json:"login"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// Schedule is a recurring job linking a source to a destination.
type Schedule struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SourceID      int64  `json:"source_id"`
	DestinationID int64  `json:"destination_id"`
	Schedule      string `json:"schedule"`
	KeepN         int    `json:"keep_n"`
	IsActive      bool   `json:"is_active"`
	LastRun       string `json:"last_run,omitempty"`
	NextRun       string `json:"next_run,omitempty"`
}

// Archive is a point-in-time backup artifact stored at a destination.
// It is immutable once created and identified by (destination, path).
type Archive struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Source   string  `json:"source"`
	SourceID int64   `json:"source_id"`
	Size     float64 `json:"size"`
	Modified string  `json:"modified"`
}

// LogEntry is one row from the system log viewer.
type LogEntry struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Level     string `json:"level"`
	Service   string `json:"service"`
	Event     string `json:"event"`
	Detail    string `json:"detail,omitempty"`
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	UserID   int64  `json:"user_id"`
	TenantID string `json:"tenant_id"`
}
