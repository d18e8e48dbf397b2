package bookmark

import (
	"errors"
	"fmt"
	"time"

	"staff-directory/internal/tenant"
)

var ErrNotFound = errors.New("bookmark target not found")

// Bookmark is one saved post in a user's set. Identity is the
// (Tenant, PostID) pair; Title, URL and PostType are a denormalized
// snapshot captured at add time and can go stale relative to the live
// post.
type Bookmark struct {
	PostID     int64             `json:"post_id"`
	Tenant     tenant.ID         `json:"tenant"`
	PostType   string            `json:"post_type"`
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	Collection string            `json:"collection,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

// Key identifies a bookmark within a user's set.
func (b Bookmark) Key() string {
	return Key(b.Tenant, b.PostID)
}

func Key(t tenant.ID, postID int64) string {
	return fmt.Sprintf("%s:%d", t, postID)
}

// CreatedTime parses CreatedAt best-effort. An unparsable timestamp
// yields the zero time, which sorts as the oldest possible value.
func (b Bookmark) CreatedTime() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, b.CreatedAt); err == nil {
			return ts
		}
	}
	return time.Time{}
}

type Collection struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// DefaultCollections are the two implicit buckets every user sees
// before explicitly creating any collection. They are not persisted
// until the first explicit create.
func DefaultCollections() []Collection {
	return []Collection{
		{Slug: "favorites", Name: "Favorites", Icon: "star", Color: "#f5a623"},
		{Slug: "read-later", Name: "Read Later", Icon: "clock", Color: "#4a90d9"},
	}
}
