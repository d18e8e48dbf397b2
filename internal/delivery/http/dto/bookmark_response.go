package dto

import (
	"staff-directory/internal/domain/bookmark"
	"staff-directory/internal/usecase"
)

type BookmarkResponse struct {
	PostID     int64             `json:"post_id"`
	Tenant     string            `json:"tenant"`
	PostType   string            `json:"post_type"`
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	Excerpt    string            `json:"excerpt,omitempty"`
	Thumbnail  string            `json:"thumbnail,omitempty"`
	Collection string            `json:"collection,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

func NewBookmarkResponse(bm bookmark.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		PostID:     bm.PostID,
		Tenant:     bm.Tenant.String(),
		PostType:   bm.PostType,
		Title:      bm.Title,
		URL:        bm.URL,
		Collection: bm.Collection,
		Meta:       bm.Meta,
		CreatedAt:  bm.CreatedAt,
	}
}

// NewEnrichedBookmarkResponse prefers the live target's fields over the
// stored snapshot.
func NewEnrichedBookmarkResponse(eb usecase.EnrichedBookmark) BookmarkResponse {
	out := NewBookmarkResponse(eb.Bookmark)
	out.Title = eb.Post.Title
	out.URL = eb.Post.URL
	out.Excerpt = eb.Post.Excerpt
	out.Thumbnail = eb.Post.Thumbnail
	out.PostType = eb.Post.Type
	return out
}

type CollectionResponse struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

func NewCollectionResponse(c bookmark.Collection) CollectionResponse {
	return CollectionResponse{Slug: c.Slug, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

type BookmarksViewResponse struct {
	Bookmarks   []BookmarkResponse   `json:"bookmarks"`
	Collections []CollectionResponse `json:"collections"`
}

type ColleagueFindResponse struct {
	Matches    []ProfileResponse `json:"matches"`
	Suggestion string            `json:"suggestion"`
}
