package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"staff-directory/internal/domain/bookmark"
	"staff-directory/internal/logger"
	"staff-directory/internal/pkg/slug"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LegacyMirror is the flat representation kept alongside the primary
// bookmark store for an older consumer. Mirror writes are best-effort:
// a failure after a successful primary write is logged and swallowed.
type LegacyMirror interface {
	Add(ctx context.Context, userID uuid.UUID, key string) error
	Remove(ctx context.Context, userID uuid.UUID, key string) error
}

type AddBookmarkInput struct {
	PostID     int64
	Collection string
	Meta       map[string]string
}

type BookmarkFilter struct {
	Collection string
	PostType   string
	Limit      int
	Offset     int
}

// EnrichedBookmark pairs a stored bookmark with its live target,
// freshly resolved from the bookmark's origin tenant.
type EnrichedBookmark struct {
	Bookmark bookmark.Bookmark
	Post     repository.Post
}

type BookmarkUsecase interface {
	Add(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, in AddBookmarkInput) (bookmark.Bookmark, error)
	Remove(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, postID int64) (bool, error)
	IsBookmarked(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, postID int64) (bool, error)
	ListWithPosts(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, f BookmarkFilter) ([]EnrichedBookmark, error)
	Collections(ctx context.Context, scope *tenant.Scope, userID uuid.UUID) ([]bookmark.Collection, error)
	CreateCollection(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, name, icon, color string) (bookmark.Collection, bool, error)
}

// Bookmarks keeps every user's bookmark set under one canonical tenant,
// no matter which tenant a request originated from. Each operation
// switches to the canonical tenant through the scope and restores the
// caller's tenant on every exit path.
type Bookmarks struct {
	attrs     repository.AttributeRepository
	content   repository.ContentRepository
	mirror    LegacyMirror
	canonical tenant.ID
	log       logger.Logger
	now       func() time.Time
}

func NewBookmarkUsecase(attrs repository.AttributeRepository, content repository.ContentRepository, mirror LegacyMirror, canonical tenant.ID, log logger.Logger) *Bookmarks {
	return &Bookmarks{
		attrs:     attrs,
		content:   content,
		mirror:    mirror,
		canonical: canonical,
		log:       log,
		now:       time.Now,
	}
}

// Add saves a bookmark for the post as seen from the request's origin
// tenant. Re-adding the same post merges instead of duplicating: the
// collection is replaced when provided and meta is shallow-merged. The
// title/url/post_type snapshot is captured once, at first add, and can
// go stale relative to the live post.
func (u *Bookmarks) Add(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, in AddBookmarkInput) (bookmark.Bookmark, error) {
	origin := scope.Current()

	post, err := u.content.GetPost(ctx, origin, in.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return bookmark.Bookmark{}, bookmark.ErrNotFound
		}
		return bookmark.Bookmark{}, err
	}

	var saved bookmark.Bookmark
	err = scope.As(u.canonical, func() error {
		set, err := u.readSet(ctx, userID)
		if err != nil {
			return err
		}

		key := bookmark.Key(origin, in.PostID)
		bm, exists := set[key]
		if exists {
			if strings.TrimSpace(in.Collection) != "" {
				bm.Collection = in.Collection
			}
			if len(in.Meta) > 0 {
				if bm.Meta == nil {
					bm.Meta = make(map[string]string, len(in.Meta))
				}
				for k, v := range in.Meta {
					bm.Meta[k] = v
				}
			}
		} else {
			bm = bookmark.Bookmark{
				PostID:     in.PostID,
				Tenant:     origin,
				PostType:   post.Type,
				Title:      post.Title,
				URL:        post.URL,
				Collection: strings.TrimSpace(in.Collection),
				Meta:       in.Meta,
				CreatedAt:  u.now().UTC().Format(time.RFC3339),
			}
		}
		set[key] = bm

		if err := u.writeSet(ctx, userID, set); err != nil {
			return err
		}

		u.mirrorWrite(ctx, userID, key, true)
		saved = bm
		return nil
	})
	if err != nil {
		return bookmark.Bookmark{}, err
	}
	return saved, nil
}

// Remove deletes the bookmark for the post as seen from the request's
// origin tenant. It is idempotent and reports whether anything was
// removed.
func (u *Bookmarks) Remove(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, postID int64) (bool, error) {
	origin := scope.Current()
	key := bookmark.Key(origin, postID)

	removed := false
	err := scope.As(u.canonical, func() error {
		set, err := u.readSet(ctx, userID)
		if err != nil {
			return err
		}

		if _, ok := set[key]; !ok {
			return nil
		}
		delete(set, key)

		if err := u.writeSet(ctx, userID, set); err != nil {
			return err
		}

		u.mirrorWrite(ctx, userID, key, false)
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (u *Bookmarks) IsBookmarked(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, postID int64) (bool, error) {
	key := bookmark.Key(scope.Current(), postID)

	found := false
	err := scope.As(u.canonical, func() error {
		set, err := u.readSet(ctx, userID)
		if err != nil {
			return err
		}
		_, found = set[key]
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// ListWithPosts returns the user's bookmarks newest first, filtered and
// paginated, each enriched with its live target resolved from the
// bookmark's own origin tenant — one tenant switch per item. Bookmarks
// whose target no longer resolves or is unpublished are silently
// dropped.
func (u *Bookmarks) ListWithPosts(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, f BookmarkFilter) ([]EnrichedBookmark, error) {
	var page []bookmark.Bookmark
	err := scope.As(u.canonical, func() error {
		set, err := u.readSet(ctx, userID)
		if err != nil {
			return err
		}

		all := make([]bookmark.Bookmark, 0, len(set))
		for _, bm := range set {
			if f.Collection != "" && bm.Collection != f.Collection {
				continue
			}
			if f.PostType != "" && bm.PostType != f.PostType {
				continue
			}
			all = append(all, bm)
		}

		// Map order is random; fix it before the stable time sort so
		// pagination is deterministic.
		sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].CreatedTime().After(all[j].CreatedTime())
		})

		page = paginate(all, f.Limit, f.Offset)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]EnrichedBookmark, 0, len(page))
	for _, bm := range page {
		var post repository.Post
		err := scope.As(bm.Tenant, func() error {
			p, err := u.content.GetPost(ctx, bm.Tenant, bm.PostID)
			if err != nil {
				return err
			}
			post = p
			return nil
		})
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				continue
			}
			return nil, err
		}
		if !post.Published() {
			continue
		}
		out = append(out, EnrichedBookmark{Bookmark: bm, Post: post})
	}

	return out, nil
}

// Collections returns the user's stored collections, or the two
// implicit defaults when none have been created yet.
func (u *Bookmarks) Collections(ctx context.Context, scope *tenant.Scope, userID uuid.UUID) ([]bookmark.Collection, error) {
	var cols []bookmark.Collection
	err := scope.As(u.canonical, func() error {
		stored, err := u.readCollections(ctx, userID)
		if err != nil {
			return err
		}
		cols = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return bookmark.DefaultCollections(), nil
	}
	return cols, nil
}

// CreateCollection slugifies the name and appends a new collection. It
// reports created=false for an empty name or a case-insensitive slug
// collision with an existing collection. The first explicit create also
// persists the two defaults, so they survive alongside the new one.
func (u *Bookmarks) CreateCollection(ctx context.Context, scope *tenant.Scope, userID uuid.UUID, name, icon, color string) (bookmark.Collection, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return bookmark.Collection{}, false, nil
	}
	s := slug.Make(name)
	if s == "" {
		return bookmark.Collection{}, false, nil
	}

	var (
		created bookmark.Collection
		ok      bool
	)
	err := scope.As(u.canonical, func() error {
		stored, err := u.readCollections(ctx, userID)
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			stored = bookmark.DefaultCollections()
		}

		for _, c := range stored {
			if strings.EqualFold(c.Slug, s) {
				return nil
			}
		}

		created = bookmark.Collection{Slug: s, Name: name, Icon: icon, Color: color}
		stored = append(stored, created)

		if err := u.writeCollections(ctx, userID, stored); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return bookmark.Collection{}, false, err
	}
	if !ok {
		return bookmark.Collection{}, false, nil
	}
	return created, true, nil
}

// mirrorWrite updates the legacy flat representation after a successful
// primary write. The two writes are independent and non-transactional;
// a mirror failure leaves the primary standing and is not surfaced.
func (u *Bookmarks) mirrorWrite(ctx context.Context, userID uuid.UUID, key string, add bool) {
	if u.mirror == nil {
		return
	}
	var err error
	if add {
		err = u.mirror.Add(ctx, userID, key)
	} else {
		err = u.mirror.Remove(ctx, userID, key)
	}
	if err != nil && u.log != nil {
		u.log.Warn("legacy bookmark mirror write failed",
			zap.String("user_id", userID.String()),
			zap.String("key", key),
			zap.Bool("add", add),
			zap.Error(err))
	}
}

func (u *Bookmarks) readSet(ctx context.Context, userID uuid.UUID) (map[string]bookmark.Bookmark, error) {
	raw, err := u.attrs.Get(ctx, u.canonical, userID, repository.AttrBookmarks)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bookmark.Bookmark)
	if strings.TrimSpace(raw) == "" {
		return set, nil
	}
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		// Corrupt stored data reads as an empty set rather than
		// blocking every bookmark operation for the user.
		return make(map[string]bookmark.Bookmark), nil
	}
	return set, nil
}

func (u *Bookmarks) writeSet(ctx context.Context, userID uuid.UUID, set map[string]bookmark.Bookmark) error {
	b, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return u.attrs.Set(ctx, u.canonical, userID, repository.AttrBookmarks, string(b))
}

func (u *Bookmarks) readCollections(ctx context.Context, userID uuid.UUID) ([]bookmark.Collection, error) {
	raw, err := u.attrs.Get(ctx, u.canonical, userID, repository.AttrBookmarkCollections)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var cols []bookmark.Collection
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		return nil, nil
	}
	return cols, nil
}

func (u *Bookmarks) writeCollections(ctx context.Context, userID uuid.UUID, cols []bookmark.Collection) error {
	b, err := json.Marshal(cols)
	if err != nil {
		return err
	}
	return u.attrs.Set(ctx, u.canonical, userID, repository.AttrBookmarkCollections, string(b))
}

func paginate(items []bookmark.Bookmark, limit, offset int) []bookmark.Bookmark {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []bookmark.Bookmark{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
