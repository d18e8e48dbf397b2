package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"staff-directory/internal/domain/bookmark"
	"staff-directory/internal/logger"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
)

const canonicalTenant = tenant.ID("primary")

type bookmarkFixture struct {
	attrs   *memAttrs
	content *memContent
	mirror  *memMirror
	uc      *Bookmarks
	userID  uuid.UUID
}

func newBookmarkFixture() *bookmarkFixture {
	f := &bookmarkFixture{
		attrs:   newMemAttrs(),
		content: newMemContent(),
		mirror:  &memMirror{},
		userID:  uuid.New(),
	}
	f.uc = NewBookmarkUsecase(f.attrs, f.content, f.mirror, canonicalTenant, logger.NewNop())
	return f
}

func (f *bookmarkFixture) post(t tenant.ID, id int64, title string) {
	f.content.put(t, repository.Post{ID: id, Title: title, URL: "https://intranet/posts/" + title, Status: repository.PostStatusPublished, Type: "post"})
}

func TestBookmarks_AddRemoveIsBookmarked(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")
	f.post("emea", 42, "handbook")

	bm, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if bm.Tenant != "emea" || bm.PostID != 42 {
		t.Fatalf("bookmark identity wrong: %+v", bm)
	}
	if bm.Title != "handbook" {
		t.Fatalf("snapshot title not captured: %+v", bm)
	}

	ok, err := f.uc.IsBookmarked(ctx, scope, f.userID, 42)
	if err != nil || !ok {
		t.Fatalf("expected bookmarked after add, ok=%v err=%v", ok, err)
	}

	removed, err := f.uc.Remove(ctx, scope, f.userID, 42)
	if err != nil || !removed {
		t.Fatalf("expected removal, removed=%v err=%v", removed, err)
	}

	ok, err = f.uc.IsBookmarked(ctx, scope, f.userID, 42)
	if err != nil || ok {
		t.Fatalf("expected not bookmarked after remove, ok=%v err=%v", ok, err)
	}

	removed, err = f.uc.Remove(ctx, scope, f.userID, 42)
	if err != nil {
		t.Fatalf("idempotent remove errored: %v", err)
	}
	if removed {
		t.Fatalf("second remove must report false")
	}

	if scope.Current() != "emea" {
		t.Fatalf("caller tenant not restored: %s", scope.Current())
	}
}

func TestBookmarks_Add_UnknownTarget(t *testing.T) {
	f := newBookmarkFixture()
	scope := tenant.NewScope("emea")

	_, err := f.uc.Add(context.Background(), scope, f.userID, AddBookmarkInput{PostID: 99})
	if !errors.Is(err, bookmark.ErrNotFound) {
		t.Fatalf("expected bookmark.ErrNotFound, got %v", err)
	}
}

func TestBookmarks_ReAdd_MergesInsteadOfDuplicating(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")
	f.post("emea", 42, "handbook")

	if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42, Collection: "read-later", Meta: map[string]string{"notes": "first"}}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	bm, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42, Collection: "favorites", Meta: map[string]string{"notes": "second"}})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if bm.Collection != "favorites" {
		t.Fatalf("collection not replaced on re-add: %q", bm.Collection)
	}
	if bm.Meta["notes"] != "second" {
		t.Fatalf("meta not merged to latest notes: %v", bm.Meta)
	}

	list, err := f.uc.ListWithPosts(ctx, scope, f.userID, BookmarkFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("re-add must not duplicate, got %d bookmarks", len(list))
	}
}

func TestBookmarks_ReAdd_KeepsExistingMeta(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")
	f.post("emea", 42, "handbook")

	if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42, Meta: map[string]string{"notes": "keep", "color": "red"}}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	bm, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42, Meta: map[string]string{"color": "blue"}})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if bm.Meta["notes"] != "keep" || bm.Meta["color"] != "blue" {
		t.Fatalf("shallow merge wrong: %v", bm.Meta)
	}
}

func TestBookmarks_ListWithPosts_SortAndPagination(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")

	times := []string{
		"2026-01-03T10:00:00Z",
		"2026-01-01T10:00:00Z",
		"garbage", // unparsable sorts oldest
		"2026-01-02T10:00:00Z",
	}
	for i, ts := range times {
		id := int64(i + 1)
		f.post("emea", id, "p")
		stamp := ts
		f.uc.now = func() time.Time {
			parsed, err := time.Parse(time.RFC3339, stamp)
			if err != nil {
				return time.Time{}
			}
			return parsed
		}
		if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: id}); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	// Overwrite the third bookmark's timestamp with garbage directly;
	// Add always writes a valid stamp.
	raw, _ := f.attrs.Get(ctx, canonicalTenant, f.userID, repository.AttrBookmarks)
	set := map[string]bookmark.Bookmark{}
	mustUnmarshal(t, raw, &set)
	bad := set["emea:3"]
	bad.CreatedAt = "garbage"
	set["emea:3"] = bad
	writeSet(t, f, ctx, set)

	list, err := f.uc.ListWithPosts(ctx, scope, f.userID, BookmarkFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	order := []int64{1, 4, 2, 3} // newest first, unparsable last
	if len(list) != 4 {
		t.Fatalf("expected 4 bookmarks, got %d", len(list))
	}
	for i, want := range order {
		if list[i].Bookmark.PostID != want {
			t.Fatalf("position %d: got post %d, want %d", i, list[i].Bookmark.PostID, want)
		}
	}

	page, err := f.uc.ListWithPosts(ctx, scope, f.userID, BookmarkFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 || page[0].Bookmark.PostID != 4 || page[1].Bookmark.PostID != 2 {
		t.Fatalf("pagination wrong: %+v", page)
	}
}

func TestBookmarks_ListWithPosts_DropsMissingAndUnpublished(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")

	f.post("emea", 1, "alive")
	f.post("emea", 2, "doomed")
	f.post("emea", 3, "draft")

	for _, id := range []int64{1, 2, 3} {
		if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: id}); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	// Post 2 disappears; post 3 is unpublished after the fact.
	delete(f.content.posts, "emea:2")
	draft := f.content.posts["emea:3"]
	draft.Status = "draft"
	f.content.posts["emea:3"] = draft

	list, err := f.uc.ListWithPosts(ctx, scope, f.userID, BookmarkFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Bookmark.PostID != 1 {
		t.Fatalf("expected only the live published target, got %+v", list)
	}
}

func TestBookmarks_ListWithPosts_FiltersAndOriginTenant(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()

	f.post("emea", 1, "emea-doc")
	f.content.put("apac", repository.Post{ID: 7, Title: "apac-doc", Status: repository.PostStatusPublished, Type: "page"})

	emeaScope := tenant.NewScope("emea")
	if _, err := f.uc.Add(ctx, emeaScope, f.userID, AddBookmarkInput{PostID: 1, Collection: "favorites"}); err != nil {
		t.Fatalf("add emea: %v", err)
	}
	apacScope := tenant.NewScope("apac")
	if _, err := f.uc.Add(ctx, apacScope, f.userID, AddBookmarkInput{PostID: 7}); err != nil {
		t.Fatalf("add apac: %v", err)
	}

	// The set is shared across tenants: both bookmarks are visible from
	// either origin, each rehydrated from its own tenant.
	list, err := f.uc.ListWithPosts(ctx, emeaScope, f.userID, BookmarkFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected bookmarks from both tenants, got %d", len(list))
	}

	byCollection, err := f.uc.ListWithPosts(ctx, emeaScope, f.userID, BookmarkFilter{Collection: "favorites"})
	if err != nil {
		t.Fatalf("list by collection: %v", err)
	}
	if len(byCollection) != 1 || byCollection[0].Bookmark.PostID != 1 {
		t.Fatalf("collection filter wrong: %+v", byCollection)
	}

	byType, err := f.uc.ListWithPosts(ctx, emeaScope, f.userID, BookmarkFilter{PostType: "page"})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Bookmark.PostID != 7 {
		t.Fatalf("post_type filter wrong: %+v", byType)
	}

	if emeaScope.Current() != "emea" {
		t.Fatalf("scope not restored after per-item switches: %s", emeaScope.Current())
	}
}

func TestBookmarks_MirrorWrites(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")
	f.post("emea", 42, "handbook")

	if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(f.mirror.adds) != 1 || f.mirror.adds[0] != "emea:42" {
		t.Fatalf("mirror add missing: %v", f.mirror.adds)
	}

	if _, err := f.uc.Remove(ctx, scope, f.userID, 42); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.mirror.removes) != 1 || f.mirror.removes[0] != "emea:42" {
		t.Fatalf("mirror remove missing: %v", f.mirror.removes)
	}
}

func TestBookmarks_MirrorFailureNotSurfaced(t *testing.T) {
	f := newBookmarkFixture()
	f.mirror.err = errors.New("redis down")
	ctx := context.Background()
	scope := tenant.NewScope("emea")
	f.post("emea", 42, "handbook")

	if _, err := f.uc.Add(ctx, scope, f.userID, AddBookmarkInput{PostID: 42}); err != nil {
		t.Fatalf("mirror failure must not surface from add: %v", err)
	}

	ok, err := f.uc.IsBookmarked(ctx, scope, f.userID, 42)
	if err != nil || !ok {
		t.Fatalf("primary write must stand despite mirror failure, ok=%v err=%v", ok, err)
	}
}

func TestBookmarks_Collections_Defaults(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")

	cols, err := f.uc.Collections(ctx, scope, f.userID)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if len(cols) != 2 || cols[0].Slug != "favorites" || cols[1].Slug != "read-later" {
		t.Fatalf("expected the two implicit defaults, got %+v", cols)
	}

	// Defaults are implicit: nothing persisted yet.
	raw, _ := f.attrs.Get(ctx, canonicalTenant, f.userID, repository.AttrBookmarkCollections)
	if raw != "" {
		t.Fatalf("defaults must not be persisted before an explicit create")
	}
}

func TestBookmarks_CreateCollection_PersistsDefaultsAlongside(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")

	created, ok, err := f.uc.CreateCollection(ctx, scope, f.userID, "Leads", "flag", "#ff0000")
	if err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	if created.Slug != "leads" {
		t.Fatalf("expected slug leads, got %q", created.Slug)
	}

	cols, err := f.uc.Collections(ctx, scope, f.userID)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected defaults plus new collection, got %d", len(cols))
	}
	slugs := map[string]bool{}
	for _, c := range cols {
		slugs[c.Slug] = true
	}
	for _, want := range []string{"favorites", "read-later", "leads"} {
		if !slugs[want] {
			t.Fatalf("missing collection %q in %v", want, cols)
		}
	}
}

func TestBookmarks_CreateCollection_Rejections(t *testing.T) {
	f := newBookmarkFixture()
	ctx := context.Background()
	scope := tenant.NewScope("emea")

	if _, ok, err := f.uc.CreateCollection(ctx, scope, f.userID, "   ", "", ""); err != nil || ok {
		t.Fatalf("empty name must not create, ok=%v err=%v", ok, err)
	}

	// Collides case-insensitively with the implicit default "favorites".
	if _, ok, err := f.uc.CreateCollection(ctx, scope, f.userID, "Favorites", "", ""); err != nil || ok {
		t.Fatalf("duplicate slug must not create, ok=%v err=%v", ok, err)
	}

	if _, ok, err := f.uc.CreateCollection(ctx, scope, f.userID, "Leads", "", ""); err != nil || !ok {
		t.Fatalf("create leads: ok=%v err=%v", ok, err)
	}
	if _, ok, err := f.uc.CreateCollection(ctx, scope, f.userID, "LEADS", "", ""); err != nil || ok {
		t.Fatalf("case-insensitive collision must not create, ok=%v err=%v", ok, err)
	}
}

func mustUnmarshal(t *testing.T, raw string, out *map[string]bookmark.Bookmark) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		t.Fatalf("unmarshal bookmarks: %v", err)
	}
}

func writeSet(t *testing.T, f *bookmarkFixture, ctx context.Context, set map[string]bookmark.Bookmark) {
	t.Helper()
	if err := f.uc.writeSet(ctx, f.userID, set); err != nil {
		t.Fatalf("write set: %v", err)
	}
}
