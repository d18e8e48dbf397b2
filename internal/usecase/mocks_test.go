package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"staff-directory/internal/domain/profile"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
)

type memAttrs struct {
	data    map[string]string
	err     error
	setErr  error
	lastSet string
}

func newMemAttrs() *memAttrs {
	return &memAttrs{data: map[string]string{}}
}

func attrKey(t tenant.ID, userID uuid.UUID, key string) string {
	return fmt.Sprintf("%s|%s|%s", t, userID, key)
}

func (m *memAttrs) Get(_ context.Context, t tenant.ID, userID uuid.UUID, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.data[attrKey(t, userID, key)], nil
}

func (m *memAttrs) Set(_ context.Context, t tenant.ID, userID uuid.UUID, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	k := attrKey(t, userID, key)
	m.data[k] = value
	m.lastSet = k
	return nil
}

func (m *memAttrs) Delete(_ context.Context, t tenant.ID, userID uuid.UUID, key string) error {
	delete(m.data, attrKey(t, userID, key))
	return nil
}

type memAccounts struct {
	rows map[uuid.UUID]repository.AccountRow
}

func newMemAccounts() *memAccounts {
	return &memAccounts{rows: map[uuid.UUID]repository.AccountRow{}}
}

func (m *memAccounts) add(first, last, email string) uuid.UUID {
	id := uuid.New()
	m.rows[id] = repository.AccountRow{ID: id, Email: email, FirstName: first, LastName: last}
	return id
}

func (m *memAccounts) GetAccount(_ context.Context, id uuid.UUID) (repository.AccountRow, error) {
	row, ok := m.rows[id]
	if !ok {
		return repository.AccountRow{}, profile.ErrNotFound
	}
	return row, nil
}

func (m *memAccounts) ListAccounts(_ context.Context, _ tenant.ID, f repository.ProfileFilter) ([]repository.AccountRow, int, error) {
	out := m.sorted()
	if s := strings.TrimSpace(f.Search); s != "" {
		filtered := out[:0]
		for _, row := range out {
			if strings.Contains(strings.ToLower(row.FirstName+" "+row.LastName+" "+row.Email), strings.ToLower(s)) {
				filtered = append(filtered, row)
			}
		}
		out = filtered
	}
	total := len(out)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, total, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit >= 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (m *memAccounts) ListAccountIDs(_ context.Context) ([]uuid.UUID, error) {
	rows := m.sorted()
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (m *memAccounts) Departments(_ context.Context, _ tenant.ID) ([]string, error) {
	return nil, nil
}

func (m *memAccounts) OfficeLocations(_ context.Context, _ tenant.ID) ([]string, error) {
	return nil, nil
}

func (m *memAccounts) sorted() []repository.AccountRow {
	out := make([]repository.AccountRow, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out
}

type memContent struct {
	posts map[string]repository.Post
}

func newMemContent() *memContent {
	return &memContent{posts: map[string]repository.Post{}}
}

func (m *memContent) put(t tenant.ID, p repository.Post) {
	p.Tenant = t
	m.posts[fmt.Sprintf("%s:%d", t, p.ID)] = p
}

func (m *memContent) GetPost(_ context.Context, t tenant.ID, postID int64) (repository.Post, error) {
	p, ok := m.posts[fmt.Sprintf("%s:%d", t, postID)]
	if !ok {
		return repository.Post{}, repository.ErrPostNotFound
	}
	return p, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type memMirror struct {
	adds    []string
	removes []string
	err     error
}

func (m *memMirror) Add(_ context.Context, _ uuid.UUID, key string) error {
	if m.err != nil {
		return m.err
	}
	m.adds = append(m.adds, key)
	return nil
}

func (m *memMirror) Remove(_ context.Context, _ uuid.UUID, key string) error {
	if m.err != nil {
		return m.err
	}
	m.removes = append(m.removes, key)
	return nil
}
