package seeder

import (
	"context"

	"staff-directory/internal/database"
	"staff-directory/internal/tenant"
)

// DemoContentSeeder loads a handful of published posts so bookmark
// flows have something to point at.
type DemoContentSeeder struct {
	Tenant tenant.ID
}

func (DemoContentSeeder) Name() string { return "demo-content" }

func (s DemoContentSeeder) Run(ctx context.Context, db database.DB) error {
	posts := []struct {
		ID      int64
		Title   string
		URL     string
		Excerpt string
		Type    string
	}{
		{ID: 101, Title: "Onboarding checklist", URL: "https://intranet.example.com/onboarding", Excerpt: "Everything a new hire needs in week one.", Type: "page"},
		{ID: 102, Title: "Mortgage product refresh", URL: "https://intranet.example.com/news/mortgage-refresh", Excerpt: "Rates and terms effective next quarter.", Type: "post"},
		{ID: 103, Title: "Office travel policy", URL: "https://intranet.example.com/policies/travel", Excerpt: "Booking and reimbursement rules.", Type: "page"},
	}

	for _, p := range posts {
		if _, err := db.Exec(
			ctx,
			`INSERT INTO posts (tenant, id, title, url, excerpt, status, post_type) VALUES ($1, $2, $3, $4, $5, 'publish', $6)
			 ON CONFLICT (tenant, id) DO NOTHING`,
			s.Tenant.String(), p.ID, p.Title, p.URL, p.Excerpt, p.Type,
		); err != nil {
			return err
		}
	}
	return nil
}
