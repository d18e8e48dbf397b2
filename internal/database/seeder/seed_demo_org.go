package seeder

import (
	"context"
	"fmt"

	"staff-directory/internal/database"
	"staff-directory/internal/domain/profile"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
)

type demoPerson struct {
	Email        string
	FirstName    string
	LastName     string
	Title        string
	Department   string
	Office       string
	Skills       []string
	ManagerEmail string
}

var demoPeople = []demoPerson{
	{Email: "marta.reis@example.com", FirstName: "Marta", LastName: "Reis", Title: "Branch Director", Department: "Management", Office: "Lisbon HQ"},
	{Email: "joao.pinto@example.com", FirstName: "Joao", LastName: "Pinto", Title: "Sales Lead", Department: "Sales", Office: "Lisbon HQ", Skills: []string{"Mortgages", "Spanish"}, ManagerEmail: "marta.reis@example.com"},
	{Email: "ana.costa@example.com", FirstName: "Ana", LastName: "Costa", Title: "Account Manager", Department: "Sales", Office: "Porto", Skills: []string{"Mortgages", "English"}, ManagerEmail: "joao.pinto@example.com"},
	{Email: "rui.gomes@example.com", FirstName: "Rui", LastName: "Gomes", Title: "Support Engineer", Department: "Operations", Office: "Porto", Skills: []string{"Networking"}, ManagerEmail: "marta.reis@example.com"},
}

// DemoOrgSeeder loads a small sample organization into the given
// tenant. Existing accounts are left untouched; attributes are
// overwritten so the sample stays consistent across runs.
type DemoOrgSeeder struct {
	Tenant tenant.ID
}

func (DemoOrgSeeder) Name() string { return "demo-org" }

func (s DemoOrgSeeder) Run(ctx context.Context, db database.DB) error {
	ids := make(map[string]uuid.UUID, len(demoPeople))

	for _, p := range demoPeople {
		if _, err := db.Exec(
			ctx,
			`INSERT INTO accounts (id, email, first_name, last_name) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
			uuid.New(), p.Email, p.FirstName, p.LastName,
		); err != nil {
			return err
		}

		var id uuid.UUID
		if err := db.QueryRow(ctx, `SELECT id FROM accounts WHERE email = $1`, p.Email).Scan(&id); err != nil {
			return fmt.Errorf("resolve %s: %w", p.Email, err)
		}
		ids[p.Email] = id
	}

	set := func(userID uuid.UUID, key, value string) error {
		if value == "" {
			return nil
		}
		_, err := db.Exec(
			ctx,
			`INSERT INTO user_attributes (tenant, user_id, key, value) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (tenant, user_id, key) DO UPDATE SET value = EXCLUDED.value`,
			s.Tenant.String(), userID, key, value,
		)
		return err
	}

	for _, p := range demoPeople {
		id := ids[p.Email]
		if err := set(id, repository.AttrTitle, p.Title); err != nil {
			return err
		}
		if err := set(id, repository.AttrDepartment, p.Department); err != nil {
			return err
		}
		if err := set(id, repository.AttrOfficeLocation, p.Office); err != nil {
			return err
		}
		if len(p.Skills) > 0 {
			if err := set(id, repository.AttrSkills, profile.EncodeStringList(p.Skills)); err != nil {
				return err
			}
		}
		if p.ManagerEmail != "" {
			if err := set(id, repository.AttrReportsTo, ids[p.ManagerEmail].String()); err != nil {
				return err
			}
		}
	}
	return nil
}
