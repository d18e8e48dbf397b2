package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staff-directory/internal/database"
	"staff-directory/internal/domain/profile"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRow is the account-backed part of a profile: everything that
// does not live in the attribute store.
type AccountRow struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
}

// ProfileFilter mirrors the directory's native enumeration capability.
// Search is an opaque multi-field match over name and email; a Limit of
// -1 (or any negative value) means unlimited.
type ProfileFilter struct {
	Search         string
	Department     string
	OfficeLocation string
	IncludeHidden  bool
	Limit          int
	Offset         int
}

type ProfileQueryRepository interface {
	GetAccount(ctx context.Context, id uuid.UUID) (AccountRow, error)
	ListAccounts(ctx context.Context, t tenant.ID, f ProfileFilter) ([]AccountRow, int, error)
	ListAccountIDs(ctx context.Context) ([]uuid.UUID, error)
	Departments(ctx context.Context, t tenant.ID) ([]string, error)
	OfficeLocations(ctx context.Context, t tenant.ID) ([]string, error)
}

type PostgresProfileQueryRepository struct {
	db database.DB
}

func NewPostgresProfileQueryRepository(db database.DB) *PostgresProfileQueryRepository {
	return &PostgresProfileQueryRepository{db: db}
}

func (r *PostgresProfileQueryRepository) GetAccount(ctx context.Context, id uuid.UUID) (AccountRow, error) {
	var row AccountRow
	err := r.db.QueryRow(ctx,
		`SELECT id, email, first_name, last_name FROM accounts WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.Email, &row.FirstName, &row.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountRow{}, profile.ErrNotFound
		}
		return AccountRow{}, err
	}
	return row, nil
}

// ListAccounts enumerates accounts matching the filter, first name
// ascending, with the pre-pagination match count alongside the page.
func (r *PostgresProfileQueryRepository) ListAccounts(ctx context.Context, t tenant.ID, f ProfileFilter) ([]AccountRow, int, error) {
	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	tenantArg := arg(t.String())

	sb.WriteString(`SELECT a.id, a.email, a.first_name, a.last_name, COUNT(*) OVER() AS total
		 FROM accounts a`)

	join := func(alias, key string) {
		fmt.Fprintf(&sb, `
		 LEFT JOIN user_attributes %s ON %s.tenant = %s AND %s.user_id = a.id AND %s.key = %s`,
			alias, alias, tenantArg, alias, alias, arg(key))
	}
	join("vis", AttrVisible)

	where := []string{}
	if !f.IncludeHidden {
		where = append(where, `COALESCE(vis.value, 'true') <> 'false'`)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, fmt.Sprintf(
			`(a.first_name ILIKE %s OR a.last_name ILIKE %s OR a.email ILIKE %s)`, p, p, p))
	}
	if d := strings.TrimSpace(f.Department); d != "" {
		join("dep", AttrDepartment)
		where = append(where, fmt.Sprintf(`dep.value = %s`, arg(d)))
	}
	if o := strings.TrimSpace(f.OfficeLocation); o != "" {
		join("off", AttrOfficeLocation)
		where = append(where, fmt.Sprintf(`off.value = %s`, arg(o)))
	}

	if len(where) > 0 {
		sb.WriteString("\n\t\t WHERE " + strings.Join(where, " AND "))
	}

	sb.WriteString("\n\t\t ORDER BY a.first_name ASC, a.last_name ASC")

	if f.Limit >= 0 {
		fmt.Fprintf(&sb, " LIMIT %s", arg(f.Limit))
	}
	if f.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %s", arg(f.Offset))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]AccountRow, 0)
	total := 0
	for rows.Next() {
		var row AccountRow
		if err := rows.Scan(&row.ID, &row.Email, &row.FirstName, &row.LastName, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAccountIDs returns the full population. Consumers that use it
// (the direct-reports lookup) perform an O(n) scan on purpose; there is
// no reverse index over reports_to.
func (r *PostgresProfileQueryRepository) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM accounts ORDER BY first_name ASC, last_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Departments lists distinct non-empty department values regardless of
// visibility. This scans the whole attribute set; at large populations
// it needs a design decision, not a quiet optimization.
func (r *PostgresProfileQueryRepository) Departments(ctx context.Context, t tenant.ID) ([]string, error) {
	return r.distinctValues(ctx, t, AttrDepartment)
}

// OfficeLocations lists distinct non-empty office values. Same scan
// caveat as Departments.
func (r *PostgresProfileQueryRepository) OfficeLocations(ctx context.Context, t tenant.ID) ([]string, error) {
	return r.distinctValues(ctx, t, AttrOfficeLocation)
}

func (r *PostgresProfileQueryRepository) distinctValues(ctx context.Context, t tenant.ID, key string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT value
		 FROM user_attributes
		 WHERE tenant = $1 AND key = $2 AND value <> ''
		 ORDER BY value ASC`,
		t.String(), key,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
