package repository

import (
	"context"
	"errors"

	"staff-directory/internal/database"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Attribute keys used by the profile hydrator and the bookmark store.
// Values are plain strings; list-valued attributes hold a JSON array.
const (
	AttrTitle               = "title"
	AttrAvatarURL           = "avatar_url"
	AttrDepartment          = "department"
	AttrReportsTo           = "reports_to"
	AttrOfficeLocation      = "office_location"
	AttrSkills              = "skills"
	AttrAvailabilityStatus  = "availability_status"
	AttrVisible             = "visible"
	AttrBookmarks           = "bookmarks"
	AttrBookmarkCollections = "bookmark_collections"
)

// AttributeRepository is the (tenant, user, key) -> value store.
// Absent keys read as empty strings, never as errors.
type AttributeRepository interface {
	Get(ctx context.Context, t tenant.ID, userID uuid.UUID, key string) (string, error)
	Set(ctx context.Context, t tenant.ID, userID uuid.UUID, key, value string) error
	Delete(ctx context.Context, t tenant.ID, userID uuid.UUID, key string) error
}

type PostgresAttributeRepository struct {
	db database.DB
}

func NewPostgresAttributeRepository(db database.DB) *PostgresAttributeRepository {
	return &PostgresAttributeRepository{db: db}
}

func (r *PostgresAttributeRepository) Get(ctx context.Context, t tenant.ID, userID uuid.UUID, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT value
		 FROM user_attributes
		 WHERE tenant = $1 AND user_id = $2 AND key = $3`,
		t.String(), userID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *PostgresAttributeRepository) Set(ctx context.Context, t tenant.ID, userID uuid.UUID, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_attributes (tenant, user_id, key, value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (tenant, user_id, key) DO UPDATE SET value = EXCLUDED.value`,
		t.String(), userID, key, value,
	)
	return err
}

func (r *PostgresAttributeRepository) Delete(ctx context.Context, t tenant.ID, userID uuid.UUID, key string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_attributes
		 WHERE tenant = $1 AND user_id = $2 AND key = $3`,
		t.String(), userID, key,
	)
	return err
}
