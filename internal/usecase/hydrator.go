package usecase

import (
	"context"

	"staff-directory/internal/domain/profile"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
)

// Hydrator assembles a normalized profile record from the account row
// and per-field attribute reads. It fails only when the account itself
// does not resolve; every attribute-level problem degrades to a zero
// value instead.
type Hydrator struct {
	accounts repository.ProfileQueryRepository
	attrs    repository.AttributeRepository
}

func NewHydrator(accounts repository.ProfileQueryRepository, attrs repository.AttributeRepository) *Hydrator {
	return &Hydrator{accounts: accounts, attrs: attrs}
}

func (h *Hydrator) Hydrate(ctx context.Context, t tenant.ID, id uuid.UUID) (profile.Record, error) {
	acct, err := h.accounts.GetAccount(ctx, id)
	if err != nil {
		return profile.Record{}, err
	}
	return h.hydrateAttributes(ctx, t, acct)
}

// HydrateAccount skips the account lookup when the caller already holds
// the row, e.g. while walking a directory page.
func (h *Hydrator) HydrateAccount(ctx context.Context, t tenant.ID, acct repository.AccountRow) (profile.Record, error) {
	return h.hydrateAttributes(ctx, t, acct)
}

func (h *Hydrator) hydrateAttributes(ctx context.Context, t tenant.ID, acct repository.AccountRow) (profile.Record, error) {
	rec := profile.Record{
		ID:        acct.ID,
		Tenant:    t,
		Email:     acct.Email,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Visible:   true,
	}

	read := func(key string) (string, error) {
		return h.attrs.Get(ctx, t, acct.ID, key)
	}

	var err error
	if rec.Title, err = read(repository.AttrTitle); err != nil {
		return profile.Record{}, err
	}
	if rec.AvatarURL, err = read(repository.AttrAvatarURL); err != nil {
		return profile.Record{}, err
	}
	if rec.Department, err = read(repository.AttrDepartment); err != nil {
		return profile.Record{}, err
	}
	if rec.OfficeLocation, err = read(repository.AttrOfficeLocation); err != nil {
		return profile.Record{}, err
	}
	if rec.AvailabilityStatus, err = read(repository.AttrAvailabilityStatus); err != nil {
		return profile.Record{}, err
	}

	rawSkills, err := read(repository.AttrSkills)
	if err != nil {
		return profile.Record{}, err
	}
	rec.Skills = profile.DecodeStringList(rawSkills)

	rawReportsTo, err := read(repository.AttrReportsTo)
	if err != nil {
		return profile.Record{}, err
	}
	if managerID, perr := uuid.Parse(rawReportsTo); perr == nil && managerID != uuid.Nil {
		rec.ReportsTo = &managerID
	}

	rawVisible, err := read(repository.AttrVisible)
	if err != nil {
		return profile.Record{}, err
	}
	rec.Visible = parseVisible(rawVisible)

	return rec, nil
}

// parseVisible defaults to true: only an explicit opt-out hides a
// profile. "Deleted" profiles are modeled exclusively this way.
func parseVisible(raw string) bool {
	switch raw {
	case "false", "0":
		return false
	default:
		return true
	}
}
