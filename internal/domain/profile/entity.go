package profile

import (
	"errors"
	"strings"

	"staff-directory/internal/tenant"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Record is the hydrated, normalized view of one directory member.
// Missing attributes hydrate to zero values; Visible defaults to true.
// ReportsTo is raw pointer data and must never be trusted to be
// acyclic or even resolvable.
type Record struct {
	ID        uuid.UUID
	Tenant    tenant.ID
	FirstName string
	LastName  string
	Email     string
	Title     string
	AvatarURL string

	Department         string
	ReportsTo          *uuid.UUID
	OfficeLocation     string
	Skills             []string
	AvailabilityStatus string
	Visible            bool
}

func (r Record) DisplayName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name != "" {
		return name
	}
	return r.Email
}

// HasSkill reports whether the record lists the skill, compared
// case-insensitively.
func (r Record) HasSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	for _, s := range r.Skills {
		if strings.EqualFold(strings.TrimSpace(s), skill) {
			return true
		}
	}
	return false
}
