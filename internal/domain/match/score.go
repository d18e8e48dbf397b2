package match

import (
	"fmt"
	"sort"
	"strings"

	"staff-directory/internal/domain/profile"
)

const (
	skillPoints      = 10
	departmentPoints = 5
	officePoints     = 5

	// MaxMatches bounds the ranked result.
	MaxMatches = 10
)

type Criteria struct {
	Skills         []string
	Department     string
	OfficeLocation string
}

func (c Criteria) hasSkills() bool {
	for _, s := range c.Skills {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Score computes the criteria score for one candidate: 10 points per
// case-insensitive skill intersection, 5 for an exact department match,
// 5 for an exact office match.
func Score(rec profile.Record, c Criteria) int {
	score := 0
	for _, s := range c.Skills {
		if rec.HasSkill(s) {
			score += skillPoints
		}
	}
	if c.Department != "" && c.Department == rec.Department {
		score += departmentPoints
	}
	if c.OfficeLocation != "" && c.OfficeLocation == rec.OfficeLocation {
		score += officePoints
	}
	return score
}

// Rank scores the candidate pool and returns the top candidates in
// score-descending order. When skills are part of the criteria only
// candidates with a positive score qualify; otherwise every candidate
// stays in, with department and office still contributing score. Equal
// scores keep the pool's original order (stable sort, no extra
// tie-break).
func Rank(pool []profile.Record, c Criteria) []profile.Record {
	type scored struct {
		rec   profile.Record
		score int
	}

	gate := c.hasSkills()
	candidates := make([]scored, 0, len(pool))
	for _, rec := range pool {
		s := Score(rec, c)
		if gate && s <= 0 {
			continue
		}
		candidates = append(candidates, scored{rec: rec, score: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > MaxMatches {
		candidates = candidates[:MaxMatches]
	}

	out := make([]profile.Record, 0, len(candidates))
	for _, sc := range candidates {
		out = append(out, sc.rec)
	}
	return out
}

// Suggestion renders the one-line summary for a ranked result.
func Suggestion(matches []profile.Record) string {
	switch len(matches) {
	case 0:
		return "No colleagues matched those criteria. Try broadening your search."
	case 1:
		return fmt.Sprintf("Found one match: %s.", matches[0].DisplayName())
	default:
		return fmt.Sprintf("Found %d matches. Top match: %s.", len(matches), matches[0].DisplayName())
	}
}
