package usecase

import (
	"context"
	"strings"

	"staff-directory/internal/domain/match"
	"staff-directory/internal/domain/profile"
	"staff-directory/internal/logger"
	"staff-directory/internal/tenant"

	"go.uber.org/zap"
)

const defaultMatchPoolSize = 100

type ColleagueCriteria struct {
	Skills         []string
	Department     string
	OfficeLocation string
}

type ColleagueMatches struct {
	Matches    []profile.Record
	Suggestion string
}

type ColleagueUsecase interface {
	Find(ctx context.Context, t tenant.ID, c ColleagueCriteria) (ColleagueMatches, error)
}

// Colleagues ranks a bounded candidate pool from the directory against
// skill, department and office criteria.
type Colleagues struct {
	directory DirectoryUsecase
	poolSize  int
	log       logger.Logger
}

func NewColleagueUsecase(directory DirectoryUsecase, poolSize int, log logger.Logger) *Colleagues {
	if poolSize <= 0 {
		poolSize = defaultMatchPoolSize
	}
	return &Colleagues{directory: directory, poolSize: poolSize, log: log}
}

func (u *Colleagues) Find(ctx context.Context, t tenant.ID, c ColleagueCriteria) (ColleagueMatches, error) {
	skills := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	pool, err := u.directory.List(ctx, t, DirectoryFilter{Limit: u.poolSize})
	if err != nil {
		return ColleagueMatches{}, err
	}

	criteria := match.Criteria{
		Skills:         skills,
		Department:     strings.TrimSpace(c.Department),
		OfficeLocation: strings.TrimSpace(c.OfficeLocation),
	}

	ranked := match.Rank(pool.Results, criteria)

	if u.log != nil {
		u.log.Debug("colleague match computed",
			zap.String("tenant", t.String()),
			zap.Int("pool", len(pool.Results)),
			zap.Int("matches", len(ranked)))
	}

	return ColleagueMatches{
		Matches:    ranked,
		Suggestion: match.Suggestion(ranked),
	}, nil
}
