package usecase

import (
	"context"
	"errors"

	"staff-directory/internal/domain/profile"
	"staff-directory/internal/logger"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrgChartView struct {
	User           profile.Record
	ReportingChain []profile.Record
	DirectReports  []profile.Record
}

type OrgChartUsecase interface {
	Chart(ctx context.Context, t tenant.ID, userID uuid.UUID) (OrgChartView, error)
	ReportingChain(ctx context.Context, t tenant.ID, rec profile.Record) ([]profile.Record, error)
	DirectReports(ctx context.Context, t tenant.ID, managerID uuid.UUID) ([]profile.Record, error)
	Manager(ctx context.Context, t tenant.ID, rec profile.Record) (*profile.Record, error)
}

type OrgChart struct {
	repo     repository.ProfileQueryRepository
	hydrator *Hydrator
	log      logger.Logger
}

func NewOrgChartUsecase(repo repository.ProfileQueryRepository, hydrator *Hydrator, log logger.Logger) *OrgChart {
	return &OrgChart{repo: repo, hydrator: hydrator, log: log}
}

func (u *OrgChart) Chart(ctx context.Context, t tenant.ID, userID uuid.UUID) (OrgChartView, error) {
	rec, err := u.hydrator.Hydrate(ctx, t, userID)
	if err != nil {
		return OrgChartView{}, err
	}

	chain, err := u.ReportingChain(ctx, t, rec)
	if err != nil {
		return OrgChartView{}, err
	}

	reports, err := u.DirectReports(ctx, t, userID)
	if err != nil {
		return OrgChartView{}, err
	}

	return OrgChartView{User: rec, ReportingChain: chain, DirectReports: reports}, nil
}

// ReportingChain walks reports_to pointers upward: immediate manager
// first, ascending toward the top. The seen set is seeded with the
// starting profile so the walk halts on any cycle without appending the
// cyclic node; it therefore terminates within the total population size
// no matter how malformed the pointer data is.
func (u *OrgChart) ReportingChain(ctx context.Context, t tenant.ID, rec profile.Record) ([]profile.Record, error) {
	seen := map[uuid.UUID]struct{}{rec.ID: {}}
	chain := make([]profile.Record, 0)

	current := rec
	for current.ReportsTo != nil {
		managerID := *current.ReportsTo
		if _, ok := seen[managerID]; ok {
			if u.log != nil {
				u.log.Warn("reporting chain cycle detected",
					zap.String("user_id", rec.ID.String()),
					zap.String("cyclic_id", managerID.String()))
			}
			break
		}

		manager, err := u.hydrator.Hydrate(ctx, t, managerID)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				break
			}
			return nil, err
		}

		chain = append(chain, manager)
		seen[managerID] = struct{}{}
		current = manager
	}

	return chain, nil
}

// DirectReports is a reverse lookup over reports_to. The backing
// repository keeps no reverse index, so this hydrates the entire
// population: an accepted O(n) scan.
func (u *OrgChart) DirectReports(ctx context.Context, t tenant.ID, managerID uuid.UUID) ([]profile.Record, error) {
	ids, err := u.repo.ListAccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]profile.Record, 0)
	for _, id := range ids {
		if id == managerID {
			continue
		}
		rec, err := u.hydrator.Hydrate(ctx, t, id)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !rec.Visible {
			continue
		}
		if rec.ReportsTo != nil && *rec.ReportsTo == managerID {
			reports = append(reports, rec)
		}
	}

	return reports, nil
}

// Manager resolves the single-hop reports_to pointer, or nil when the
// profile has no manager or the pointer does not resolve.
func (u *OrgChart) Manager(ctx context.Context, t tenant.ID, rec profile.Record) (*profile.Record, error) {
	if rec.ReportsTo == nil {
		return nil, nil
	}
	manager, err := u.hydrator.Hydrate(ctx, t, *rec.ReportsTo)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}
