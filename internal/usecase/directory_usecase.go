package usecase

import (
	"context"

	"staff-directory/internal/domain/profile"
	"staff-directory/internal/logger"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultDirectoryPageSize = 20

// UnlimitedResults disables pagination on a directory listing.
const UnlimitedResults = -1

type DirectoryFilter struct {
	Search         string
	Department     string
	OfficeLocation string
	IncludeHidden  bool
	Limit          int
	Offset         int
}

type DirectoryPage struct {
	Total   int
	Results []profile.Record
}

type UpdateProfileInput struct {
	Title              *string
	AvatarURL          *string
	Department         *string
	ReportsTo          *string
	OfficeLocation     *string
	Skills             []string
	AvailabilityStatus *string
	Visible            *bool
}

type DirectoryUsecase interface {
	List(ctx context.Context, t tenant.ID, f DirectoryFilter) (DirectoryPage, error)
	Get(ctx context.Context, t tenant.ID, id uuid.UUID) (profile.Record, error)
	Update(ctx context.Context, t tenant.ID, id uuid.UUID, in UpdateProfileInput) (profile.Record, error)
	Departments(ctx context.Context, t tenant.ID) ([]string, error)
	OfficeLocations(ctx context.Context, t tenant.ID) ([]string, error)
}

type Directory struct {
	repo     repository.ProfileQueryRepository
	attrs    repository.AttributeRepository
	hydrator *Hydrator
	cache    DirectoryCache
	log      logger.Logger
}

// NewDirectoryUsecase builds the directory service. cache may be nil,
// in which case every listing goes to the store.
func NewDirectoryUsecase(repo repository.ProfileQueryRepository, attrs repository.AttributeRepository, hydrator *Hydrator, cache DirectoryCache, log logger.Logger) *Directory {
	return &Directory{repo: repo, attrs: attrs, hydrator: hydrator, cache: cache, log: log}
}

func (u *Directory) List(ctx context.Context, t tenant.ID, f DirectoryFilter) (DirectoryPage, error) {
	if f.Limit == 0 {
		f.Limit = defaultDirectoryPageSize
	}
	if f.Limit < 0 {
		f.Limit = UnlimitedResults
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var cacheKey string
	if u.cache != nil {
		cacheKey = DirectoryListCacheKey(t, f)
		var cached DirectoryPage
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, total, err := u.repo.ListAccounts(ctx, t, repository.ProfileFilter{
		Search:         f.Search,
		Department:     f.Department,
		OfficeLocation: f.OfficeLocation,
		IncludeHidden:  f.IncludeHidden,
		Limit:          f.Limit,
		Offset:         f.Offset,
	})
	if err != nil {
		return DirectoryPage{}, err
	}

	results := make([]profile.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := u.hydrator.HydrateAccount(ctx, t, row)
		if err != nil {
			return DirectoryPage{}, err
		}
		results = append(results, rec)
	}

	page := DirectoryPage{Total: total, Results: results}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, directoryCacheTTL); err != nil && u.log != nil {
			u.log.Debug("directory cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

func (u *Directory) Get(ctx context.Context, t tenant.ID, id uuid.UUID) (profile.Record, error) {
	return u.hydrator.Hydrate(ctx, t, id)
}

// Update saves the provided fields to the attribute store. Profiles are
// never hard-deleted; setting Visible=false is the only removal.
func (u *Directory) Update(ctx context.Context, t tenant.ID, id uuid.UUID, in UpdateProfileInput) (profile.Record, error) {
	if in.ReportsTo != nil && *in.ReportsTo != "" {
		if _, err := uuid.Parse(*in.ReportsTo); err != nil {
			return profile.Record{}, ErrInvalidInput
		}
	}

	if _, err := u.repo.GetAccount(ctx, id); err != nil {
		return profile.Record{}, err
	}

	set := func(key string, value *string) error {
		if value == nil {
			return nil
		}
		return u.attrs.Set(ctx, t, id, key, *value)
	}

	if err := set(repository.AttrTitle, in.Title); err != nil {
		return profile.Record{}, err
	}
	if err := set(repository.AttrAvatarURL, in.AvatarURL); err != nil {
		return profile.Record{}, err
	}
	if err := set(repository.AttrDepartment, in.Department); err != nil {
		return profile.Record{}, err
	}
	if err := set(repository.AttrReportsTo, in.ReportsTo); err != nil {
		return profile.Record{}, err
	}
	if err := set(repository.AttrOfficeLocation, in.OfficeLocation); err != nil {
		return profile.Record{}, err
	}
	if err := set(repository.AttrAvailabilityStatus, in.AvailabilityStatus); err != nil {
		return profile.Record{}, err
	}
	if in.Skills != nil {
		if err := u.attrs.Set(ctx, t, id, repository.AttrSkills, profile.EncodeStringList(in.Skills)); err != nil {
			return profile.Record{}, err
		}
	}
	if in.Visible != nil {
		v := "true"
		if !*in.Visible {
			v = "false"
		}
		if err := u.attrs.Set(ctx, t, id, repository.AttrVisible, v); err != nil {
			return profile.Record{}, err
		}
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, directoryListInvalidationPattern(t)); err != nil && u.log != nil {
			u.log.Debug("directory cache invalidation failed", zap.Error(err))
		}
	}

	if u.log != nil {
		u.log.Info("profile updated", zap.String("user_id", id.String()), zap.String("tenant", t.String()))
	}

	return u.hydrator.Hydrate(ctx, t, id)
}

func (u *Directory) Departments(ctx context.Context, t tenant.ID) ([]string, error) {
	return u.repo.Departments(ctx, t)
}

func (u *Directory) OfficeLocations(ctx context.Context, t tenant.ID) ([]string, error) {
	return u.repo.OfficeLocations(ctx, t)
}
