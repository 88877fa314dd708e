package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const profileIDPrefix = "p_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProfileInput is a profile as submitted by a caller. An empty ID creates a
// new profile.
type ProfileInput struct {
	ID              string   `json:"profile_id,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Brands          []string `json:"brands,omitempty"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`
	PriceMax        *int64   `json:"price_max,omitempty"         validate:"omitempty,gte=0"`
	MinDiscountRate *int     `json:"min_discount_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ProfileView is a stored profile with its one-line summary.
type ProfileView struct {
	domain.Profile
	Summary string `json:"summary"`
}

// UpsertProfile creates or replaces a profile. Facet values are trimmed,
// blanks dropped and repeats removed keeping the first occurrence.
func (e *Engine) UpsertProfile(ctx context.Context, in ProfileInput) (*ProfileView, error) {
	if err := validate.StructCtx(ctx, in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	p := &domain.Profile{
		ID:              strings.TrimSpace(in.ID),
		Categories:      cleanFacet(in.Categories),
		Keywords:        cleanFacet(in.Keywords),
		Brands:          cleanFacet(in.Brands),
		ExcludeKeywords: cleanFacet(in.ExcludeKeywords),
		PriceMax:        in.PriceMax,
		MinDiscountRate: in.MinDiscountRate,
	}
	if p.ID == "" {
		p.ID = NewProfileID()
	}

	if err := e.store.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("saving profile %s: %w", p.ID, err)
	}

	e.log.Info("profile saved", "profile", p.ID)
	return view(p), nil
}

// ListProfiles returns every profile, most recently updated first, or only
// the profile with the given id.
func (e *Engine) ListProfiles(ctx context.Context, id string) ([]ProfileView, error) {
	if id != "" {
		p, err := e.store.GetProfile(ctx, id)
		if err != nil {
			return nil, lookupErr("profile", id, err)
		}
		return []ProfileView{*view(p)}, nil
	}

	profiles, err := e.store.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	views := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *view(&profiles[i]))
	}
	return views, nil
}

// DeleteProfile removes a profile.
func (e *Engine) DeleteProfile(ctx context.Context, id string) error {
	if err := e.store.DeleteProfile(ctx, id); err != nil {
		return lookupErr("profile", id, err)
	}
	e.log.Info("profile deleted", "profile", id)
	return nil
}

// NewProfileID returns a random profile identifier.
func NewProfileID() string {
	return profileIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func cleanFacet(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Compact(trimmed))
}

func view(p *domain.Profile) *ProfileView {
	return &ProfileView{Profile: *p, Summary: normalize.ProfileSummary(*p)}
}
