package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dealsense/internal/engine"
)

// ProfileService is the subset of the engine used by profile endpoints.
type ProfileService interface {
	UpsertProfile(ctx context.Context, in engine.ProfileInput) (*engine.ProfileView, error)
	ListProfiles(ctx context.Context, id string) ([]engine.ProfileView, error)
	DeleteProfile(ctx context.Context, id string) error
}

// ProfilesHandler handles profile CRUD endpoints.
type ProfilesHandler struct {
	profiles ProfileService
}

// NewProfilesHandler creates a new ProfilesHandler.
func NewProfilesHandler(p ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profiles: p}
}

// --- Input/Output types ---

// UpsertProfileInput is the request to create or replace a profile.
type UpsertProfileInput struct {
	Body engine.ProfileInput
}

// UpsertProfileOutput is the response for a saved profile.
type UpsertProfileOutput struct {
	Body engine.ProfileView
}

// ListProfilesInput optionally narrows the listing to one profile.
type ListProfilesInput struct {
	ID string `query:"profile_id" doc:"Return only this profile"`
}

// ListProfilesOutput is the response for listing profiles.
type ListProfilesOutput struct {
	Body struct {
		Profiles []engine.ProfileView `json:"profiles"`
	}
}

// DeleteProfileInput identifies the profile to delete.
type DeleteProfileInput struct {
	ID string `path:"id" doc:"Profile ID" example:"p_camping_user"`
}

// --- Handlers ---

// UpsertProfile creates a profile, or replaces it when the id exists.
func (h *ProfilesHandler) UpsertProfile(
	ctx context.Context,
	input *UpsertProfileInput,
) (*UpsertProfileOutput, error) {
	v, err := h.profiles.UpsertProfile(ctx, input.Body)
	if err != nil {
		return nil, engineError("saving profile", err)
	}
	return &UpsertProfileOutput{Body: *v}, nil
}

// ListProfiles returns every profile, most recently updated first.
func (h *ProfilesHandler) ListProfiles(
	ctx context.Context,
	input *ListProfilesInput,
) (*ListProfilesOutput, error) {
	views, err := h.profiles.ListProfiles(ctx, input.ID)
	if err != nil {
		return nil, engineError("listing profiles", err)
	}

	resp := &ListProfilesOutput{}
	resp.Body.Profiles = views
	if resp.Body.Profiles == nil {
		resp.Body.Profiles = []engine.ProfileView{}
	}
	return resp, nil
}

// DeleteProfile removes a profile.
func (h *ProfilesHandler) DeleteProfile(
	ctx context.Context,
	input *DeleteProfileInput,
) (*struct{}, error) {
	if err := h.profiles.DeleteProfile(ctx, input.ID); err != nil {
		return nil, engineError("deleting profile", err)
	}
	return nil, nil
}

// RegisterProfileRoutes registers profile endpoints with the Huma API.
func RegisterProfileRoutes(api huma.API, h *ProfilesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-profile",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles",
		Summary:     "Create or update a profile",
		Description: "Saves a set of interests and constraints. An empty profile_id creates a new profile.",
		Tags:        []string{"profiles"},
		Errors:      []int{http.StatusBadRequest},
	}, h.UpsertProfile)

	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List profiles",
		Description: "Returns saved profiles with a one-line summary, most recently updated first.",
		Tags:        []string{"profiles"},
		Errors:      []int{http.StatusNotFound},
	}, h.ListProfiles)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/api/v1/profiles/{id}",
		Summary:       "Delete a profile",
		Tags:          []string{"profiles"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteProfile)
}
