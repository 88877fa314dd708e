package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dealsense/internal/engine"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// DealService is the subset of the engine used by deal endpoints.
type DealService interface {
	HotDeals(ctx context.Context, window engine.Window, sort engine.HotSort) (*engine.HotDealsResult, error)
	DealsByInterests(
		ctx context.Context,
		profileID string,
		opts engine.InterestsOptions,
	) (*engine.InterestsResult, error)
	GetDeal(ctx context.Context, dealID string) (*domain.DealDetail, error)
	VerifyDeal(ctx context.Context, req engine.VerifyRequest) (*domain.Verification, error)
}

// DealsHandler handles deal query endpoints.
type DealsHandler struct {
	deals DealService
}

// NewDealsHandler creates a new DealsHandler.
func NewDealsHandler(d DealService) *DealsHandler {
	return &DealsHandler{deals: d}
}

// --- Input/Output types ---

// HotDealsInput selects the hot list window and ordering.
type HotDealsInput struct {
	Window string `query:"window" doc:"Look-back window"  enum:"24h,7d"              default:"24h"`
	Sort   string `query:"sort"   doc:"Ordering of items" enum:"popularity,discount" default:"popularity"`
}

// HotDealsOutput is the trending deal list.
type HotDealsOutput struct {
	Body engine.HotDealsResult
}

// InterestsInput selects a profile and tunes its listing.
type InterestsInput struct {
	ProfileID string `path:"id"      doc:"Profile ID"                     example:"p_camping_user"`
	Limit     int    `query:"limit"  doc:"Number of results (default 20)" default:"20"             minimum:"1" maximum:"30"`
	Dedupe    bool   `query:"dedupe" doc:"Collapse near duplicates"       default:"true"`
}

// InterestsOutput is a personalized deal list.
type InterestsOutput struct {
	Body engine.InterestsResult
}

// GetDealInput identifies a deal.
type GetDealInput struct {
	ID string `path:"id" doc:"Deal ID" example:"d_0001"`
}

// GetDealOutput is a single deal with its sidecar expanded.
type GetDealOutput struct {
	Body domain.DealDetail
}

// VerifyInput names the listing to verify.
type VerifyInput struct {
	Body struct {
		DealID string `json:"deal_id,omitempty" doc:"Stored deal to verify"`
		URL    string `json:"url,omitempty"     doc:"Listing URL"`
		Title  string `json:"title,omitempty"   doc:"Listing title"         maxLength:"500"`
	}
}

// VerifyOutput is the trust assessment.
type VerifyOutput struct {
	Body domain.Verification
}

// --- Handlers ---

// HotDeals returns the top trending deals in the window.
func (h *DealsHandler) HotDeals(ctx context.Context, input *HotDealsInput) (*HotDealsOutput, error) {
	res, err := h.deals.HotDeals(ctx, engine.Window(input.Window), engine.HotSort(input.Sort))
	if err != nil {
		return nil, engineError("hot deals query", err)
	}
	return &HotDealsOutput{Body: *res}, nil
}

// DealsByInterests returns deals ranked for a profile.
func (h *DealsHandler) DealsByInterests(
	ctx context.Context,
	input *InterestsInput,
) (*InterestsOutput, error) {
	res, err := h.deals.DealsByInterests(ctx, input.ProfileID, engine.InterestsOptions{
		Limit:  input.Limit,
		Dedupe: input.Dedupe,
	})
	if err != nil {
		return nil, engineError("interest query", err)
	}
	return &InterestsOutput{Body: *res}, nil
}

// GetDeal returns a single deal by ID.
func (h *DealsHandler) GetDeal(ctx context.Context, input *GetDealInput) (*GetDealOutput, error) {
	d, err := h.deals.GetDeal(ctx, input.ID)
	if err != nil {
		return nil, engineError("deal lookup", err)
	}
	return &GetDealOutput{Body: *d}, nil
}

// Verify assesses a stored deal or a bare title and URL.
func (h *DealsHandler) Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error) {
	v, err := h.deals.VerifyDeal(ctx, engine.VerifyRequest{
		DealID: input.Body.DealID,
		URL:    input.Body.URL,
		Title:  input.Body.Title,
	})
	if err != nil {
		return nil, engineError("verification", err)
	}
	return &VerifyOutput{Body: *v}, nil
}

// RegisterDealRoutes registers deal endpoints with the Huma API.
func RegisterDealRoutes(api huma.API, h *DealsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "hot-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/hot",
		Summary:     "List hot deals",
		Description: "Returns up to 10 trending deals posted within the window.",
		Tags:        []string{"deals"},
	}, h.HotDeals)

	huma.Register(api, huma.Operation{
		OperationID: "deals-by-interests",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/deals",
		Summary:     "List deals for a profile",
		Description: "Filters every stored deal through the profile, ranks the survivors " +
			"by combined score, and optionally collapses near duplicates.",
		Tags:   []string{"deals"},
		Errors: []int{http.StatusNotFound},
	}, h.DealsByInterests)

	huma.Register(api, huma.Operation{
		OperationID: "verify-deal",
		Method:      http.MethodPost,
		Path:        "/api/v1/deals/verify",
		Summary:     "Verify a deal",
		Description: "Assesses trust for a stored deal, or for a title and URL. At least one field is required.",
		Tags:        []string{"deals"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.Verify)

	huma.Register(api, huma.Operation{
		OperationID: "get-deal",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/{id}",
		Summary:     "Get a deal by ID",
		Description: "Returns a single deal with conditions, observations and price components.",
		Tags:        []string{"deals"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetDeal)
}
