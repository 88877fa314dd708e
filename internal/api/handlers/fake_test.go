package handlers_test

import (
	"context"

	"github.com/donaldgifford/dealsense/internal/engine"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// fakeEngine implements every service interface with overridable funcs.
type fakeEngine struct {
	hotDeals   func(engine.Window, engine.HotSort) (*engine.HotDealsResult, error)
	interests  func(string, engine.InterestsOptions) (*engine.InterestsResult, error)
	getDeal    func(string) (*domain.DealDetail, error)
	verify     func(engine.VerifyRequest) (*domain.Verification, error)
	upsert     func(engine.ProfileInput) (*engine.ProfileView, error)
	list       func(string) ([]engine.ProfileView, error)
	deleteFunc func(string) error
	ingest     func() (*engine.IngestionResult, error)
	seed       func() (*engine.SeedResult, error)
}

func (f *fakeEngine) HotDeals(_ context.Context, w engine.Window, s engine.HotSort) (*engine.HotDealsResult, error) {
	return f.hotDeals(w, s)
}

func (f *fakeEngine) DealsByInterests(
	_ context.Context,
	id string,
	opts engine.InterestsOptions,
) (*engine.InterestsResult, error) {
	return f.interests(id, opts)
}

func (f *fakeEngine) GetDeal(_ context.Context, id string) (*domain.DealDetail, error) {
	return f.getDeal(id)
}

func (f *fakeEngine) VerifyDeal(_ context.Context, req engine.VerifyRequest) (*domain.Verification, error) {
	return f.verify(req)
}

func (f *fakeEngine) UpsertProfile(_ context.Context, in engine.ProfileInput) (*engine.ProfileView, error) {
	return f.upsert(in)
}

func (f *fakeEngine) ListProfiles(_ context.Context, id string) ([]engine.ProfileView, error) {
	return f.list(id)
}

func (f *fakeEngine) DeleteProfile(_ context.Context, id string) error {
	return f.deleteFunc(id)
}

func (f *fakeEngine) RunIngestion(context.Context) (*engine.IngestionResult, error) {
	return f.ingest()
}

func (f *fakeEngine) Seed(context.Context) (*engine.SeedResult, error) {
	return f.seed()
}
