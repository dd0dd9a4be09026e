package server_test

import (
	"context"
	"sync"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/services/oauth"
	"github.com/ahachul/ahachul-backend/server/services/oauth/fake_oauth"
)

// MakeFakeProviderRegistry registers a fake provider for every provider type, so tests can sign in
// with codes made by fake_oauth.MakeCode.
func MakeFakeProviderRegistry() *oauth.ProviderRegistry {
	registry := oauth.NewProviderRegistry()
	registry.Register(fake_oauth.NewFakeProvider(models.ProviderTypeKakao))
	registry.Register(fake_oauth.NewFakeProvider(models.ProviderTypeGoogle))
	registry.Register(fake_oauth.NewFakeProvider(models.ProviderTypeApple))
	return registry
}

// FakeItemSource serves whatever found items the test last set.
type FakeItemSource struct {
	items []*lost112.Item
	err   error
	mu    sync.Mutex
}

func NewFakeItemSource() *FakeItemSource {
	return &FakeItemSource{}
}

func (s *FakeItemSource) SetItems(items []*lost112.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.err = nil
}

// SetError makes the next fetches fail with err.
func (s *FakeItemSource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *FakeItemSource) FetchItems(ctx context.Context) ([]*lost112.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

// FakeCarPercentageSource serves congestion percentages keyed by line number and train number.
type FakeCarPercentageSource struct {
	percentages map[string][]int
	mu          sync.Mutex
}

func NewFakeCarPercentageSource() *FakeCarPercentageSource {
	return &FakeCarPercentageSource{percentages: make(map[string][]int)}
}

func (s *FakeCarPercentageSource) Set(lineNumber string, trainNo string, percentages []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.percentages[lineNumber+"/"+trainNo] = percentages
}

func (s *FakeCarPercentageSource) GetCarPercentages(ctx context.Context, lineNumber string, trainNo string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	percentages, ok := s.percentages[lineNumber+"/"+trainNo]
	if !ok {
		return nil, gerror.NewErrNotFound("Train not found")
	}
	return percentages, nil
}
