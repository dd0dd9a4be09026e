package oauth

import (
	"fmt"
	"sync"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/services"
)

type ProviderRegistry struct {
	providerByType map[models.ProviderType]services.OAuthProvider
	mutex          sync.RWMutex
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providerByType: make(map[models.ProviderType]services.OAuthProvider),
	}
}

// Register a provider. If a provider of the same type is already registered then this function will panic.
func (s *ProviderRegistry) Register(provider services.OAuthProvider) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.providerByType[provider.Type()]; ok {
		panic(fmt.Sprintf("ProviderRegistry: attempt to register provider %q more than once", provider.Type()))
	}

	s.providerByType[provider.Type()] = provider
}

// Get the registered provider by type. Returns gerror.ErrInvalidArgument if no provider of that type has
// been configured.
func (s *ProviderRegistry) Get(providerType models.ProviderType) (services.OAuthProvider, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	provider, ok := s.providerByType[providerType]
	if !ok {
		return nil, gerror.NewErrInvalidArgument("Unsupported login provider").EDetail("provider", providerType)
	}
	return provider, nil
}
