package services

import (
	"context"

	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// providerService implements ProviderService over the creator registry
type providerService struct {
	active dto.ActiveProviders
}

// NewProviderService creates a new provider service
func NewProviderService(active dto.ActiveProviders) ProviderService {
	return &providerService{active: active}
}

// ListProviders returns the registered provider types of every kind
func (s *providerService) ListProviders(ctx context.Context) (*dto.ProvidersResponse, error) {
	registered := make(map[string][]string)
	for _, kind := range []provider.Kind{provider.KindTranscriber, provider.KindGenerator, provider.KindSynthesizer} {
		names := provider.ListRegisteredProviders(kind)
		if names == nil {
			names = []string{}
		}
		registered[string(kind)] = names
	}

	return &dto.ProvidersResponse{
		Active:     s.active,
		Registered: registered,
	}, nil
}
