package dto

import (
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
)

// ProvidersResponse lists registered provider types and the ones in use
type ProvidersResponse struct {
	Active     ActiveProviders     `json:"active"`
	Registered map[string][]string `json:"registered"`
}

// ActiveProviders names the providers the server was configured with
type ActiveProviders struct {
	Transcriber string `json:"transcriber"`
	Generator   string `json:"generator"`
	Synthesizer string `json:"synthesizer,omitempty"`
}

// StatsResponse wraps the rolling provider statistics
type StatsResponse struct {
	metrics.OverallStats
}
