//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/api/server"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
	"github.com/Lorak9904/RhetorAI/internal/config"
)

// InitializeService wires the feedback pipeline for CLI use
func InitializeService(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*pipeline.Service, error) {
	wire.Build(PipelineSet)
	return &pipeline.Service{}, nil
}

// InitializeServer wires the HTTP API with its own metrics registry
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(ServerSet)
	return &server.Server{}, nil
}
