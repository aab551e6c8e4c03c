package server

import (
	"testing"

	"resolveia-be/internal/bootstrap"
	"resolveia-be/internal/config"
	"resolveia-be/internal/controller"

	"github.com/stretchr/testify/require"
)

func minimalContainer(cfg *config.Config) *bootstrap.Container {
	return &bootstrap.Container{
		AssistantController: controller.NewAssistantController(nil, nil, nil, cfg, nil),
	}
}

func TestNewToleratesWildcardOrigins(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.CorsAllowedOrigins = "*"

	// Fiber's CORS layer refuses credentials together with a wildcard
	// origin; startup must survive that configuration.
	require.NotPanics(t, func() {
		New(cfg, minimalContainer(cfg))
	})
}

func TestNewWithConcreteOrigin(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"

	srv := New(cfg, minimalContainer(cfg))
	require.NotNil(t, srv.GetApp())
}
