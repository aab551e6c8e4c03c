package config

import (
	"os"
	"testing"

	"resolveia-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("CORS_ALLOWED_ORIGINS")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("DEFAULT_PHASE")
	os.Unsetenv("MODEL_PRIORITY")

	cfg := Load()

	assert.Equal(t, "8585", cfg.App.Port)
	// A wildcard default would make the CORS layer reject credentials
	// or refuse to start, so the default must be a concrete origin.
	assert.NotEqual(t, "*", cfg.App.CorsAllowedOrigins)
	assert.NotEmpty(t, cfg.App.CorsAllowedOrigins)

	assert.Equal(t, store.PhaseJudgement, cfg.Session.DefaultPhase)
	assert.Equal(t, store.PrioritySecondary, cfg.Session.DefaultPriority)
	assert.Equal(t, int64(60), int64(cfg.Ai.CompletionTimeout.Seconds()))
}
