package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8086", cfg.Port)
	assert.Equal(t, 0, cfg.RedisCfg.DB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestNew_ReadsRedisDBFromEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "3")

	cfg := New()

	assert.Equal(t, 3, cfg.RedisCfg.DB)
}

func TestGetIntOrDefault_IgnoresBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"not a number", "three", 0},
		{"negative", "-1", 0},
		{"valid", "5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REDIS_DB", tt.value)
			assert.Equal(t, tt.want, getIntOrDefault("REDIS_DB", 0))
		})
	}
}
