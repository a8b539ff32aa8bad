package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"push": map[string]any{
			"vapidPublicKey": "key",
			"safariWebId":    "id",
		},
		"backend": map[string]any{
			"baseUrl": "http://localhost",
		},
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "aligns segments with yaml casing",
			input:    "PUSH_VAPIDPUBLICKEY",
			expected: "push.vapidPublicKey",
		},
		{
			name:     "nested key",
			input:    "BACKEND_BASEURL",
			expected: "backend.baseUrl",
		},
		{
			name:     "unknown segments stay lowercase",
			input:    "PUSH_UNKNOWNFIELD",
			expected: "push.unknownfield",
		},
		{
			name:     "fully unknown key",
			input:    "SOMETHING_ELSE",
			expected: "something.else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, canonicalizeEnvKey(tt.input, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "vapidpublickey", normalizeToken("vapidPublicKey"))
	assert.Equal(t, "baseurl", normalizeToken("base_url"))
	assert.Equal(t, "pathb", normalizeToken("Path-B"))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "/push-worker-a.js", cfg.Worker.PathA)
	assert.Equal(t, "/push-worker-b.js", cfg.Worker.PathB)
	assert.Equal(t, "/", cfg.Worker.Scope)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Worker.PathA = "/custom-a.js"
	cfg.Worker.PathB = "/custom-b.js"
	cfg.Worker.Scope = "/push/"
	cfg.Backend.Timeout = 5 * time.Second
	applyDefaults(cfg)

	assert.Equal(t, "/custom-a.js", cfg.Worker.PathA)
	assert.Equal(t, "/custom-b.js", cfg.Worker.PathB)
	assert.Equal(t, "/push/", cfg.Worker.Scope)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
}

func TestWorkerConfigPaths(t *testing.T) {
	cfg := WorkerConfig{PathA: "/a.js", PathB: "/b.js", Scope: "/"}
	paths := cfg.Paths()

	assert.Equal(t, "/a.js", paths.PathA)
	assert.Equal(t, "/b.js", paths.PathB)
	assert.Equal(t, "/", paths.Scope)
}
