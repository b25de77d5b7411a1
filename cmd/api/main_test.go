package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		errorContains string
	}{
		{
			name:          "invalid configuration",
			env:           map[string]string{"JWT_SECRET": "short"},
			errorContains: "invalid configuration",
		},
		{
			name: "database cannot be opened",
			env: map[string]string{
				"JWT_SECRET":      "a-test-secret-that-is-long-enough",
				"DATABASE_DRIVER": "sqlite",
				"DATABASE_DSN":    filepath.Join(t.TempDir(), "missing", "dir", "mandi.db"),
			},
			errorContains: "sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := run()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
