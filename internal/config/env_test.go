package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clearKeys(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "MISTRAL_API_KEY", "GEMINI_API_KEY", "ELEVENLABS_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		expectError   bool
		errorContains string
		available     []string
	}{
		{
			name:      "valid OpenAI key",
			env:       map[string]string{"OPENAI_API_KEY": "sk-1234567890abcdef1234567890abcdef"},
			available: []string{"OpenAI"},
		},
		{
			name: "all keys",
			env: map[string]string{
				"OPENAI_API_KEY":     "sk-1234567890abcdef1234567890abcdef",
				"MISTRAL_API_KEY":    "abcdefghijklmnopqrstuvwxyz012345",
				"GEMINI_API_KEY":     "AIzaTest-1234567890abcdef1234567890",
				"ELEVENLABS_API_KEY": "0123456789abcdef0123456789abcdef",
			},
			available: []string{"OpenAI", "Mistral", "Gemini", "ElevenLabs"},
		},
		{
			name:          "invalid OpenAI key format",
			env:           map[string]string{"OPENAI_API_KEY": "invalid-key"},
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY",
		},
		{
			name:          "Gemini key too short",
			env:           map[string]string{"GEMINI_API_KEY": "AIza-short"},
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:          "Mistral key too short",
			env:           map[string]string{"MISTRAL_API_KEY": "short"},
			expectError:   true,
			errorContains: "invalid MISTRAL_API_KEY",
		},
		{
			name: "empty keys are allowed",
			env:  map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearKeys(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.available, apiKeys.Available())
		})
	}
}

func TestRequireProviderKey(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr string
	}{
		{name: "disabled", cfg: ProviderConfig{Type: "elevenlabs"}},
		{name: "key present", cfg: ProviderConfig{Type: "mistral", Enabled: true, APIKey: "x"}},
		{name: "missing mistral key", cfg: ProviderConfig{Type: "mistral", Enabled: true}, wantErr: "MISTRAL_API_KEY"},
		{name: "missing custom key", cfg: ProviderConfig{Type: "acme", Enabled: true}, wantErr: "ACME_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireProviderKey(tt.cfg, "generator")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitializeConfig_LoadsDotEnv(t *testing.T) {
	clearKeys(t)
	t.Setenv("PORT", "")
	t.Setenv("RHETOR_ENV", "")
	// godotenv never overrides a variable that is set, even to ""
	require.NoError(t, os.Unsetenv("MISTRAL_API_KEY"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MISTRAL_API_KEY=abcdefghijklmnopqrstuvwxyz012345\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		os.Unsetenv("MISTRAL_API_KEY")
	})

	cfg, err := InitializeConfig("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz012345", cfg.Generator.APIKey)
}
