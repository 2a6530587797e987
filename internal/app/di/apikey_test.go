package di

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_optimizer/internal/feature/analysis/adapters/gemini"
)

func TestKeyPrompter_Ensure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		initial  string
		terminal bool
		input    string
		readErr  error
		wantKey  string
		wantErr  error
		anyErr   bool
	}{
		{name: "already set", initial: "k", wantKey: "k"},
		{name: "not a terminal", terminal: false, wantErr: ErrAPIKeyRequired},
		{name: "prompted", terminal: true, input: "  secret-key \n", wantKey: "secret-key"},
		{name: "empty input", terminal: true, input: "   ", wantErr: ErrAPIKeyRequired},
		{name: "read failure", terminal: true, readErr: errors.New("eof"), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := keyPrompter{
				fd:         0,
				out:        &out,
				isTerminal: func(int) bool { return tt.terminal },
				readPassword: func(int) ([]byte, error) {
					return []byte(tt.input), tt.readErr
				},
			}

			cfg := gemini.Config{APIKey: tt.initial}
			err := p.ensure(&cfg)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantKey, cfg.APIKey)
			}
			if tt.terminal {
				assert.Contains(t, out.String(), "Enter your Gemini API key")
			}
		})
	}
}
