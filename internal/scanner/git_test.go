package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepoURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		normalized string
		wantErr    bool
	}{
		{
			name:       "https form gains git suffix",
			url:        "https://github.com/acme/widgets",
			normalized: "https://github.com/acme/widgets.git",
		},
		{
			name:       "https form with suffix kept as-is",
			url:        "https://github.com/acme/widgets.git",
			normalized: "https://github.com/acme/widgets.git",
		},
		{
			name:       "trailing slash stripped",
			url:        "https://github.com/acme/widgets/",
			normalized: "https://github.com/acme/widgets.git",
		},
		{
			name:       "ssh form",
			url:        "git@github.com:acme/widgets.git",
			normalized: "git@github.com:acme/widgets.git",
		},
		{
			name:       "short form expands",
			url:        "gh:acme/widgets",
			normalized: "https://github.com/acme/widgets.git",
		},
		{
			name:    "non-github host rejected",
			url:     "https://example.com/acme/widgets",
			wantErr: true,
		},
		{
			name:    "missing repo segment rejected",
			url:     "https://github.com/acme",
			wantErr: true,
		},
		{
			name:    "shell metacharacters rejected",
			url:     "https://github.com/acme/widgets;rm -rf /",
			wantErr: true,
		},
		{
			name:    "empty input rejected",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRepoURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.normalized, got)
		})
	}
}
