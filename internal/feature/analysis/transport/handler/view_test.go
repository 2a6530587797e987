package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Theme
	}{
		{"dark", ThemeDark},
		{" Cards ", ThemeCards},
		{"light", ThemeLight},
		{"", ThemeLight},
		{"neon", ThemeLight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTheme(tt.in), tt.in)
	}
}

func TestNl2br(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a<br>b &lt;i&gt;", string(nl2br("a\nb <i>")))
}

func TestViewConfig_NewPage(t *testing.T) {
	t.Parallel()

	v := ViewConfig{Theme: ThemeCards}
	p := v.newPage(nil, nil, formValues{})

	assert.Contains(t, Gradients, string(p.Gradient))
	assert.Len(t, p.Steps, 3)
	assert.Zero(t, p.ProgressWidth)
}
