package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_HTML(t *testing.T) {
	r := NewRenderer()
	cases := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{name: "emphasis", in: "**great** work", contains: []string{"<strong>great</strong>"}},
		{name: "gfm strikethrough", in: "~~old~~", contains: []string{"<del>old</del>"}},
		{name: "script stripped", in: "hi <script>alert(1)</script>", absent: []string{"<script", "alert(1)</script>"}},
		{name: "javascript link", in: "[x](javascript:alert(1))", absent: []string{"javascript:"}},
		{name: "list", in: "- a\n- b", contains: []string{"<ul>", "<li>a</li>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.HTML(tc.in)
			require.NoError(t, err)
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			for _, bad := range tc.absent {
				assert.NotContains(t, out, bad)
			}
		})
	}
}

func TestRenderer_MustHTML(t *testing.T) {
	assert.Contains(t, NewRenderer().MustHTML("plain"), "plain")
}
