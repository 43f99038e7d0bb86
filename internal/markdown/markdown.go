// Package markdown turns user-written markdown into HTML that is safe to embed.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// HTML renders src. Raw HTML in the input is dropped by goldmark and anything
// the renderer emits is filtered again through the UGC policy.
func (r *Renderer) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// MustHTML is HTML with rendering errors replaced by escaped plain text.
func (r *Renderer) MustHTML(src string) string {
	out, err := r.HTML(src)
	if err != nil {
		return "<p>" + bluemonday.StrictPolicy().Sanitize(src) + "</p>"
	}
	return out
}
