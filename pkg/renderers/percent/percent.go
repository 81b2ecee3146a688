// Package percent renders template pages with printf-style named
// placeholders: `%(name)s` substitutes the environment value under "name" and
// `%%` produces a literal percent sign. It is the default renderer for plain
// text pages.
package percent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-simplate/pkg/render"
)

var placeholderRe = regexp.MustCompile(`%\(([^)]*)\)s|%%`)

// NewFactory returns the render.Factory for the percent renderer.
func NewFactory() render.Factory {
	return func(path, content, mediaType string, lineOffset int) (render.Renderer, error) {
		return &Renderer{path: path, template: content}, nil
	}
}

// Renderer holds one page's template text.
type Renderer struct {
	path     string
	template string
}

// Render substitutes every placeholder from env. A placeholder naming a
// missing binding is an error rather than an empty substitution.
func (r *Renderer) Render(_ context.Context, env map[string]any) ([]byte, error) {
	var (
		sb   strings.Builder
		last int
		err  error
	)

	for _, m := range placeholderRe.FindAllStringSubmatchIndex(r.template, -1) {
		sb.WriteString(r.template[last:m[0]])
		last = m[1]

		if r.template[m[0]:m[1]] == "%%" {
			sb.WriteByte('%')
			continue
		}

		name := r.template[m[2]:m[3]]
		value, ok := env[name]
		if !ok {
			err = fmt.Errorf("percent: %s: no value for placeholder %q", r.path, name)
			break
		}
		sb.WriteString(fmt.Sprint(value))
	}
	if err != nil {
		return nil, err
	}
	sb.WriteString(r.template[last:])

	return []byte(sb.String()), nil
}
