// Package pongo renders template pages through the pongo2 template engine,
// giving simplate authors Django-style blocks, filters and inheritance inside
// a content page.
package pongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-simplate/pkg/render"
)

// Option configures the factory before construction.
type Option func(*config)

type config struct {
	setName   string
	sanitizer *bluemonday.Policy
	filters   map[string]func(input any, param any) (any, error)
}

// WithSanitizer post-processes every rendered body through a bluemonday
// policy. Useful when template pages interpolate caller-supplied values into
// HTML media types.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// WithFilter registers a custom template filter when the factory loads.
// Registration is process-wide, as the underlying engine keeps one filter
// namespace; an already-existing name is an error.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(any, any) (any, error))
		}
		cfg.filters[strings.TrimSpace(name)] = fn
	}
}

// WithSetName names the underlying template set, which shows up in template
// error messages.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.setName = trimmed
		}
	}
}

// NewFactory returns the render.Factory for the pongo2 renderer. Each page's
// template is parsed once, at load time.
func NewFactory(options ...Option) (render.Factory, error) {
	cfg := config{setName: "simplate"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	for name, fn := range cfg.filters {
		if name == "" || fn == nil {
			return nil, fmt.Errorf("pongo: filter name and function required")
		}
		if pongo2.FilterExists(name) {
			return nil, fmt.Errorf("pongo: filter %q already exists", name)
		}
		if err := pongo2.RegisterFilter(name, adaptFilter(fn)); err != nil {
			return nil, fmt.Errorf("pongo: register filter %q: %w", name, err)
		}
	}

	set := pongo2.NewSet(cfg.setName, pongo2.MustNewLocalFileSystemLoader(""))

	return func(path, content, mediaType string, lineOffset int) (render.Renderer, error) {
		tpl, err := set.FromString(content)
		if err != nil {
			return nil, fmt.Errorf("pongo: parse template page %s: %w", path, err)
		}
		return &Renderer{template: tpl, sanitizer: cfg.sanitizer}, nil
	}, nil
}

// MustFactory panics on factory construction failure. Useful for init-time
// wiring.
func MustFactory(options ...Option) render.Factory {
	factory, err := NewFactory(options...)
	if err != nil {
		panic(err)
	}
	return factory
}

// Renderer executes one page's parsed template per call.
type Renderer struct {
	template  *pongo2.Template
	sanitizer *bluemonday.Policy
}

// Render executes the template against env.
func (r *Renderer) Render(_ context.Context, env map[string]any) ([]byte, error) {
	out, err := r.template.Execute(pongo2.Context(env))
	if err != nil {
		return nil, err
	}
	if r.sanitizer != nil {
		out = r.sanitizer.Sanitize(out)
	}
	return []byte(out), nil
}

func adaptFilter(fn func(input any, param any) (any, error)) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}
