// Package yamldump renders data pages as YAML documents. Like jsondump, the
// page content is a script expression evaluated against the call environment
// and rewritten through an encoder registry before serialization.
package yamldump

import (
	"bytes"
	"context"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-simplate/pkg/render"
	"github.com/goliatone/go-simplate/pkg/renderers/encoders"
	"github.com/goliatone/go-simplate/pkg/script"
)

// Option configures the factory before construction.
type Option func(*config)

type config struct {
	encoders *encoders.Registry
}

// WithEncoders injects a custom encoder registry.
func WithEncoders(reg *encoders.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.encoders = reg
		}
	}
}

// NewFactory returns the render.Factory for the YAML renderer.
func NewFactory(options ...Option) render.Factory {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.encoders == nil {
		cfg.encoders = encoders.New()
	}

	return func(path, content, mediaType string, lineOffset int) (render.Renderer, error) {
		program, err := script.Compile(path, content, lineOffset)
		if err != nil {
			return nil, err
		}
		return &Renderer{program: program, encoders: cfg.encoders}, nil
	}
}

// Renderer evaluates one page's compiled expression per call.
type Renderer struct {
	program  *script.Program
	encoders *encoders.Registry
}

// Render evaluates the page against env and serializes the result.
func (r *Renderer) Render(ctx context.Context, env map[string]any) ([]byte, error) {
	value, err := r.program.Eval(ctx, env, nil)
	if err != nil {
		return nil, err
	}

	value, err = r.encoders.Rewrite(value)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		return nil, err
	}

	return bytes.TrimRight(out, "\n"), nil
}
