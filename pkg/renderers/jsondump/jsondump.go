// Package jsondump renders data pages as pretty-printed JSON. The page
// content is a script expression evaluated against the call environment; the
// result is rewritten through an encoder registry and serialized with sorted
// keys, four-space indentation, and `\uXXXX` escapes for non-ASCII runes.
package jsondump

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-simplate/pkg/render"
	"github.com/goliatone/go-simplate/pkg/renderers/encoders"
	"github.com/goliatone/go-simplate/pkg/script"
)

const indent = "    "

// Option configures the factory before construction.
type Option func(*config)

type config struct {
	encoders *encoders.Registry
}

// WithEncoders injects a custom encoder registry. The default carries the
// complex-number and time rewrites.
func WithEncoders(reg *encoders.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.encoders = reg
		}
	}
}

// NewFactory returns the render.Factory for the JSON renderer.
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

// Render evaluates the page against env and serializes the result. Values the
// encoder registry cannot make serializable surface as errors from the JSON
// encoder, unwrapped.
func (r *Renderer) Render(ctx context.Context, env map[string]any) ([]byte, error) {
	value, err := r.program.Eval(ctx, env, nil)
	if err != nil {
		return nil, err
	}

	value, err = r.encoders.Rewrite(value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}

	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// escapeNonASCII rewrites runes above 0x7F as \uXXXX sequences (surrogate
// pairs beyond the BMP). Encoded JSON carries non-ASCII bytes only inside
// string values, so the rewrite is safe on the whole document.
func escapeNonASCII(in []byte) []byte {
	ascii := true
	for _, b := range in {
		if b > 0x7F {
			ascii = false
			break
		}
	}
	if ascii {
		return in
	}

	var out bytes.Buffer
	out.Grow(len(in))
	for _, r := range string(in) {
		switch {
		case r < 0x80:
			out.WriteByte(byte(r))
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(&out, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(&out, `\u%04x`, r)
		}
	}
	return out.Bytes()
}
