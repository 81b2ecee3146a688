package simplate

import (
	"github.com/goliatone/go-simplate/pkg/render"
	"github.com/goliatone/go-simplate/pkg/renderers/jsondump"
	"github.com/goliatone/go-simplate/pkg/renderers/percent"
	"github.com/goliatone/go-simplate/pkg/renderers/pongo"
	"github.com/goliatone/go-simplate/pkg/renderers/yamldump"
)

const (
	// SourcePathKey is the reserved binding carrying the resource's source
	// path into the run-once page's context.
	SourcePathKey = "__file__"

	// ExportsKey names the optional binding listing exactly which names
	// template pages may see. Without it, templates see the whole
	// environment.
	ExportsKey = "__all__"
)

// Defaults is the process-wide, read-only configuration shared by every
// simplate: the renderer factory registry, the default renderer per media
// type, and the initial context visible to every run-once page. Build it once
// at startup and reuse it across resources.
type Defaults struct {
	registry             *render.Registry
	renderersByMediaType map[string]string
	initialContext       map[string]any
	mediaTypeJSON        string

	pendingFactories map[string]render.Factory
	pendingErrors    map[string]error
}

// Option customises the Defaults configuration.
type Option func(*Defaults)

// WithRegistry injects a caller-managed factory registry, disabling the
// built-in registrations.
func WithRegistry(registry *render.Registry) Option {
	return func(d *Defaults) {
		d.registry = registry
	}
}

// WithRenderer registers an additional renderer factory under name.
func WithRenderer(name string, factory render.Factory) Option {
	return func(d *Defaults) {
		d.pendingFactories[name] = factory
	}
}

// WithRendererError records a load-failure placeholder for name, standing in
// for a renderer whose optional dependency failed to initialize at process
// start.
func WithRendererError(name string, loadErr error) Option {
	return func(d *Defaults) {
		d.pendingErrors[name] = loadErr
	}
}

// WithDefaultRenderer maps a media type to the renderer used when a specline
// omits the `via` clause.
func WithDefaultRenderer(mediaType, rendererName string) Option {
	return func(d *Defaults) {
		d.renderersByMediaType[mediaType] = rendererName
	}
}

// WithInitialContext seeds bindings visible to every run-once page.
func WithInitialContext(initial map[string]any) Option {
	return func(d *Defaults) {
		for key, value := range initial {
			d.initialContext[key] = value
		}
	}
}

// WithJSONMediaType overrides the media type that defaults to the JSON
// renderer (application/json unless changed).
func WithJSONMediaType(mediaType string) Option {
	return func(d *Defaults) {
		if mediaType != "" {
			d.mediaTypeJSON = mediaType
		}
	}
}

// NewDefaults constructs Defaults applying any provided options. Missing
// pieces are initialised with the built-in renderer set so callers can start
// with a single constructor call.
func NewDefaults(options ...Option) *Defaults {
	d := &Defaults{
		renderersByMediaType: make(map[string]string),
		initialContext:       make(map[string]any),
		mediaTypeJSON:        "application/json",
		pendingFactories:     make(map[string]render.Factory),
		pendingErrors:        make(map[string]error),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	d.applyDefaults()
	return d
}

func (d *Defaults) applyDefaults() {
	callerManaged := d.registry != nil
	if d.registry == nil {
		d.registry = render.NewRegistry()
	}

	for name, factory := range d.pendingFactories {
		d.registry.MustRegister(name, factory)
	}
	for name, loadErr := range d.pendingErrors {
		if err := d.registry.RegisterError(name, loadErr); err != nil {
			panic(err)
		}
	}
	d.pendingFactories = nil
	d.pendingErrors = nil

	if !callerManaged {
		d.registerBuiltin("percent", percent.NewFactory())
		d.registerBuiltin("json_dump", jsondump.NewFactory())
		d.registerBuiltin("yaml_dump", yamldump.NewFactory())
		if !d.registry.Has("pongo2") {
			if factory, err := pongo.NewFactory(); err != nil {
				_ = d.registry.RegisterError("pongo2", err)
			} else {
				d.registry.MustRegister("pongo2", factory)
			}
		}
	}

	d.defaultMapping("text/plain", "percent")
	d.defaultMapping("text/html", "percent")
	d.defaultMapping(d.mediaTypeJSON, "json_dump")
	d.defaultMapping("application/yaml", "yaml_dump")
}

func (d *Defaults) registerBuiltin(name string, factory render.Factory) {
	if d.registry.Has(name) {
		return
	}
	d.registry.MustRegister(name, factory)
}

func (d *Defaults) defaultMapping(mediaType, rendererName string) {
	if _, ok := d.renderersByMediaType[mediaType]; ok {
		return
	}
	if !d.registry.Has(rendererName) {
		return
	}
	d.renderersByMediaType[mediaType] = rendererName
}

// Registry exposes the renderer factory registry.
func (d *Defaults) Registry() *render.Registry {
	return d.registry
}

// RenderersByMediaType returns a copy of the media type to renderer name
// mapping.
func (d *Defaults) RenderersByMediaType() map[string]string {
	out := make(map[string]string, len(d.renderersByMediaType))
	for mediaType, name := range d.renderersByMediaType {
		out[mediaType] = name
	}
	return out
}

// InitialContext returns a copy of the bindings seeded into run-once pages.
func (d *Defaults) InitialContext() map[string]any {
	out := make(map[string]any, len(d.initialContext))
	for key, value := range d.initialContext {
		out[key] = value
	}
	return out
}
