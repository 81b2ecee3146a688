package simplate

import (
	"context"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-simplate/pkg/pages"
	"github.com/goliatone/go-simplate/pkg/render"
	"github.com/goliatone/go-simplate/pkg/script"
)

// Source describes one simplate to compile: its raw text, the path used for
// error positions and the reserved source binding, and the default media type
// for pages whose specline omits one (typically guessed from the file
// extension by the caller).
type Source struct {
	Path      string
	Text      string
	MediaType string
}

// Simplate is one compiled resource. Construction runs the full load-time
// pipeline; afterwards the value is immutable and a single Simplate serves
// any number of concurrent Render calls.
type Simplate struct {
	path             string
	defaultMediaType string
	runOnce          map[string]any
	runEvery         *script.Program
	renderers        map[string]render.Renderer
	availableTypes   []string
}

// New compiles src into a Simplate: split into pages, normalize logic versus
// template pages, build one renderer per template page, execute the run-once
// page, and compile the run-every page. Any failure is fatal; a partially
// constructed Simplate is never returned.
func New(ctx context.Context, defaults *Defaults, src Source) (*Simplate, error) {
	if defaults == nil {
		defaults = NewDefaults()
	}

	s := &Simplate{
		path:             src.Path,
		defaultMediaType: src.MediaType,
		renderers:        make(map[string]render.Renderer),
	}

	normalized := pages.Normalize(pages.Split(src.Text))

	for _, page := range normalized[2:] {
		spec, err := pages.ParseSpecline(page.Header, src.MediaType, defaults.renderersByMediaType)
		if err != nil {
			return nil, err
		}
		if _, exists := s.renderers[spec.MediaType]; exists {
			return nil, &render.DuplicateMediaTypeError{MediaType: spec.MediaType}
		}

		factory, err := defaults.registry.Resolve(spec.RendererName)
		if err != nil {
			return nil, err
		}
		renderer, err := factory(src.Path, page.Content, spec.MediaType, page.LineOffset)
		if err != nil {
			return nil, err
		}

		s.renderers[spec.MediaType] = renderer
		s.availableTypes = append(s.availableTypes, spec.MediaType)
	}

	runOnce, err := script.Compile(src.Path, normalized[0].Content, normalized[0].LineOffset)
	if err != nil {
		return nil, err
	}
	seed := defaults.InitialContext()
	seed[SourcePathKey] = src.Path
	exported, err := runOnce.Exec(ctx, seed, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range exported {
		seed[key] = value
	}
	s.runOnce = seed

	s.runEvery, err = script.Compile(src.Path, normalized[1].Content, normalized[1].LineOffset, script.WithOutput())
	if err != nil {
		return nil, err
	}

	logger(ctx).Debug("compiled simplate",
		"path", src.Path,
		"available_types", s.availableTypes)

	return s, nil
}

// Path returns the source path this resource was compiled from.
func (s *Simplate) Path() string {
	return s.path
}

// AvailableTypes returns the media types declared by the template pages, in
// source order.
func (s *Simplate) AvailableTypes() []string {
	out := make([]string, len(s.availableTypes))
	copy(out, s.availableTypes)
	return out
}

// Render executes the run-every page against callerContext overlaid with a
// fresh copy of the run-once bindings and renders the page registered for
// mediaType, which must be one of AvailableTypes (negotiation happens before
// this call). The run-every page may set the output body directly, in which
// case the renderer is never invoked. Render never mutates the Simplate and
// is safe to call concurrently; errors from page code or renderers propagate
// unchanged.
func (s *Simplate) Render(ctx context.Context, mediaType string, callerContext map[string]any) (*render.Output, error) {
	renderer, ok := s.renderers[mediaType]
	if !ok {
		return nil, &render.MediaTypeNotSupportedError{
			MediaType: mediaType,
			Available: s.AvailableTypes(),
		}
	}

	out := render.NewOutput(mediaType)

	env := make(map[string]any, len(callerContext)+len(s.runOnce))
	for key, value := range callerContext {
		env[key] = value
	}
	if len(s.runOnce) > 0 {
		for key, value := range deepcopy.Copy(s.runOnce).(map[string]any) {
			env[key] = value
		}
	}

	exported, err := s.runEvery.Exec(ctx, env, out)
	if err != nil {
		logger(ctx).Error("run-every page failed", "path", s.path, "error", err)
		return nil, err
	}
	for key, value := range exported {
		env[key] = value
	}

	if out.HasBody() {
		return out, nil
	}

	body, err := renderer.Render(ctx, narrowExports(env))
	if err != nil {
		logger(ctx).Error("renderer failed", "path", s.path, "media_type", mediaType, "error", err)
		return nil, err
	}
	out.SetBodyBytes(body)

	return out, nil
}

// narrowExports restricts env to the names listed under ExportsKey, when the
// run-every page declared one.
func narrowExports(env map[string]any) map[string]any {
	names, ok := exportNames(env[ExportsKey])
	if !ok {
		return env
	}
	narrowed := make(map[string]any, len(names))
	for _, name := range names {
		if value, exists := env[name]; exists {
			narrowed[name] = value
		}
	}
	return narrowed
}

func exportNames(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		names := make([]string, 0, len(list))
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return nil, false
			}
			names = append(names, name)
		}
		return names, true
	}
	return nil, false
}
