package render

import "context"

// Renderer turns a per-call environment into a rendered body. A Renderer is
// built once per template page and must behave as a pure function of its
// input: one instance serves every concurrent render call for its page.
type Renderer interface {
	Render(ctx context.Context, env map[string]any) ([]byte, error)
}

// Factory builds the Renderer for one template page. It receives the source
// path, the page's raw content, the resolved media type and the 0-based line
// offset of the content within the source file.
type Factory func(path, content, mediaType string, lineOffset int) (Renderer, error)
