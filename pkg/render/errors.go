package render

import (
	"fmt"
	"strings"
)

// UnknownRendererError reports a renderer name with no registry entry. The
// message enumerates every registered name; names whose backing library failed
// to load at process start are starred so operators can tell "not installed"
// from "never existed".
type UnknownRendererError struct {
	Name       string
	Registered []string
	Degraded   []string
}

func (e *UnknownRendererError) Error() string {
	degraded := make(map[string]bool, len(e.Degraded))
	for _, name := range e.Degraded {
		degraded[name] = true
	}
	names := make([]string, 0, len(e.Registered))
	legend := ""
	for _, name := range e.Registered {
		if degraded[name] {
			name = "*" + name
			legend = " (starred are missing third-party libraries)"
		}
		names = append(names, name)
	}
	return fmt.Sprintf("render: unknown renderer %q, possible renderers%s: %s",
		e.Name, legend, strings.Join(names, ", "))
}

// DuplicateMediaTypeError reports two template pages resolving to the same
// media type. It is fatal at load time.
type DuplicateMediaTypeError struct {
	MediaType string
}

func (e *DuplicateMediaTypeError) Error() string {
	return fmt.Sprintf("render: two content pages defined for %s", e.MediaType)
}

// MediaTypeNotSupportedError reports a render call for a media type the
// resource does not declare. Negotiation must happen before dispatch, so this
// is a caller-side bug.
type MediaTypeNotSupportedError struct {
	MediaType string
	Available []string
}

func (e *MediaTypeNotSupportedError) Error() string {
	return fmt.Sprintf("render: media type %s not supported, available: %s",
		e.MediaType, strings.Join(e.Available, ", "))
}
