package pages

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	rendererNameRe = regexp.MustCompile(`^[a-z0-9.\-_]+$`)
	mediaTypeRe    = regexp.MustCompile(`^[A-Za-z0-9.+*-]+/[A-Za-z0-9.+*-]+$`)
)

// Specline is a page header parsed into its two clauses.
type Specline struct {
	MediaType    string
	RendererName string
}

// SyntaxError reports a malformed specline. It is fatal at load time.
type SyntaxError struct {
	Specline string
	Detail   string
	Pattern  string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("pages: %s in specline %q", e.Detail, e.Specline)
	if e.Pattern != "" {
		msg += fmt.Sprintf(": must match %s", e.Pattern)
	}
	return msg
}

// ParseSpecline parses a page header of the form `[mediaType] [via rendererName]`
// where either clause may be absent. An absent media type falls back to
// defaultMediaType (typically derived from the resource's file extension); an
// absent renderer name falls back to the default registered for the resolved
// media type in renderersByMediaType. Both resolved values are validated
// against their token patterns.
func ParseSpecline(header, defaultMediaType string, renderersByMediaType map[string]string) (Specline, error) {
	spec, err := splitSpecline(header)
	if err != nil {
		return Specline{}, err
	}

	if spec.MediaType == "" {
		spec.MediaType = defaultMediaType
	}
	if spec.RendererName == "" {
		name, ok := renderersByMediaType[spec.MediaType]
		if !ok {
			return Specline{}, fmt.Errorf("pages: no default renderer registered for media type %q (specline %q)", spec.MediaType, header)
		}
		spec.RendererName = name
	}

	if !mediaTypeRe.MatchString(spec.MediaType) {
		return Specline{}, &SyntaxError{
			Specline: header,
			Detail:   fmt.Sprintf("malformed media type %q", spec.MediaType),
			Pattern:  mediaTypeRe.String(),
		}
	}
	if !rendererNameRe.MatchString(spec.RendererName) {
		return Specline{}, &SyntaxError{
			Specline: header,
			Detail:   fmt.Sprintf("malformed renderer %q", spec.RendererName),
			Pattern:  rendererNameRe.String(),
		}
	}

	return spec, nil
}

func splitSpecline(header string) (Specline, error) {
	fields := strings.Fields(header)
	switch {
	case len(fields) == 0:
		return Specline{}, nil
	case len(fields) == 1 && fields[0] != "via":
		return Specline{MediaType: fields[0]}, nil
	case len(fields) == 2 && fields[0] == "via":
		return Specline{RendererName: fields[1]}, nil
	case len(fields) == 3 && fields[1] == "via":
		return Specline{MediaType: fields[0], RendererName: fields[2]}, nil
	}
	return Specline{}, &SyntaxError{
		Specline: header,
		Detail:   "expected `media_type via renderer` with both clauses optional",
	}
}
