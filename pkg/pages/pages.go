package pages

import (
	"regexp"
	"strings"
)

// Page is one ordered slice of a multi-page source file. Header carries the
// specline text found after the boundary marker (empty for the first page and
// for logic pages); Content is the delimiter-free page body; LineOffset is the
// 0-based line at which Content begins in the original source.
type Page struct {
	Header     string
	Content    string
	LineOffset int
}

// PaddedContent returns Content prefixed with LineOffset blank lines so that
// compiled code reports positions relative to the original file.
func (p Page) PaddedContent() string {
	if p.LineOffset == 0 {
		return p.Content
	}
	return strings.Repeat("\n", p.LineOffset) + p.Content
}

var (
	boundaryRe = regexp.MustCompile(`^\[-{3,}\](.*)$`)

	// A content line that would otherwise read as a boundary can be escaped
	// with a leading backslash; exactly one backslash is stripped.
	escapedBoundaryRe = regexp.MustCompile(`^\\(\\*\[-{3,}\].*)$`)
)

// Split cuts raw source text into ordered pages. A boundary line is `[` plus
// three or more dashes plus `]`, optionally followed by specline text that
// becomes the next page's Header. Text before the first boundary is always the
// first page, headerless and possibly empty. Authors needing a literal
// boundary-looking line inside content can either choose a longer dash run for
// their real delimiters or prefix the literal line with a backslash.
func Split(raw string) []Page {
	lines := strings.Split(raw, "\n")

	var (
		result  []Page
		current = Page{}
		buf     []string
	)
	flush := func() {
		current.Content = strings.Join(buf, "\n")
		result = append(result, current)
		buf = buf[:0]
	}

	for i, line := range lines {
		if m := boundaryRe.FindStringSubmatch(line); m != nil {
			flush()
			current = Page{Header: strings.TrimSpace(m[1]), LineOffset: i + 1}
			continue
		}
		if m := escapedBoundaryRe.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		buf = append(buf, line)
	}
	flush()

	return result
}

// Normalize resolves how many leading pages are logic pages. The result always
// holds a run-once page at index 0 and a run-every page at index 1, synthesized
// empty when the source omitted them, followed by the template pages:
//
//	1 page   -> [empty, empty, page]            pure template
//	2 pages  -> [empty, pages[0], pages[1]]     run-every plus one template
//	>2 pages -> unchanged, unless pages[1] has a header. A header means the
//	            second page is a template (only template pages carry
//	            speclines), so the author omitted the run-once page and an
//	            empty one is prepended.
func Normalize(split []Page) []Page {
	blank := []Page{{}}
	switch {
	case len(split) == 1:
		return append(append(blank, Page{}), split...)
	case len(split) == 2:
		return append(blank, split...)
	case split[1].Header != "":
		return append(blank, split...)
	}
	return split
}
