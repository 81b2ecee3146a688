package pages_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-simplate/pkg/pages"
)

func TestSplit_LeadingContentIsHeaderlessPage(t *testing.T) {
	got := pages.Split("Greetings, program!")

	want := []pages.Page{
		{Header: "", Content: "Greetings, program!", LineOffset: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_BoundariesAndHeaders(t *testing.T) {
	raw := "import stuff\n[---]\nfan = ctx\n[---] text/html via pongo2\n<h1>Hi</h1>\n[---] text/plain\nHi"

	got := pages.Split(raw)

	want := []pages.Page{
		{Content: "import stuff", LineOffset: 0},
		{Content: "fan = ctx", LineOffset: 2},
		{Header: "text/html via pongo2", Content: "<h1>Hi</h1>", LineOffset: 4},
		{Header: "text/plain", Content: "Hi", LineOffset: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_EmptyLeadingPage(t *testing.T) {
	got := pages.Split("[---]\n[---]\nHello, %(name)s!")

	want := []pages.Page{
		{Content: "", LineOffset: 0},
		{Content: "", LineOffset: 1},
		{Content: "Hello, %(name)s!", LineOffset: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_LongerDelimiters(t *testing.T) {
	raw := "one\n[----------] application/json\ntwo"

	got := pages.Split(raw)

	want := []pages.Page{
		{Content: "one", LineOffset: 0},
		{Header: "application/json", Content: "two", LineOffset: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_TwoDashesIsNotABoundary(t *testing.T) {
	got := pages.Split("[--]\ncontent")
	if len(got) != 1 {
		t.Fatalf("expected 1 page, got %d: %+v", len(got), got)
	}
	if got[0].Content != "[--]\ncontent" {
		t.Fatalf("unexpected content %q", got[0].Content)
	}
}

func TestSplit_EscapedBoundaryLine(t *testing.T) {
	raw := "doc\n[---]\nliteral:\n\\[---]\ndone"

	got := pages.Split(raw)

	if len(got) != 2 {
		t.Fatalf("expected 2 pages, got %d: %+v", len(got), got)
	}
	if want := "literal:\n[---]\ndone"; got[1].Content != want {
		t.Fatalf("escaped content mismatch:\nwant %q\ngot  %q", want, got[1].Content)
	}
}

func TestPaddedContent(t *testing.T) {
	page := pages.Page{Content: "x = 1", LineOffset: 3}
	if want := "\n\n\nx = 1"; page.PaddedContent() != want {
		t.Fatalf("padded content mismatch:\nwant %q\ngot  %q", want, page.PaddedContent())
	}
}

func TestNormalize(t *testing.T) {
	tpl := pages.Page{Header: "text/plain", Content: "Hi", LineOffset: 4}
	logic1 := pages.Page{Content: "a", LineOffset: 0}
	logic2 := pages.Page{Content: "b", LineOffset: 2}
	headed := pages.Page{Header: "text/html", Content: "c", LineOffset: 2}

	cases := []struct {
		name  string
		input []pages.Page
		want  []pages.Page
	}{
		{
			name:  "single page is pure template",
			input: []pages.Page{tpl},
			want:  []pages.Page{{}, {}, tpl},
		},
		{
			name:  "two pages get run-every plus template",
			input: []pages.Page{logic1, tpl},
			want:  []pages.Page{{}, logic1, tpl},
		},
		{
			name:  "second page with header is a template",
			input: []pages.Page{logic1, headed, tpl},
			want:  []pages.Page{{}, logic1, headed, tpl},
		},
		{
			name:  "second page without header is run-every",
			input: []pages.Page{logic1, logic2, tpl},
			want:  []pages.Page{logic1, logic2, tpl},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pages.Normalize(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
