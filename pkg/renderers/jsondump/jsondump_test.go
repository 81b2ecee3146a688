package jsondump_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-simplate/pkg/renderers/jsondump"
)

func TestRender_PrettyPrintsWithSortedKeys(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{'b': 2, 'a': 1}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "{\n    \"a\": 1,\n    \"b\": 2\n}"
	if string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_SingleKey(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{'a': 1}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if want := "{\n    \"a\": 1\n}"; string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_UsesCallEnvironment(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{"greeting": ctx["greeting"]}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), map[string]any{"greeting": "program!"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if want := "{\n    \"greeting\": \"program!\"\n}"; string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_EncodesTimeValues(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{"created": ctx["created"]}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	created := time.Date(2011, 5, 9, 0, 0, 0, 0, time.UTC)
	got, err := renderer.Render(context.Background(), map[string]any{"created": created})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if want := "{\n    \"created\": \"2011-05-09T00:00:00Z\"\n}"; string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_EscapesNonASCII(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{"unit": ctx["unit"]}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), map[string]any{"unit": "\u00b5"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if want := "{\n    \"unit\": \"\\u00b5\"\n}"; string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_EscapesAstralRunesAsSurrogatePairs(t *testing.T) {
	renderer, err := jsondump.NewFactory()("foo.json.spt", `{"face": ctx["face"]}`, "application/json", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), map[string]any{"face": "\U0001F600"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if want := "{\n    \"face\": \"\\ud83d\\ude00\"\n}"; string(got) != want {
		t.Fatalf("body mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRender_BadExpressionFailsAtLoadTime(t *testing.T) {
	_, err := jsondump.NewFactory()("foo.json.spt", `][`, "application/json", 0)
	if err == nil {
		t.Fatal("expected a compile error from the factory")
	}
}
