package yamldump_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-simplate/pkg/renderers/yamldump"
)

func TestRender_MarshalsEvaluatedContent(t *testing.T) {
	renderer, err := yamldump.NewFactory()("foo.yaml.spt", `{'a': 1, 'b': "two"}`, "application/yaml", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := string(got)
	if !strings.Contains(body, "a: 1") || !strings.Contains(body, "b: two") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRender_UsesCallEnvironment(t *testing.T) {
	renderer, err := yamldump.NewFactory()("foo.yaml.spt", `{"names": ctx["names"]}`, "application/yaml", 0)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	got, err := renderer.Render(context.Background(), map[string]any{"names": []any{"alice", "bob"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := string(got)
	for _, want := range []string{"names:", "- alice", "- bob"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %q", want, body)
		}
	}
}
