package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	simplate "github.com/goliatone/go-simplate"
)

func main() {
	source := flag.String("source", "", "simplate file to render")
	mediaType := flag.String("media-type", "", "media type to render (first declared type if empty)")
	defaultType := flag.String("default-media-type", "text/plain", "media type for pages without a specline")
	output := flag.String("output", "", "output file (stdout if empty)")
	var bindings contextFlag
	flag.Var(&bindings, "context", "caller context binding as key=value (repeatable)")
	flag.Parse()

	if *source == "" {
		log.Fatal("missing required -source flag")
	}

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("Failed to read source: %v", err)
	}

	ctx := context.Background()

	resource, err := simplate.New(ctx, simplate.NewDefaults(), simplate.Source{
		Path:      *source,
		Text:      string(raw),
		MediaType: *defaultType,
	})
	if err != nil {
		log.Fatalf("Failed to compile simplate: %v", err)
	}

	target := *mediaType
	if target == "" {
		types := resource.AvailableTypes()
		if len(types) == 0 {
			log.Fatal("simplate declares no media types")
		}
		target = types[0]
	}

	result, err := resource.Render(ctx, target, bindings.toMap())
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Body(), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered %s to %s\n", result.MediaType, *output)
	} else {
		fmt.Println(string(result.Body()))
	}
}

type contextFlag []string

func (f *contextFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *contextFlag) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*f = append(*f, value)
	return nil
}

func (f contextFlag) toMap() map[string]any {
	out := make(map[string]any, len(f))
	for _, pair := range f {
		key, value, _ := strings.Cut(pair, "=")
		out[key] = value
	}
	return out
}
