package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-genui/internal/prompt"
	"github.com/goliatone/go-genui/internal/samples"
	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/orchestrator"
	"github.com/goliatone/go-genui/pkg/render"
	"github.com/goliatone/go-genui/pkg/renderers/terminal"
	"github.com/goliatone/go-genui/pkg/renderers/vanilla"
	"github.com/goliatone/go-genui/pkg/validation"
)

func main() {
	input := flag.String("input", "", "descriptor document (JSON or YAML); prompts for a bundled sample if empty")
	sample := flag.String("sample", "", "bundled sample to render (dashboard, orders, shop)")
	rendererName := flag.String("renderer", "vanilla", "renderer to use (vanilla or terminal)")
	output := flag.String("output", "", "output file (stdout if empty)")
	document := flag.Bool("document", false, "wrap HTML output in a full page")
	title := flag.String("title", "", "page title in document mode")
	strict := flag.Bool("strict", false, "skip widgets whose props fail schema validation")
	staticPrefix := flag.String("static-prefix", "", "URL path image filenames resolve under")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	descriptors, err := loadDescriptors(ctx, *input, *sample, rendererName, document)
	if err != nil {
		log.Fatalf("Failed to load descriptors: %v", err)
	}

	registry, err := buildRegistry(logger, *strict)
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(logger),
	)
	out, err := gen.Generate(ctx, orchestrator.Request{
		Descriptors: descriptors,
		Renderer:    *rendererName,
		RenderOptions: render.RenderOptions{
			Document:     *document,
			Title:        *title,
			StaticPrefix: *staticPrefix,
		},
	})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := writeOutput(os.Stdout, *output, out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

// writeOutput writes out to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, out []byte) error {
	if path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("Output written to %s\n", path)
		return nil
	}
	_, err := stdout.Write(out)
	return err
}

func loadDescriptors(ctx context.Context, input, sample string, rendererName *string, document *bool) ([]descriptor.Descriptor, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return descriptor.Parse(data)
	}
	if sample != "" {
		doc, err := samples.Get(sample)
		if err != nil {
			return nil, err
		}
		return doc.Descriptors, nil
	}

	docs, err := samples.All()
	if err != nil {
		return nil, err
	}
	choice, err := prompt.Pick(ctx, prompt.NewSurveyDriver(), docs, []string{"vanilla", "terminal"})
	if err != nil {
		return nil, err
	}
	*rendererName = choice.Renderer
	*document = choice.FullPage
	return choice.Sample.Descriptors, nil
}

func buildRegistry(logger *slog.Logger, strict bool) (*render.Registry, error) {
	var validator render.Validator
	if strict {
		v, err := validation.New()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	html, err := vanilla.New(vanilla.WithLogger(logger), vanilla.WithValidator(validator))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(terminal.New(terminal.WithLogger(logger), terminal.WithValidator(validator)))
	return registry, nil
}
