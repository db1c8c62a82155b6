package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

// Choice is the outcome of the interactive sample flow.
type Choice struct {
	Sample   descriptor.Document
	Renderer string
	FullPage bool
}

// Pick asks which sample to render and with which renderer. The full-page
// question is only asked for the HTML renderer.
func Pick(ctx context.Context, driver Driver, docs []descriptor.Document, renderers []string) (Choice, error) {
	if driver == nil {
		return Choice{}, errors.New("prompt: driver is nil")
	}
	if len(docs) == 0 {
		return Choice{}, errors.New("prompt: no samples available")
	}
	if len(renderers) == 0 {
		return Choice{}, errors.New("prompt: no renderers available")
	}

	options := make([]string, len(docs))
	for idx, doc := range docs {
		options[idx] = fmt.Sprintf("%s (%d widgets)", doc.Name, len(doc.Descriptors))
	}
	sample, err := driver.Select(ctx, SelectConfig{
		Message: "Sample to render",
		Options: options,
	})
	if err != nil {
		return Choice{}, err
	}
	if sample < 0 || sample >= len(docs) {
		return Choice{}, fmt.Errorf("prompt: invalid sample selection %d", sample)
	}

	renderer := 0
	if len(renderers) > 1 {
		renderer, err = driver.Select(ctx, SelectConfig{
			Message: "Renderer",
			Options: renderers,
		})
		if err != nil {
			return Choice{}, err
		}
		if renderer < 0 || renderer >= len(renderers) {
			return Choice{}, fmt.Errorf("prompt: invalid renderer selection %d", renderer)
		}
	}

	choice := Choice{Sample: docs[sample], Renderer: renderers[renderer]}
	if choice.Renderer == "vanilla" {
		choice.FullPage, err = driver.Confirm(ctx, ConfirmConfig{
			Message: "Wrap the output in a full HTML page?",
			Default: true,
		})
		if err != nil {
			return Choice{}, err
		}
	}
	if err := driver.Info(ctx, fmt.Sprintf("Rendering %s with %s", choice.Sample.Path, choice.Renderer)); err != nil {
		return Choice{}, err
	}
	return choice, nil
}
