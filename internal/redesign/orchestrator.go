// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package redesign implements the "redesign my room" pipeline: validating
// preferences, composing one prompt per style, calling the configured
// image provider for each style in turn, and registering the results so
// users can like them.
package redesign

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"interiorai/internal/ai"
	"interiorai/internal/imaging"
	"interiorai/internal/models"
)

// DefaultPacing is the pause between consecutive provider calls.
const DefaultPacing = time.Second

// Generator runs the per-style generation loop against one provider.
// Styles are rendered strictly one after another; parallel calls would
// defeat the pacing and trip provider rate limits.
type Generator struct {
	provider ai.ImageGenerator
	registry *Registry
	pacing   time.Duration
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithPacing overrides the pause between provider calls.
func WithPacing(d time.Duration) Option {
	return func(g *Generator) { g.pacing = d }
}

// NewGenerator creates a Generator that renders with provider and records
// successes in registry.
func NewGenerator(provider ai.ImageGenerator, registry *Registry, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		registry: registry,
		pacing:   DefaultPacing,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProviderName returns the name of the provider in use.
func (g *Generator) ProviderName() string {
	return g.provider.Name()
}

// Generate renders every style in req and returns the artifacts that
// succeeded, in request order. A failed style is logged and skipped.
// ErrEmptyResult is returned when no style succeeds. If ctx is cancelled
// the loop stops between styles and the artifacts it registered are
// withdrawn.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) ([]models.DesignArtifact, error) {
	photo := imaging.Normalize(req.Photo)
	size := photo.Bounds().Size()

	slog.Info("generating designs",
		"provider", g.provider.Name(),
		"room", req.RoomType,
		"styles", len(req.Styles),
		"width", size.X,
		"height", size.Y,
		"keep_furniture", req.KeepFurniture,
		"budget", req.BudgetLevel,
	)

	var designs []models.DesignArtifact
	for i, style := range req.Styles {
		if err := ctx.Err(); err != nil {
			return nil, g.abandon(designs, err)
		}

		artifact, err := g.generateOne(ctx, req, style, size.X, size.Y)
		if err != nil {
			logFailure(style, err)
		} else {
			designs = append(designs, artifact)
			g.registry.Put(artifact)
			slog.Info("style generated",
				"style", style,
				"design_id", artifact.ID,
				"duration", artifact.ProcessingTime.String(),
			)
		}

		if i < len(req.Styles)-1 {
			if err := pause(ctx, g.pacing); err != nil {
				return nil, g.abandon(designs, err)
			}
		}
	}

	if len(designs) == 0 {
		return nil, ErrEmptyResult
	}
	return designs, nil
}

// generateOne performs a single provider call for style.
func (g *Generator) generateOne(ctx context.Context, req GenerationRequest, style models.DesignStyle, width, height int) (models.DesignArtifact, error) {
	prompt := ComposePrompt(req.RoomType, style, req.ColorHints)
	slog.Debug("calling image provider", "style", style, "prompt_length", len(prompt))

	start := g.now()
	img, err := g.provider.GenerateImage(ctx, ai.ImageRequest{
		Prompt:         prompt,
		NegativePrompt: ai.DefaultNegativePrompt,
		Width:          width,
		Height:         height,
	})
	if err != nil {
		return models.DesignArtifact{}, err
	}

	imageURL := img.URL
	if imageURL == "" {
		if len(img.Data) == 0 {
			return models.DesignArtifact{}, &ai.ProviderError{Provider: g.provider.Name(), Reason: ai.ReasonEmptyResponse}
		}
		imageURL = DataURI(img.ContentType, img.Data)
	}

	return models.DesignArtifact{
		ID:              uuid.New(),
		Style:           style,
		ImageURL:        imageURL,
		ProcessingTime:  g.now().Sub(start),
		ConfidenceScore: models.DefaultConfidenceScore,
	}, nil
}

// abandon withdraws the artifacts of a cancelled batch; their ids were
// never returned to anyone.
func (g *Generator) abandon(designs []models.DesignArtifact, cause error) error {
	for _, d := range designs {
		g.registry.Remove(d.ID)
	}
	slog.Warn("generation cancelled", "discarded", len(designs), "error", cause)
	return fmt.Errorf("redesign: generation cancelled: %w", cause)
}

// pause blocks for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func logFailure(style models.DesignStyle, err error) {
	var perr *ai.ProviderError
	if errors.As(err, &perr) {
		slog.Warn("style generation failed",
			"style", style,
			"provider", perr.Provider,
			"reason", perr.Reason,
			"status", perr.Status,
			"body", perr.Body,
			"error", perr.Err,
		)
		return
	}
	slog.Warn("style generation failed", "style", style, "error", err)
}

// DataURI encodes image bytes as a self-contained data: URI. Content types
// that are not image/* are sniffed, falling back to image/png.
func DataURI(contentType string, data []byte) string {
	contentType = imageContentType(contentType, data)
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func imageContentType(contentType string, data []byte) string {
	ct, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), ";")
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return "image/png"
}
