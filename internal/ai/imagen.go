// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// imagenProvider implements ImageGenerator using Google Imagen through the
// Gemini API. The SDK client is created lazily on first use because its
// constructor validates credentials.
type imagenProvider struct {
	config ProviderConfig

	once    sync.Once
	client  *genai.Client
	initErr error
}

func newImagen(cfg ProviderConfig) *imagenProvider {
	if cfg.Model == "" {
		cfg.Model = "imagen-4.0-generate-001"
	}
	return &imagenProvider{config: cfg}
}

func (p *imagenProvider) Name() string     { return "imagen" }
func (p *imagenProvider) Configured() bool { return p.config.APIKey != "" }

func (p *imagenProvider) genaiClient(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     p.config.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: p.config.timeout()},
		}
		if p.config.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
		}
		p.client, p.initErr = genai.NewClient(ctx, cc)
	})
	return p.client, p.initErr
}

func (p *imagenProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if !p.Configured() {
		return nil, missingCredential(p.Name(), "GEMINI_API_KEY")
	}

	client, err := p.genaiClient(ctx)
	if err != nil {
		return nil, transportError(p.Name(), err)
	}

	width, height := req.size()
	resp, err := client.Models.GenerateImages(ctx, p.config.Model, imagenPrompt(req), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    imagenAspectRatio(width, height),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{
				Provider: p.Name(),
				Reason:   ReasonHTTPStatus,
				Status:   apiErr.Code,
				Body:     excerpt([]byte(apiErr.Message)),
				Err:      err,
			}
		}
		return nil, transportError(p.Name(), err)
	}

	for _, gen := range resp.GeneratedImages {
		if gen.Image != nil && len(gen.Image.ImageBytes) > 0 {
			contentType := gen.Image.MIMEType
			if contentType == "" {
				contentType = "image/png"
			}
			return &Image{Data: gen.Image.ImageBytes, ContentType: contentType}, nil
		}
	}
	return nil, &ProviderError{Provider: p.Name(), Reason: ReasonEmptyResponse}
}

// imagenPrompt appends the negative prompt to the prompt text. The Gemini
// API backend rejects GenerateImagesConfig.NegativePrompt outright.
func imagenPrompt(req ImageRequest) string {
	return req.Prompt + ". Avoid: " + req.negativePrompt()
}

// imagenAspectRatio picks the closest ratio Imagen supports.
func imagenAspectRatio(width, height int) string {
	ratio := float64(width) / float64(height)
	switch {
	case ratio >= 1.6:
		return "16:9"
	case ratio >= 1.2:
		return "4:3"
	case ratio <= 0.625:
		return "9:16"
	case ratio <= 0.83:
		return "3:4"
	default:
		return "1:1"
	}
}
