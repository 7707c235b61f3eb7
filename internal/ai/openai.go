// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIProvider implements ImageGenerator using the OpenAI Images API.
// OpenAI hosts its output, so successful results carry a URL that is
// passed through to the caller unchanged.
type openAIProvider struct {
	config ProviderConfig
	client openai.Client
}

func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.Model == "" {
		cfg.Model = string(openai.ImageModelDallE3)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.timeout()),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIProvider{
		config: cfg,
		client: openai.NewClient(opts...),
	}
}

func (p *openAIProvider) Name() string     { return "openai" }
func (p *openAIProvider) Configured() bool { return p.config.APIKey != "" }

func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if !p.Configured() {
		return nil, missingCredential(p.Name(), "OPENAI_API_KEY")
	}

	width, height := req.size()
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:          openai.ImageModel(p.config.Model),
		Prompt:         req.Prompt,
		N:              openai.Int(1),
		Size:           openAISize(width, height),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{
				Provider: p.Name(),
				Reason:   ReasonHTTPStatus,
				Status:   apiErr.StatusCode,
				Body:     excerpt([]byte(apiErr.Message)),
				Err:      err,
			}
		}
		return nil, transportError(p.Name(), err)
	}

	if len(resp.Data) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Reason: ReasonEmptyResponse}
	}

	img := resp.Data[0]
	if img.URL != "" {
		return &Image{URL: img.URL}, nil
	}
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, &ProviderError{
				Provider: p.Name(),
				Reason:   ReasonNotImage,
				Err:      fmt.Errorf("decode base64: %w", err),
			}
		}
		return &Image{Data: data, ContentType: "image/png"}, nil
	}
	return nil, &ProviderError{Provider: p.Name(), Reason: ReasonEmptyResponse}
}

// openAISize maps the requested aspect ratio onto the sizes DALL-E 3 accepts.
func openAISize(width, height int) openai.ImageGenerateParamsSize {
	switch {
	case width > height:
		return openai.ImageGenerateParamsSize1792x1024
	case height > width:
		return openai.ImageGenerateParamsSize1024x1792
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}
