// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// huggingFaceProvider implements ImageGenerator using the Hugging Face
// Inference API (POST /models/{model}).
type huggingFaceProvider struct {
	config ProviderConfig
	client *http.Client
}

func newHuggingFace(cfg ProviderConfig) *huggingFaceProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Model == "" {
		cfg.Model = "runwayml/stable-diffusion-v1-5"
	}
	return &huggingFaceProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.timeout()},
	}
}

func (p *huggingFaceProvider) Name() string     { return "huggingface" }
func (p *huggingFaceProvider) Configured() bool { return p.config.APIKey != "" }

func (p *huggingFaceProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if !p.Configured() {
		return nil, missingCredential(p.Name(), "HUGGINGFACE_API_KEY")
	}

	width, height := req.size()
	payload, err := json.Marshal(huggingFaceRequest{
		Inputs: req.Prompt,
		Parameters: huggingFaceParameters{
			NegativePrompt: req.negativePrompt(),
			Width:          width,
			Height:         height,
		},
	})
	if err != nil {
		return nil, transportError(p.Name(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/models/"+p.config.Model, bytes.NewReader(payload))
	if err != nil {
		return nil, transportError(p.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	img, err := doImageRequest(p.client, p.Name(), httpReq)

	// The hosted model is unloaded when idle; the first call after that
	// answers 503 while it warms up.
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Status == http.StatusServiceUnavailable {
		slog.Warn("huggingface model loading, retry later", "model", p.config.Model)
	}
	return img, err
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	NegativePrompt string `json:"negative_prompt"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}
