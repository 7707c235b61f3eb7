// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// segmindProvider implements ImageGenerator using the Segmind
// text-to-image API (POST /v1/{model}).
type segmindProvider struct {
	config ProviderConfig
	client *http.Client
}

func newSegmind(cfg ProviderConfig) *segmindProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.segmind.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "sd1.5-txt2img"
	}
	return &segmindProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.timeout()},
	}
}

func (p *segmindProvider) Name() string     { return "segmind" }
func (p *segmindProvider) Configured() bool { return p.config.APIKey != "" }

func (p *segmindProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if !p.Configured() {
		return nil, missingCredential(p.Name(), "SEGMIND_API_KEY")
	}

	width, height := req.size()
	payload, err := json.Marshal(segmindRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.negativePrompt(),
		Samples:        1,
		Steps:          20,
		Width:          width,
		Height:         height,
	})
	if err != nil {
		return nil, transportError(p.Name(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/"+p.config.Model, bytes.NewReader(payload))
	if err != nil {
		return nil, transportError(p.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.config.APIKey)

	return doImageRequest(p.client, p.Name(), httpReq)
}

type segmindRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Samples        int    `json:"samples"`
	Steps          int    `json:"steps"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
