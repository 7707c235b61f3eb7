// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// browserUserAgent is sent because the public endpoint rejects some
// non-browser clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// pollinationsProvider implements ImageGenerator against the public
// Pollinations endpoint (GET /prompt/{prompt}). It needs no credentials.
type pollinationsProvider struct {
	config ProviderConfig
	client *http.Client
}

func newPollinations(cfg ProviderConfig) *pollinationsProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://image.pollinations.ai"
	}
	return &pollinationsProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.timeout()},
	}
}

func (p *pollinationsProvider) Name() string     { return "pollinations" }
func (p *pollinationsProvider) Configured() bool { return true }

// GenerateImage requests a render with the prompt embedded in the path.
func (p *pollinationsProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	prompt := strings.TrimSpace(strings.ReplaceAll(req.Prompt, "\n", " "))
	width, height := req.size()

	q := url.Values{}
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	q.Set("nologo", "true")
	q.Set("enhance", "true")

	endpoint := p.config.BaseURL + "/prompt/" + url.PathEscape(prompt) + "?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportError(p.Name(), err)
	}
	httpReq.Header.Set("User-Agent", browserUserAgent)

	return doImageRequest(p.client, p.Name(), httpReq)
}
