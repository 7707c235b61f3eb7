// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a uniform interface over several external
// image-generation services (Pollinations, Segmind, Hugging Face, OpenAI,
// Google Imagen). Each provider implements ImageGenerator, and the Registry
// selects the active one by name once at startup.
package ai

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// DefaultTimeout bounds a single generation call. Diffusion endpoints are
// slow, so this is deliberately generous.
const DefaultTimeout = 120 * time.Second

// DefaultNegativePrompt is sent to providers that accept a negative prompt.
const DefaultNegativePrompt = "ugly, blurry, low quality, distorted"

// defaultSize is used when a request does not specify output dimensions.
const defaultSize = 768

// ImageRequest describes one styled generation attempt.
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int // 0 means provider default
	Height         int
}

// size returns the requested dimensions, falling back to a square default.
func (r ImageRequest) size() (int, int) {
	if r.Width <= 0 || r.Height <= 0 {
		return defaultSize, defaultSize
	}
	return r.Width, r.Height
}

func (r ImageRequest) negativePrompt() string {
	if r.NegativePrompt == "" {
		return DefaultNegativePrompt
	}
	return r.NegativePrompt
}

// Image is a successful provider result. Exactly one of Data or URL is set:
// providers that host their output return a stable URL, the rest return
// raw bytes with the reported content type.
type Image struct {
	Data        []byte
	ContentType string
	URL         string
}

// ImageGenerator is implemented by every provider adapter. GenerateImage
// performs at most one network request. Any failure is returned as a
// *ProviderError so callers never see provider-specific types.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)

	// Name returns the provider identifier (e.g., "pollinations").
	Name() string

	// Configured reports whether the provider has the credentials it needs.
	Configured() bool
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func (c ProviderConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// DefaultProvider needs no credentials, so the pipeline always has a
// working backend.
const DefaultProvider = "pollinations"

// Registry holds every known provider and the one selected at startup.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	providers map[string]ImageGenerator
	active    string
}

// NewRegistry builds every provider from configs and selects active.
// Providers are created even without credentials; they then fail fast
// with ReasonMissingCredential. An unknown active name falls back to
// DefaultProvider.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{providers: make(map[string]ImageGenerator), active: active}
	r.register(newPollinations(configs["pollinations"]))
	r.register(newSegmind(configs["segmind"]))
	r.register(newHuggingFace(configs["huggingface"]))
	r.register(newOpenAI(configs["openai"]))
	r.register(newImagen(configs["imagen"]))

	if _, ok := r.providers[active]; !ok {
		slog.Warn("unknown image provider, using default",
			"requested", active,
			"default", DefaultProvider,
		)
		r.active = DefaultProvider
	}
	return r
}

// Active returns the provider selected at startup.
func (r *Registry) Active() ImageGenerator {
	return r.providers[r.active]
}

// ActiveName returns the name of the selected provider.
func (r *Registry) ActiveName() string {
	return r.active
}

// Available returns the names of providers whose credentials are present,
// sorted for stable output.
func (r *Registry) Available() []string {
	var names []string
	for name, p := range r.providers {
		if p.Configured() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// register adds or replaces a provider before the registry is shared.
func (r *Registry) register(p ImageGenerator) {
	r.providers[p.Name()] = p
}

// Select changes the active provider. Only call before the registry is
// shared between goroutines.
func (r *Registry) Select(name string) bool {
	if _, ok := r.providers[name]; !ok {
		return false
	}
	r.active = name
	return true
}
