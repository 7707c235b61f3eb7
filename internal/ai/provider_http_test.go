// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Helpers ----------

// fakePNG is large enough to clear the non-image size floor.
var fakePNG = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 2048)...)

// newImageServer responds with the given status, content type and body.
func newImageServer(t *testing.T, status int, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// requireReason asserts err is a *ProviderError with the given reason.
func requireReason(t *testing.T, err error, want Reason) *ProviderError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderUnavailable))

	var perr *ProviderError
	require.True(t, errors.As(err, &perr), "expected *ProviderError, got %T", err)
	assert.Equal(t, want, perr.Reason)
	return perr
}

var testRequest = ImageRequest{Prompt: "interior design kitchen coastal style", Width: 512, Height: 768}

// =====================================================================
// Pollinations
// =====================================================================

func TestPollinations_Success(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	p := newPollinations(ProviderConfig{BaseURL: srv.URL})
	img, err := p.GenerateImage(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, fakePNG, img.Data)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Empty(t, img.URL)
	assert.Equal(t, "/prompt/"+testRequest.Prompt, gotPath)
	assert.Contains(t, gotQuery, "width=512")
	assert.Contains(t, gotQuery, "height=768")
	assert.Contains(t, gotQuery, "nologo=true")
	assert.Equal(t, browserUserAgent, gotUA)
}

func TestPollinations_DefaultSize(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	p := newPollinations(ProviderConfig{BaseURL: srv.URL})
	_, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "width=768")
	assert.Contains(t, gotQuery, "height=768")
}

func TestPollinations_AlwaysConfigured(t *testing.T) {
	assert.True(t, newPollinations(ProviderConfig{}).Configured())
}

// =====================================================================
// Shared response interpretation
// =====================================================================

func TestResponseInterpretation(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := newImageServer(t, http.StatusBadGateway, "text/html", []byte("<h1>bad gateway</h1>"))
		p := newPollinations(ProviderConfig{BaseURL: srv.URL})

		_, err := p.GenerateImage(context.Background(), testRequest)

		perr := requireReason(t, err, ReasonHTTPStatus)
		assert.Equal(t, http.StatusBadGateway, perr.Status)
		assert.Contains(t, perr.Body, "bad gateway")
	})

	t.Run("small non-image 200 is rejected", func(t *testing.T) {
		srv := newImageServer(t, http.StatusOK, "text/html", []byte("<html>rate limited</html>"))
		p := newPollinations(ProviderConfig{BaseURL: srv.URL})

		_, err := p.GenerateImage(context.Background(), testRequest)

		requireReason(t, err, ReasonNotImage)
	})

	t.Run("large body without image content type is accepted", func(t *testing.T) {
		srv := newImageServer(t, http.StatusOK, "application/octet-stream", fakePNG)
		p := newPollinations(ProviderConfig{BaseURL: srv.URL})

		img, err := p.GenerateImage(context.Background(), testRequest)

		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("empty image body", func(t *testing.T) {
		srv := newImageServer(t, http.StatusOK, "image/png", nil)
		p := newPollinations(ProviderConfig{BaseURL: srv.URL})

		_, err := p.GenerateImage(context.Background(), testRequest)

		requireReason(t, err, ReasonEmptyResponse)
	})

	t.Run("error body excerpt is truncated", func(t *testing.T) {
		srv := newImageServer(t, http.StatusInternalServerError, "text/plain", []byte(strings.Repeat("e", 5000)))
		p := newPollinations(ProviderConfig{BaseURL: srv.URL})

		_, err := p.GenerateImage(context.Background(), testRequest)

		perr := requireReason(t, err, ReasonHTTPStatus)
		assert.Len(t, perr.Body, bodyExcerptLen)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		p := newPollinations(ProviderConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

		_, err := p.GenerateImage(context.Background(), testRequest)

		requireReason(t, err, ReasonTimeout)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		p := newPollinations(ProviderConfig{BaseURL: url})

		_, err := p.GenerateImage(context.Background(), testRequest)

		requireReason(t, err, ReasonTransport)
	})
}

// =====================================================================
// Segmind
// =====================================================================

func TestSegmind_MissingKeyMakesNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := newSegmind(ProviderConfig{BaseURL: srv.URL})
	_, err := p.GenerateImage(context.Background(), testRequest)

	requireReason(t, err, ReasonMissingCredential)
	assert.False(t, called, "no request should be sent without a key")
	assert.False(t, p.Configured())
}

func TestSegmind_SendsJSONBody(t *testing.T) {
	var gotKey, gotPath string
	var body segmindRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	p := newSegmind(ProviderConfig{APIKey: "sg-key", BaseURL: srv.URL})
	img, err := p.GenerateImage(context.Background(), testRequest)

	require.NoError(t, err)
	assert.NotEmpty(t, img.Data)
	assert.Equal(t, "sg-key", gotKey)
	assert.Equal(t, "/sd1.5-txt2img", gotPath)
	assert.Equal(t, testRequest.Prompt, body.Prompt)
	assert.Equal(t, DefaultNegativePrompt, body.NegativePrompt)
	assert.Equal(t, 1, body.Samples)
	assert.Equal(t, 20, body.Steps)
	assert.Equal(t, 512, body.Width)
	assert.Equal(t, 768, body.Height)
}

// =====================================================================
// Hugging Face
// =====================================================================

func TestHuggingFace_SendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	var body huggingFaceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	p := newHuggingFace(ProviderConfig{APIKey: "hf_123", BaseURL: srv.URL})
	_, err := p.GenerateImage(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, "Bearer hf_123", gotAuth)
	assert.Equal(t, "/models/runwayml/stable-diffusion-v1-5", gotPath)
	assert.Equal(t, testRequest.Prompt, body.Inputs)
	assert.Equal(t, DefaultNegativePrompt, body.Parameters.NegativePrompt)
}

func TestHuggingFace_ModelLoading(t *testing.T) {
	srv := newImageServer(t, http.StatusServiceUnavailable, "application/json", []byte(`{"error":"Model is currently loading"}`))

	p := newHuggingFace(ProviderConfig{APIKey: "hf_123", BaseURL: srv.URL})
	_, err := p.GenerateImage(context.Background(), testRequest)

	perr := requireReason(t, err, ReasonHTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, perr.Status)
}

func TestHuggingFace_MissingKey(t *testing.T) {
	_, err := newHuggingFace(ProviderConfig{}).GenerateImage(context.Background(), testRequest)
	requireReason(t, err, ReasonMissingCredential)
}

// =====================================================================
// OpenAI
// =====================================================================

func TestOpenAI_ReturnsHostedURL(t *testing.T) {
	var gotAuth, gotPath string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 1700000000, "data": [{"url": "https://cdn.example.com/room.png"}]}`))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	img, err := p.GenerateImage(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/room.png", img.URL)
	assert.Nil(t, img.Data)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/images/generations", gotPath)
	assert.Equal(t, "dall-e-3", body["model"])
	assert.Equal(t, "1024x1792", body["size"])
	assert.Equal(t, "url", body["response_format"])
}

func TestOpenAI_HTTPError(t *testing.T) {
	srv := newImageServer(t, http.StatusBadRequest, "application/json",
		[]byte(`{"error": {"message": "content policy violation", "type": "invalid_request_error"}}`))

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	_, err := p.GenerateImage(context.Background(), testRequest)

	perr := requireReason(t, err, ReasonHTTPStatus)
	assert.Equal(t, http.StatusBadRequest, perr.Status)
}

func TestOpenAI_EmptyData(t *testing.T) {
	srv := newImageServer(t, http.StatusOK, "application/json", []byte(`{"created": 1, "data": []}`))

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	_, err := p.GenerateImage(context.Background(), testRequest)

	requireReason(t, err, ReasonEmptyResponse)
}

func TestOpenAISize(t *testing.T) {
	assert.EqualValues(t, "1792x1024", openAISize(768, 512))
	assert.EqualValues(t, "1024x1792", openAISize(512, 768))
	assert.EqualValues(t, "1024x1024", openAISize(768, 768))
}

// =====================================================================
// Imagen
// =====================================================================

func TestImagen_MissingKey(t *testing.T) {
	_, err := newImagen(ProviderConfig{}).GenerateImage(context.Background(), testRequest)
	requireReason(t, err, ReasonMissingCredential)
}

func TestImagen_Success(t *testing.T) {
	var gotPath, gotKey string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]any{{
				"bytesBase64Encoded": base64.StdEncoding.EncodeToString(fakePNG),
				"mimeType":           "image/png",
			}},
		})
	}))
	defer srv.Close()

	p := newImagen(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	req := testRequest
	req.NegativePrompt = DefaultNegativePrompt
	img, err := p.GenerateImage(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, fakePNG, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Empty(t, img.URL)
	assert.True(t, strings.HasSuffix(gotPath, ":predict"), gotPath)
	assert.Equal(t, "k", gotKey)

	instances, _ := body["instances"].([]any)
	require.Len(t, instances, 1)
	prompt, _ := instances[0].(map[string]any)["prompt"].(string)
	assert.Contains(t, prompt, testRequest.Prompt)
	assert.Contains(t, prompt, "Avoid: "+DefaultNegativePrompt)

	params, _ := body["parameters"].(map[string]any)
	assert.Equal(t, "3:4", params["aspectRatio"])
	assert.NotContains(t, params, "negativePrompt")
}

func TestImagen_APIError(t *testing.T) {
	srv := newImageServer(t, http.StatusBadRequest, "application/json",
		[]byte(`{"error":{"code":400,"message":"bad prompt","status":"INVALID_ARGUMENT"}}`))

	_, err := newImagen(ProviderConfig{APIKey: "k", BaseURL: srv.URL}).GenerateImage(context.Background(), testRequest)
	perr := requireReason(t, err, ReasonHTTPStatus)
	assert.Equal(t, http.StatusBadRequest, perr.Status)
}

func TestImagenAspectRatio(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{768, 768, "1:1"},
		{768, 432, "16:9"},
		{768, 576, "4:3"},
		{432, 768, "9:16"},
		{576, 768, "3:4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, imagenAspectRatio(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}
