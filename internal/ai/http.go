// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"io"
	"net/http"
	"strings"
)

const (
	// minImageBytes is the size floor below which a 2xx response without
	// an image content type is treated as an error page.
	minImageBytes = 1000

	// maxImageBytes caps how much of a provider response is read.
	maxImageBytes = 32 << 20

	// bodyExcerptLen limits how much of an error body is logged.
	bodyExcerptLen = 200
)

// doImageRequest executes req and interprets the response as raw image
// bytes. Shared by the providers that speak plain HTTP.
func doImageRequest(client *http.Client, provider string, req *http.Request) (*Image, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, transportError(provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{
			Provider: provider,
			Reason:   ReasonHTTPStatus,
			Status:   resp.StatusCode,
			Body:     excerpt(body),
		}
	}

	if len(body) == 0 {
		return nil, &ProviderError{Provider: provider, Reason: ReasonEmptyResponse, Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	isImage := strings.HasPrefix(strings.ToLower(contentType), "image/")
	if !isImage && len(body) < minImageBytes {
		return nil, &ProviderError{
			Provider: provider,
			Reason:   ReasonNotImage,
			Status:   resp.StatusCode,
			Body:     excerpt(body),
		}
	}

	if !isImage {
		contentType = http.DetectContentType(body)
	}
	return &Image{Data: body, ContentType: contentType}, nil
}

// excerpt returns at most bodyExcerptLen bytes of b as a string.
func excerpt(b []byte) string {
	if len(b) > bodyExcerptLen {
		b = b[:bodyExcerptLen]
	}
	return string(b)
}
