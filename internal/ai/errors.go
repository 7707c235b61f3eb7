// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrProviderUnavailable matches every *ProviderError via errors.Is.
var ErrProviderUnavailable = errors.New("ai: provider unavailable")

// Reason classifies why a single generation attempt produced no image.
type Reason string

const (
	ReasonMissingCredential Reason = "missing_credential"
	ReasonTimeout           Reason = "timeout"
	ReasonHTTPStatus        Reason = "http_status"
	ReasonNotImage          Reason = "not_image"
	ReasonTransport         Reason = "transport"
	ReasonEmptyResponse     Reason = "empty_response"
)

// ProviderError is the only error type returned by ImageGenerator
// implementations.
type ProviderError struct {
	Provider string
	Reason   Reason
	Status   int    // HTTP status, when Reason is ReasonHTTPStatus
	Body     string // truncated response body, for logging
	Err      error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("ai: %s: %s", e.Provider, e.Reason)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes every ProviderError match ErrProviderUnavailable.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// transportError classifies an error returned by an HTTP client or SDK
// call that never produced a usable response.
func transportError(provider string, err error) *ProviderError {
	reason := ReasonTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		reason = ReasonTimeout
	}
	return &ProviderError{Provider: provider, Reason: reason, Err: err}
}

func missingCredential(provider, envVar string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Reason:   ReasonMissingCredential,
		Err:      fmt.Errorf("%s is not set", envVar),
	}
}
