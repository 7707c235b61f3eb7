// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package redesign

import (
	"errors"

	"interiorai/internal/imaging"
)

var (
	// ErrInvalidPreferences matches every *ValidationError.
	ErrInvalidPreferences = errors.New("redesign: invalid preferences")

	// ErrImageDecode is returned when the uploaded photo is unreadable.
	ErrImageDecode = imaging.ErrDecode

	// ErrEmptyResult means every requested style failed to render.
	ErrEmptyResult = errors.New("redesign: no designs generated")

	// ErrArtifactNotFound is returned for unknown or expired design ids,
	// including every id issued before a restart.
	ErrArtifactNotFound = errors.New("redesign: design not found")
)

// ValidationError describes why a generation request was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "redesign: invalid preferences: " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPreferences
}
