// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultConfidenceScore is reported on every artifact. Providers do not
// return a quality signal, so the value is a fixed placeholder.
const DefaultConfidenceScore = 0.88

// DesignArtifact is one successfully generated styled image. It is created
// only when a provider call succeeds and lives in memory until restart.
type DesignArtifact struct {
	ID              uuid.UUID     `json:"design_id"`
	Style           DesignStyle   `json:"style"`
	ImageURL        string        `json:"image_url"` // remote URL or data: URI
	ProcessingTime  time.Duration `json:"-"`
	ConfidenceScore float64       `json:"confidence_score"`
	Liked           bool          `json:"liked"`
}

// MarshalJSON renders processing_time in seconds, matching the public API.
func (a DesignArtifact) MarshalJSON() ([]byte, error) {
	type alias DesignArtifact
	return json.Marshal(struct {
		alias
		ProcessingTime float64 `json:"processing_time"`
	}{
		alias:          alias(a),
		ProcessingTime: a.ProcessingTime.Seconds(),
	})
}

// LikeRecord is the durable representation of a user liking an artifact.
// Its existence for (UserID, DesignID) is the source of truth for "liked".
type LikeRecord struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	DesignID  uuid.UUID   `json:"design_id"`
	Style     DesignStyle `json:"style"`
	ImageURL  string      `json:"image_url"`
	CreatedAt time.Time   `json:"created_at"`
}
