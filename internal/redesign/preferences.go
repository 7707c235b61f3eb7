// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package redesign

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"interiorai/internal/models"
)

const (
	// MaxStyles caps how many styles one request renders. Extra styles
	// are dropped silently.
	MaxStyles = 4

	// MaxPreferencesBytes bounds the JSON preferences payload. It is the
	// only limit on the styles list, which is otherwise capped silently.
	MaxPreferencesBytes = 16 << 10

	defaultBudgetLevel = "medium"
)

// RawPreferences is the JSON preferences object submitted with an upload.
type RawPreferences struct {
	RoomType         string   `json:"room_type" validate:"required"`
	Styles           []string `json:"styles" validate:"required,min=1"`
	ColorPreferences []string `json:"color_preferences" validate:"max=10,dive,max=40"`
	BudgetLevel      *string  `json:"budget_level" validate:"omitempty,max=40"`
	KeepFurniture    bool     `json:"keep_furniture"`
}

// Preferences is the validated, canonical form of RawPreferences.
type Preferences struct {
	RoomType      models.RoomType
	Styles        []models.DesignStyle // 1..MaxStyles, distinct, first-seen order
	ColorHints    []string
	BudgetLevel   string
	KeepFurniture bool
}

// GenerationRequest pairs validated preferences with the decoded photo.
type GenerationRequest struct {
	Photo image.Image
	Preferences
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// ParsePreferences decodes and validates a JSON preferences payload.
func ParsePreferences(data []byte) (Preferences, error) {
	if len(data) > MaxPreferencesBytes {
		return Preferences{}, &ValidationError{
			Message: fmt.Sprintf("payload exceeds %d bytes", MaxPreferencesBytes),
		}
	}

	var raw RawPreferences
	if err := json.Unmarshal(data, &raw); err != nil {
		return Preferences{}, &ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return ValidatePreferences(raw)
}

// ValidatePreferences checks raw against the closed room type and style
// sets. Unknown styles are dropped; the request fails only when none of
// the requested styles is supported.
func ValidatePreferences(raw RawPreferences) (Preferences, error) {
	if err := validate.Struct(raw); err != nil {
		return Preferences{}, structError(err)
	}

	room := models.RoomType(normalizeToken(raw.RoomType))
	if !room.Valid() {
		return Preferences{}, &ValidationError{
			Field:   "room_type",
			Message: fmt.Sprintf("room type %q is not supported", raw.RoomType),
		}
	}

	styles := make([]models.DesignStyle, 0, MaxStyles)
	seen := make(map[models.DesignStyle]bool, len(raw.Styles))
	for _, s := range raw.Styles {
		style := models.DesignStyle(normalizeToken(s))
		if !style.Valid() {
			slog.Debug("ignoring unknown style", "style", s)
			continue
		}
		if seen[style] {
			continue
		}
		seen[style] = true
		styles = append(styles, style)
		if len(styles) == MaxStyles {
			break
		}
	}
	if len(styles) == 0 {
		return Preferences{}, &ValidationError{
			Field:   "styles",
			Message: "none of the requested styles is supported",
		}
	}

	budget := defaultBudgetLevel
	if raw.BudgetLevel != nil && strings.TrimSpace(*raw.BudgetLevel) != "" {
		budget = strings.TrimSpace(*raw.BudgetLevel)
	}

	return Preferences{
		RoomType:      room,
		Styles:        styles,
		ColorHints:    cleanHints(raw.ColorPreferences),
		BudgetLevel:   budget,
		KeepFurniture: raw.KeepFurniture,
	}, nil
}

// structError converts the first validator failure into a ValidationError.
func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min":
		msg = field + " must not be empty"
	case "max":
		msg = fmt.Sprintf("%s is too long (max %s)", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
	return &ValidationError{Field: field, Message: msg}
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cleanHints trims color hints, drops blanks, and flattens line breaks so
// the composed prompt stays on one line.
func cleanHints(hints []string) []string {
	var out []string
	for _, h := range hints {
		h = strings.Join(strings.Fields(h), " ")
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
