// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the redesign API.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"interiorai/internal/imaging"
	"interiorai/internal/middleware"
	"interiorai/internal/models"
	"interiorai/internal/redesign"
)

// Client-facing messages.
const (
	msgNoImage          = "No image file provided"
	msgNoPreferences    = "No preferences provided"
	msgGenerateFailed   = "Could not generate designs. The API may be unavailable. Please try again later."
	msgGenerateSuggest  = "Try a different image or check your internet connection."
	msgDesignNotFound   = "Design not found or app was restarted."
	msgLikeFailed       = "Could not update the design. Please try again."
	msgSavedFailed      = "Could not load saved designs."
	msgRequestCancelled = "Request cancelled."
)

const (
	// multipartMemory is how much of a multipart body is held in memory
	// before spilling to temporary files.
	multipartMemory = 8 << 20

	// formOverhead leaves room for the preferences field and multipart
	// framing on top of the image limit.
	formOverhead = 64 << 10
)

// Redesign handles the generation and like endpoints.
type Redesign struct {
	generator      *redesign.Generator
	likes          *redesign.Likes
	maxUploadBytes int64
}

// NewRedesign creates the redesign handler group.
func NewRedesign(generator *redesign.Generator, likes *redesign.Likes, maxUploadBytes int64) *Redesign {
	return &Redesign{
		generator:      generator,
		likes:          likes,
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate accepts a multipart upload with an "image" file and a JSON
// "preferences" field and returns one design per rendered style.
func (h *Redesign) Generate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Invalid image file: upload exceeds %d MB", h.maxUploadBytes>>20))
			return
		}
		writeError(w, http.StatusBadRequest, msgNoImage)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgNoImage)
		return
	}
	defer file.Close()

	rawPrefs := strings.TrimSpace(r.FormValue("preferences"))
	if rawPrefs == "" {
		writeError(w, http.StatusBadRequest, msgNoPreferences)
		return
	}

	prefs, err := redesign.ParsePreferences([]byte(rawPrefs))
	if err != nil {
		var verr *redesign.ValidationError
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		writeError(w, http.StatusBadRequest, "Invalid preferences: "+msg)
		return
	}

	photo, format, err := imaging.Decode(file)
	if err != nil {
		slog.Info("rejected upload", "filename", header.Filename, "size", header.Size, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid image file: "+strings.TrimPrefix(err.Error(), "imaging: "))
		return
	}

	slog.Info("generation requested",
		"user_id", sess.UserID,
		"request_id", chimw.GetReqID(r.Context()),
		"format", format,
		"width", photo.Bounds().Dx(),
		"height", photo.Bounds().Dy(),
		"room", prefs.RoomType,
		"styles", len(prefs.Styles),
	)

	designs, err := h.generator.Generate(r.Context(), redesign.GenerationRequest{
		Photo:       photo,
		Preferences: prefs,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, designs)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Info("generation abandoned by client", "user_id", sess.UserID, "error", err)
		writeError(w, http.StatusServiceUnavailable, msgRequestCancelled)
	default:
		slog.Error("generation failed", "user_id", sess.UserID, "provider", h.generator.ProviderName(), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Detail:     msgGenerateFailed,
			Suggestion: msgGenerateSuggest,
		})
	}
}

// Like toggles the caller's like on a generated design.
func (h *Redesign) Like(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	designID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgDesignNotFound)
		return
	}

	result, err := h.likes.Toggle(r.Context(), sess.UserID, designID)
	if errors.Is(err, redesign.ErrArtifactNotFound) {
		writeError(w, http.StatusNotFound, msgDesignNotFound)
		return
	}
	if err != nil {
		slog.Error("like toggle failed", "user_id", sess.UserID, "design_id", designID, "error", err)
		writeError(w, http.StatusInternalServerError, msgLikeFailed)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Saved lists the caller's liked designs, newest first.
func (h *Redesign) Saved(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	records, err := h.likes.Saved(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("list saved designs failed", "user_id", sess.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, msgSavedFailed)
		return
	}
	if records == nil {
		records = []models.LikeRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
