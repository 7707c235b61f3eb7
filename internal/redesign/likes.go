// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package redesign

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"interiorai/internal/models"
)

// LikeRepository persists LikeRecords. A missing record is reported as
// (nil, nil) by FindByUserAndDesign. Create is idempotent per user and
// design: when a record already exists it returns that record.
type LikeRepository interface {
	FindByUserAndDesign(ctx context.Context, userID, designID uuid.UUID) (*models.LikeRecord, error)
	Create(ctx context.Context, rec *models.LikeRecord) (*models.LikeRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LikeRecord, error)
}

// ObjectStore archives liked images so saved records hold a short URL
// instead of a multi-megabyte data URI. Satisfied by *storage.Client.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, bucket, key string) error
	FileURL(key string) string
	ExtractS3Key(rawURL string) (string, bool)
	PublicBucket() string
}

// Like statuses returned by Toggle.
const (
	StatusLiked   = "liked"
	StatusUnliked = "unliked"
)

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Status   string    `json:"status"`
	DesignID uuid.UUID `json:"design_id"`
	Liked    bool      `json:"liked"`
}

// Likes toggles the persisted like state of registered artifacts.
type Likes struct {
	registry *Registry
	repo     LikeRepository
	objects  ObjectStore // nil disables archiving
}

// NewLikes creates a like service. objects may be nil.
func NewLikes(registry *Registry, repo LikeRepository, objects ObjectStore) *Likes {
	return &Likes{registry: registry, repo: repo, objects: objects}
}

// Toggle likes the artifact for userID if it is not yet liked, otherwise
// unlikes it. Unknown ids fail with ErrArtifactNotFound before the
// datastore is touched.
func (l *Likes) Toggle(ctx context.Context, userID, designID uuid.UUID) (LikeResult, error) {
	artifact, err := l.registry.Get(designID)
	if err != nil {
		return LikeResult{}, err
	}

	existing, err := l.repo.FindByUserAndDesign(ctx, userID, designID)
	if err != nil {
		return LikeResult{}, fmt.Errorf("redesign: find like: %w", err)
	}

	if existing != nil {
		if err := l.repo.Delete(ctx, existing.ID); err != nil {
			return LikeResult{}, fmt.Errorf("redesign: delete like: %w", err)
		}
		l.removeArchive(ctx, existing.ImageURL)
		l.cacheLiked(designID, false)
		slog.Info("design unliked", "user_id", userID, "design_id", designID)
		return LikeResult{Status: StatusUnliked, DesignID: designID, Liked: false}, nil
	}

	rec := &models.LikeRecord{
		UserID:   userID,
		DesignID: designID,
		Style:    artifact.Style,
		ImageURL: l.archive(ctx, userID, artifact),
	}
	saved, err := l.repo.Create(ctx, rec)
	if err != nil {
		l.dropArchive(ctx, rec.ImageURL, artifact.ImageURL)
		return LikeResult{}, fmt.Errorf("redesign: create like: %w", err)
	}
	if saved.ImageURL != rec.ImageURL {
		// A concurrent like won and kept its own image.
		l.dropArchive(ctx, rec.ImageURL, artifact.ImageURL)
	}
	l.cacheLiked(designID, true)
	slog.Info("design liked", "user_id", userID, "design_id", designID, "style", artifact.Style)
	return LikeResult{Status: StatusLiked, DesignID: designID, Liked: true}, nil
}

// Saved returns the designs userID has liked, newest first.
func (l *Likes) Saved(ctx context.Context, userID uuid.UUID) ([]models.LikeRecord, error) {
	records, err := l.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("redesign: list likes: %w", err)
	}
	return records, nil
}

func (l *Likes) cacheLiked(id uuid.UUID, liked bool) {
	if err := l.registry.SetLiked(id, liked); err != nil {
		slog.Debug("liked flag not cached", "design_id", id, "error", err)
	}
}

// archive uploads a data-URI image to object storage and returns its
// public URL. On any failure, or when storage is disabled, the original
// image URL is kept.
func (l *Likes) archive(ctx context.Context, userID uuid.UUID, a models.DesignArtifact) string {
	if l.objects == nil {
		return a.ImageURL
	}
	contentType, data, ok := parseDataURI(a.ImageURL)
	if !ok {
		return a.ImageURL
	}

	key := fmt.Sprintf("ai-designs/%s/%s%s", userID, a.ID, extensionFor(contentType))
	err := l.objects.Upload(ctx, l.objects.PublicBucket(), key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("design archive upload failed, storing inline image", "key", key, "error", err)
		return a.ImageURL
	}
	return l.objects.FileURL(key)
}

// removeArchive deletes an archived image. Failures are only logged; the
// like record is already gone.
func (l *Likes) removeArchive(ctx context.Context, imageURL string) {
	if l.objects == nil {
		return
	}
	key, ok := l.objects.ExtractS3Key(imageURL)
	if !ok {
		return
	}
	if err := l.objects.Delete(ctx, l.objects.PublicBucket(), key); err != nil {
		slog.Warn("design archive delete failed", "key", key, "error", err)
	}
}

// dropArchive removes an object uploaded by archive when no record ended
// up referencing it.
func (l *Likes) dropArchive(ctx context.Context, archived, inline string) {
	if archived != inline {
		l.removeArchive(ctx, archived)
	}
}

// parseDataURI splits a base64 data: URI into content type and bytes.
func parseDataURI(uri string) (string, []byte, bool) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, false
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return contentType, data, true
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
