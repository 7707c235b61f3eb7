// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL repositories.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"interiorai/internal/models"
)

// LikeStore persists liked designs in the saved_ai_designs table.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore with the given database connection.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// likeColumns lists the columns selected in like queries.
const likeColumns = `id, user_id, design_id, style, image_url, created_at`

// scanLike scans a like row from the result set.
func scanLike(scanner interface{ Scan(...any) error }) (*models.LikeRecord, error) {
	var l models.LikeRecord
	var style string
	err := scanner.Scan(&l.ID, &l.UserID, &l.DesignID, &style, &l.ImageURL, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.Style = models.DesignStyle(style)
	return &l, nil
}

// Create inserts a like and returns it with the generated ID and timestamp.
// If the user already liked the design, the existing row is returned.
func (s *LikeStore) Create(ctx context.Context, rec *models.LikeRecord) (*models.LikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO saved_ai_designs (user_id, design_id, style, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, design_id) DO NOTHING
		RETURNING `+likeColumns,
		rec.UserID, rec.DesignID, string(rec.Style), rec.ImageURL,
	)
	l, err := scanLike(row)
	if errors.Is(err, sql.ErrNoRows) {
		existing, err := s.FindByUserAndDesign(ctx, rec.UserID, rec.DesignID)
		if err != nil {
			return nil, fmt.Errorf("create like: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("create like: conflicting row for design %s vanished", rec.DesignID)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}
	return l, nil
}

// FindByUserAndDesign returns the user's like for a design, or nil if the
// design is not liked.
func (s *LikeStore) FindByUserAndDesign(ctx context.Context, userID, designID uuid.UUID) (*models.LikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+likeColumns+`
		FROM saved_ai_designs
		WHERE user_id = $1 AND design_id = $2`, userID, designID)
	l, err := scanLike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find like: %w", err)
	}
	return l, nil
}

// Delete removes a like by its ID. Deleting a missing row is not an error.
func (s *LikeStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_ai_designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

// ListByUser returns a user's liked designs, newest first.
func (s *LikeStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LikeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+likeColumns+`
		FROM saved_ai_designs
		WHERE user_id = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	var items []models.LikeRecord
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}
