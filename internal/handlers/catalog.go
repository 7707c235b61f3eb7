// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"interiorai/internal/models"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Interior AI"

// styleInfo is one entry of the styles listing.
type styleInfo struct {
	Name string `json:"name"`
}

// Styles lists the supported design styles keyed by value.
func Styles(w http.ResponseWriter, r *http.Request) {
	out := make(map[models.DesignStyle]styleInfo, len(models.DesignStyles))
	for _, s := range models.DesignStyles {
		out[s] = styleInfo{Name: s.DisplayName()}
	}
	writeJSON(w, http.StatusOK, out)
}

// RoomTypes lists the supported room types.
func RoomTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.RoomTypes)
}

// ProviderStatus reports which image providers are usable.
type ProviderStatus interface {
	ActiveName() string
	Available() []string
}

// Health reports liveness and the image provider in use.
func Health(providers ProviderStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		available := providers.Available()
		if available == nil {
			available = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"service":   ServiceName,
			"provider":  providers.ActiveName(),
			"available": available,
		})
	}
}
