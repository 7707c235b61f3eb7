// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "strings"

// RoomType is the category of room being redesigned. It drives the
// furnishing vocabulary used in generation prompts.
type RoomType string

const (
	RoomBedroom    RoomType = "bedroom"
	RoomLivingRoom RoomType = "living_room"
	RoomKitchen    RoomType = "kitchen"
	RoomBathroom   RoomType = "bathroom"
	RoomOffice     RoomType = "office"
	RoomDiningRoom RoomType = "dining_room"
)

// RoomTypes lists every supported room type in display order.
var RoomTypes = []RoomType{
	RoomBedroom, RoomLivingRoom, RoomKitchen,
	RoomBathroom, RoomOffice, RoomDiningRoom,
}

// roomDescriptions holds the furnishing descriptor for each room type.
var roomDescriptions = map[RoomType]string{
	RoomBedroom:    "comfortable bed with headboard, nightstands with lamps, dresser, soft bedding, pillows, window with curtains",
	RoomLivingRoom: "sofa, armchairs, coffee table, entertainment center, bookshelf, area rug, window treatments, decorative accessories",
	RoomKitchen:    "modern appliances, cabinetry, countertop, sink, stove, island or dining counter, lighting fixtures, backsplash",
	RoomBathroom:   "vanity with sink, mirror with lighting, toilet, bathtub or shower, tile flooring, wall tiles, shelving, ambient lighting",
	RoomOffice:     "desk with chair, computer setup, shelving or bookcases, task lighting, storage cabinets, organized workspace, plants",
	RoomDiningRoom: "dining table, dining chairs, buffet or sideboard, chandelier or pendant lights, area rug, centerpiece",
}

// Valid reports whether r is one of the supported room types.
func (r RoomType) Valid() bool {
	_, ok := roomDescriptions[r]
	return ok
}

// Label returns the room type with underscores replaced by spaces.
func (r RoomType) Label() string {
	return strings.ReplaceAll(string(r), "_", " ")
}

// Description returns the furnishing descriptor for the room type.
func (r RoomType) Description() string {
	return roomDescriptions[r]
}

// DesignStyle is one named aesthetic treatment applied to a redesign.
type DesignStyle string

const (
	StyleModernMinimalist DesignStyle = "modern_minimalist"
	StyleScandinavian     DesignStyle = "scandinavian"
	StyleIndustrial       DesignStyle = "industrial"
	StyleBohemian         DesignStyle = "bohemian"
	StyleLuxury           DesignStyle = "luxury"
	StyleJapaneseZen      DesignStyle = "japanese_zen"
	StyleCoastal          DesignStyle = "coastal"
	StyleFarmhouse        DesignStyle = "farmhouse"
)

// DesignStyles lists every supported style in display order.
var DesignStyles = []DesignStyle{
	StyleModernMinimalist, StyleScandinavian, StyleIndustrial, StyleBohemian,
	StyleLuxury, StyleJapaneseZen, StyleCoastal, StyleFarmhouse,
}

type styleInfo struct {
	name        string
	description string
}

var styleTable = map[DesignStyle]styleInfo{
	StyleModernMinimalist: {"Modern Minimalist", "clean lines, minimal clutter, neutral palette with white gray beige, sleek furniture, open space, natural light"},
	StyleScandinavian:     {"Scandinavian", "Nordic style, light wood furniture, soft textiles, white walls, green plants, cozy hygge, functional minimalist design"},
	StyleIndustrial:       {"Industrial", "exposed brick, metal fixtures, concrete floors, Edison bulbs, leather furniture, urban loft, raw materials, neutral tones"},
	StyleBohemian:         {"Bohemian", "colorful textiles, patterned rugs, abundant plants, eclectic vintage furniture, macrame, warm ambient lighting, vibrant colors"},
	StyleLuxury:           {"Luxury", "elegant furnishings, velvet upholstery, marble surfaces, gold accents, crystal fixtures, premium materials, sophisticated styling"},
	StyleJapaneseZen:      {"Japanese Zen", "minimalist, natural wood, bamboo elements, low furniture, earth tones, shoji screens, tranquil serene atmosphere, zen garden"},
	StyleCoastal:          {"Coastal", "light airy feel, white and blue palette, natural textures, driftwood, nautical elements, beach inspired, breezy atmosphere"},
	StyleFarmhouse:        {"Farmhouse", "rustic charm, reclaimed wood, vintage furniture, shiplap walls, cozy textiles, warm inviting, farmhouse aesthetic"},
}

// Valid reports whether s is one of the supported styles.
func (s DesignStyle) Valid() bool {
	_, ok := styleTable[s]
	return ok
}

// Label returns the style with underscores replaced by spaces.
func (s DesignStyle) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// DisplayName returns the human-readable style name (e.g. "Japanese Zen").
func (s DesignStyle) DisplayName() string {
	return styleTable[s].name
}

// Description returns the visual descriptor used in prompts.
func (s DesignStyle) Description() string {
	return styleTable[s].description
}
