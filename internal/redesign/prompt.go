// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package redesign

import (
	"strings"

	"interiorai/internal/models"
)

const qualitySuffix = "professional photography high quality well lit realistic"

// ComposePrompt builds the generation prompt for one style. The output is
// deterministic; changing the order or wording changes render quality.
func ComposePrompt(room models.RoomType, style models.DesignStyle, colorHints []string) string {
	var b strings.Builder
	b.WriteString("interior design ")
	b.WriteString(room.Label())
	b.WriteString(" ")
	b.WriteString(style.Label())
	b.WriteString(" style ")
	b.WriteString(style.Description())
	b.WriteString(" ")
	b.WriteString(room.Description())
	if len(colorHints) > 0 {
		b.WriteString(", featuring ")
		b.WriteString(strings.Join(colorHints, ", "))
		b.WriteString(" tones")
	}
	b.WriteString(" ")
	b.WriteString(qualitySuffix)
	return b.String()
}
