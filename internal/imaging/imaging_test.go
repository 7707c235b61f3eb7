// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DownscalesLargeImages(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"portrait 2000x3000", 2000, 3000, 512, 768},
		{"landscape 3000x2000", 3000, 2000, 768, 512},
		{"square 1024", 1024, 1024, 768, 768},
		{"odd ratio 1000x777", 1000, 777, 768, 592},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)))
			b := out.Bounds()

			assert.Equal(t, tt.wantW, b.Dx())
			assert.Equal(t, tt.wantH, b.Dy())
			assert.LessOrEqual(t, max(b.Dx(), b.Dy()), MaxDimension)
			assert.Zero(t, b.Dx()%8, "width must be a multiple of 8")
			assert.Zero(t, b.Dy()%8, "height must be a multiple of 8")
		})
	}
}

func TestNormalize_SmallImageUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))

	out := Normalize(src)

	assert.Same(t, src, out)
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize(image.NewNRGBA(image.Rect(0, 0, 2000, 3000)))
	twice := Normalize(once)

	assert.Same(t, once, twice)
}

func TestNormalize_ConvertsGrayToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 16, 16))
	src.SetGray(3, 3, color.Gray{Y: 200})

	out := Normalize(src)

	rgba, ok := out.(*image.RGBA)
	require.True(t, ok, "expected *image.RGBA, got %T", out)
	assert.Equal(t, src.Bounds().Size(), rgba.Bounds().Size())
	r, g, b, _ := rgba.At(3, 3).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestFitDimensions_NeverUpscales(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{3000, 40, 768, 8},
		{3000, 10, 768, 0},
		{5000, 4, 768, 0},
	}
	for _, tt := range tests {
		w, h := FitDimensions(tt.w, tt.h, MaxDimension)
		assert.Equal(t, tt.wantW, w, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "%dx%d", tt.w, tt.h)
		assert.LessOrEqual(t, h, tt.h)
	}
}

func TestDecode(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))

		img, format, err := Decode(bytes.NewReader(buf.Bytes()))

		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 40, img.Bounds().Dx())
	})

	t.Run("too narrow to scale", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 5000, 4))))

		_, _, err := Decode(bytes.NewReader(buf.Bytes()))

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, _, err := Decode(bytes.NewReader([]byte("definitely not an image")))

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	})
}
