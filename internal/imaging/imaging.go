// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging decodes uploaded room photographs and normalizes them to
// dimensions the image-generation providers accept. Normalization converts
// exotic color models to RGBA and scales oversized images down so that
// the longer side fits MaxDimension and both sides are multiples of 8.
// Images that already fit are returned untouched; nothing is upscaled.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxDimension is the largest width or height sent to providers.
	MaxDimension = 768

	// dimensionMultiple is required by the downstream diffusion models.
	dimensionMultiple = 8

	// maxImagePixels guards against decompression bombs (50 megapixels).
	maxImagePixels = 50_000_000
)

// ErrDecode is returned when the upload cannot be decoded as an image.
var ErrDecode = errors.New("imaging: cannot decode image")

// Decode reads an image from r. The header is checked first so that huge
// images are rejected before any pixel data is allocated.
func Decode(r io.ReadSeeker) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, maxImagePixels)
	}
	if max(cfg.Width, cfg.Height) > MaxDimension {
		if w, h := FitDimensions(cfg.Width, cfg.Height, MaxDimension); w == 0 || h == 0 {
			return nil, "", fmt.Errorf("%w: %dx%d is too narrow to scale down", ErrDecode, cfg.Width, cfg.Height)
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("imaging: seek: %w", err)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// Normalize converts img to a plain color model and scales it down to fit
// within MaxDimension. The result is safe to pass to Normalize again.
func Normalize(img image.Image) image.Image {
	img = toColor(img)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if max(w, h) <= MaxDimension {
		return img
	}

	newW, newH := FitDimensions(w, h, MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FitDimensions scales (w, h) so the longer side equals limit, preserving
// the aspect ratio, then rounds both sides down to a multiple of 8. A side
// shorter than 8 pixels after scaling becomes 0; Decode rejects such images.
func FitDimensions(w, h, limit int) (int, int) {
	longest := max(w, h)
	newW := w * limit / longest
	newH := h * limit / longest
	return roundDown(newW), roundDown(newH)
}

func roundDown(n int) int {
	return n - n%dimensionMultiple
}

// toColor returns img unchanged when its color model is RGB or RGB with
// alpha. Grayscale, paletted, CMYK and other models are redrawn as RGBA.
func toColor(img image.Image) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.YCbCr, *image.NYCbCrA:
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
