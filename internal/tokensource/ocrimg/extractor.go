// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocrimg extracts positioned word tokens from scanned page images
// via Tesseract. Camera-sourced scans are first corrected for EXIF
// orientation, then grayscaled and optionally binarized before OCR; token
// coordinates are pixels in the corrected image.
package ocrimg

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/rwcarlsen/goexif/exif"

	"field-locator/internal/token"
	"field-locator/internal/tokensource"
)

// Extractor runs Tesseract over a page image.
type Extractor struct {
	// Language is the Tesseract language model, default "eng".
	Language string

	// PageSegMode is the Tesseract segmentation mode; the upstream OCR
	// service runs PSM 6 (assume a single uniform block of text).
	PageSegMode gosseract.PageSegMode

	// Binarize applies a fixed-level threshold after grayscaling. Helps
	// low-contrast scans, hurts clean ones, so it is off by default.
	Binarize bool

	// BinarizeLevel is the luminance cutoff when Binarize is set.
	BinarizeLevel uint8

	// Page is the page number attributed to this image's tokens.
	Page int
}

// New creates an OCR extractor with the upstream service's defaults.
func New() *Extractor {
	return &Extractor{
		Language:      "eng",
		PageSegMode:   gosseract.PSM_SINGLE_BLOCK,
		BinarizeLevel: 128,
		Page:          1,
	}
}

func (e *Extractor) Name() string { return "ocr-image" }

// Extract OCRs the image and returns word tokens with pixel geometry.
func (e *Extractor) Extract(path string) ([]token.Token, error) {
	img, err := loadOriented(path)
	if err != nil {
		return nil, err
	}

	prepared := e.preprocess(img)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, prepared, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding preprocessed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return nil, fmt.Errorf("setting ocr language: %w", err)
	}
	if err := client.SetPageSegMode(e.PageSegMode); err != nil {
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("loading image into ocr engine: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("running ocr: %w", err)
	}
	return boxesToTokens(boxes, e.Page), nil
}

func (e *Extractor) preprocess(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	if e.Binarize {
		return segment.Threshold(gray, e.BinarizeLevel)
	}
	return gray
}

// boxesToTokens converts Tesseract word boxes into tokens, dropping blank
// words.
func boxesToTokens(boxes []gosseract.BoundingBox, page int) []token.Token {
	tokens := make([]token.Token, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		tokens = append(tokens, token.Token{
			Page: page,
			Text: text,
			X0:   float64(b.Box.Min.X),
			Y0:   float64(b.Box.Min.Y),
			X1:   float64(b.Box.Max.X),
			Y1:   float64(b.Box.Max.Y),
		})
	}
	return tokens
}

// loadOriented decodes the image and applies its EXIF orientation so OCR
// sees the page upright.
func loadOriented(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	orientation := readOrientation(f)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewinding image: %w", err)
	}

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return applyOrientation(img, orientation), nil
}

// readOrientation probes EXIF for the orientation tag. Images without EXIF
// (PNGs, stripped JPEGs) report the identity orientation.
func readOrientation(f *os.File) int {
	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// applyOrientation maps the eight EXIF orientations onto rotate/flip
// operations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func init() {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"} {
		tokensource.RegisterExt(ext, func() tokensource.Source { return New() })
	}
}
