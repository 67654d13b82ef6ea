// Package imaging prepares portfolio photos for the web: downscaling,
// watermarking, re-encoding and dominant color extraction.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kozaktomas/portfolio/internal/fingerprint"
	"github.com/kozaktomas/portfolio/internal/palette"
	"github.com/kozaktomas/portfolio/internal/selection"
)

const (
	DefaultPortfolioWidth = 1280
	DefaultAssetWidth     = 300
	DefaultQuality        = 85
	DefaultWatermark      = "©LCT"

	// watermark height relative to the short side, with a floor in pixels
	watermarkScale     = 0.08
	watermarkMinHeight = 12
	watermarkAlpha     = 128
)

// Format is an output image encoding.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatGIF
	FormatBMP
)

// FormatFromPath picks the encoding for an output file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	case ".gif":
		return FormatGIF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

// Supported reports whether a file name has an image extension the builder handles.
func Supported(name string) bool {
	_, err := FormatFromPath(name)
	return err == nil
}

// ProcessOptions controls a single Process call.
type ProcessOptions struct {
	// Width is the maximum output width. Narrower images are not enlarged.
	Width     int
	Watermark string
	Format    Format
	Quality   int
}

// Result describes a processed image.
type Result struct {
	Width  int
	Height int
	Color  selection.Color
	// Hash is the difference hash of the resized image before watermarking.
	Hash fingerprint.Hash
}

// Process decodes src, downscales and watermarks it, writes the encoded image
// to dst and reports the dominant color of the output.
func Process(src io.Reader, dst io.Writer, opts ProcessOptions) (*Result, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	out := toRGBA(resize(img, opts.Width))
	hash := fingerprint.DHash(out)
	if opts.Watermark != "" {
		Watermark(out, opts.Watermark)
	}

	if err := encode(dst, out, opts); err != nil {
		return nil, err
	}

	b := out.Bounds()
	return &Result{
		Width:  b.Dx(),
		Height: b.Dy(),
		Color:  palette.DominantColor(out),
		Hash:   hash,
	}, nil
}

// resize scales img down to width, keeping the aspect ratio.
func resize(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if width <= 0 || bounds.Dx() <= width {
		return img
	}
	height := max(int(float64(bounds.Dy())*float64(width)/float64(bounds.Dx())), 1)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Watermark draws text centered on img in half-transparent white. The text
// height is 8% of the image's short side, at least 12 pixels.
func Watermark(img draw.Image, text string) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	textHeight := face.Metrics().Height.Ceil()
	if textWidth == 0 || textHeight == 0 {
		return
	}

	glyphs := image.NewAlpha(image.Rect(0, 0, textWidth, textHeight))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	bounds := img.Bounds()
	short := min(bounds.Dx(), bounds.Dy())
	height := max(int(float64(short)*watermarkScale), watermarkMinHeight)
	width := textWidth * height / textHeight

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(mask, mask.Bounds(), glyphs, glyphs.Bounds(), draw.Src, nil)

	center := image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)
	target := image.Rect(center.X-width/2, center.Y-height/2, center.X-width/2+width, center.Y-height/2+height)
	ink := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: watermarkAlpha})
	draw.DrawMask(img, target, ink, image.Point{}, mask, image.Point{}, draw.Over)
}

func encode(w io.Writer, img image.Image, opts ProcessOptions) error {
	var err error
	switch opts.Format {
	case FormatJPEG:
		quality := opts.Quality
		if quality <= 0 {
			quality = DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown output format %d", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
