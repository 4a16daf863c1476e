// Package shotchart draws a half court with the tracked shots on it.
package shotchart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mauv0809/courtside/internal/game"
)

// Options controls the rendered image. Zero values fall back to defaults.
type Options struct {
	Width  int
	Height int
	// Period limits the chart to one period; 0 draws all shots.
	Period int
	Lines  color.Color
	Make   color.Color
	Miss   color.Color
}

var (
	floor       = color.RGBA{0xf5, 0xe6, 0xc8, 0xff}
	defaultLine = color.RGBA{0x1d, 0x4e, 0xd8, 0xff}
	defaultMake = color.RGBA{0x16, 0xa3, 0x4a, 0xff}
	defaultMiss = color.RGBA{0xdc, 0x26, 0x26, 0xff}
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 500
	}
	if o.Height <= 0 {
		o.Height = 470
	}
	if o.Lines == nil {
		o.Lines = defaultLine
	}
	if o.Make == nil {
		o.Make = defaultMake
	}
	if o.Miss == nil {
		o.Miss = defaultMiss
	}
	return o
}

// Draw renders the chart. Shot coordinates are percentages of the court,
// with the basket at the top centre.
func Draw(shots []game.Shot, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			img.Set(x, y, floor)
		}
	}

	w, h := float64(opts.Width), float64(opts.Height)
	unit := w / 50 // court is 50ft wide

	// Boundary, key and free throw circle.
	rect(img, 0, 0, w-1, h-1, opts.Lines)
	rect(img, w/2-8*unit, 0, w/2+8*unit, 19*unit, opts.Lines)
	ring(img, w/2, 19*unit, 6*unit, 1, opts.Lines)

	// Basket and three point line.
	hoopX, hoopY := w/2, 5.25*unit
	ring(img, hoopX, hoopY, 0.75*unit, 1, opts.Lines)
	line(img, 3*unit, 0, 3*unit, 14*unit, opts.Lines)
	line(img, w-3*unit, 0, w-3*unit, 14*unit, opts.Lines)
	arc(img, hoopX, hoopY, 23.75*unit, 14*unit, opts.Lines)

	r := math.Max(4, unit*0.6)
	for _, s := range shots {
		if opts.Period > 0 && s.Period != opts.Period {
			continue
		}
		cx, cy := s.X/100*w, s.Y/100*h
		if s.IsMake {
			disc(img, cx, cy, r, opts.Make)
		} else {
			ring(img, cx, cy, r, 2, opts.Miss)
		}
	}
	return img
}

// Render encodes the chart as PNG to w.
func Render(w io.Writer, shots []game.Shot, opts Options) error {
	if err := png.Encode(w, Draw(shots, opts)); err != nil {
		return fmt.Errorf("encoding shot chart: %w", err)
	}
	return nil
}

// Base64 returns the PNG chart base64-encoded, as embedded in exports.
func Base64(shots []game.Shot, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, shots, opts); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseHex reads a "#rrggbb" color.
func ParseHex(s string) (color.Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 0xff}, nil
}

func line(img *image.RGBA, x0, y0, x1, y1 float64, c color.Color) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.Set(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), c)
	}
}

func rect(img *image.RGBA, x0, y0, x1, y1 float64, c color.Color) {
	line(img, x0, y0, x1, y0, c)
	line(img, x1, y0, x1, y1, c)
	line(img, x1, y1, x0, y1, c)
	line(img, x0, y1, x0, y0, c)
}

func ring(img *image.RGBA, cx, cy, r, width float64, c color.Color) {
	b := img.Bounds()
	for y := int(cy - r - width); y <= int(cy+r+width); y++ {
		for x := int(cx - r - width); x <= int(cx+r+width); x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if math.Abs(d-r) <= width/2+0.5 && image.Pt(x, y).In(b) {
				img.Set(x, y, c)
			}
		}
	}
}

func disc(img *image.RGBA, cx, cy, r float64, c color.Color) {
	b := img.Bounds()
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r && image.Pt(x, y).In(b) {
				img.Set(x, y, c)
			}
		}
	}
}

// arc draws the part of a circle below minY, which is where the three point
// line leaves the corners.
func arc(img *image.RGBA, cx, cy, r, minY float64, c color.Color) {
	steps := int(r * math.Pi * 2)
	for i := 0; i <= steps; i++ {
		a := math.Pi * float64(i) / float64(steps)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if y >= minY {
			img.Set(int(x), int(y), c)
		}
	}
}
