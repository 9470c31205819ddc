package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/youruser/shotframe/internal/target"
)

// OverflowPinY is the top offset used when a portrait composition is taller
// than its canvas.
const OverflowPinY = 50

// MaxScaledPixels bounds the resized image after clipped overflow has been
// trimmed away.
const MaxScaledPixels = 64 << 20

var (
	ErrInvalidSource   = errors.New("source image has no pixels")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrDegenerateScale = errors.New("scaled image would be smaller than one pixel")
	ErrScaleTooLarge   = errors.New("scaled image is too large")
)

// Placement is where and how large the source lands on the canvas.
type Placement struct {
	Width  int
	Height int
	X      int
	Y      int
	Pinned bool
}

// Point returns the paste position.
func (p Placement) Point() image.Point {
	return image.Pt(p.X, p.Y)
}

// Plan computes the scaled size and paste position of a srcW x srcH image on
// the target canvas. Only the margin axis is bounded; the other axis may
// overflow the canvas and is clipped on paste.
func Plan(srcW, srcH int, t target.Spec) (Placement, error) {
	if srcW <= 0 || srcH <= 0 {
		return Placement{}, fmt.Errorf("%w: %dx%d", ErrInvalidSource, srcW, srcH)
	}
	if err := t.Validate(); err != nil {
		return Placement{}, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	keep := 100 - 2*t.Margin()
	var p Placement
	switch t.Orientation {
	case target.Landscape:
		p.Height = t.Height * keep / 100
		p.Width = srcW * p.Height / srcH
	default:
		p.Width = t.Width * keep / 100
		p.Height = srcH * p.Width / srcW
	}
	if p.Width < 1 || p.Height < 1 {
		return Placement{}, fmt.Errorf("%w: %dx%d into %s", ErrDegenerateScale, srcW, srcH, t.Name)
	}

	p.X = floorHalf(t.Width - p.Width)
	p.Y = floorHalf(t.Height - p.Height)
	if t.Orientation == target.Portrait && p.Height > t.Height {
		p.Y = OverflowPinY
		p.Pinned = true
	}
	return p, nil
}

// Compose scales source into the target's safe region and pastes it onto an
// opaque canvas filled with background.
func Compose(source image.Image, t target.Spec, background color.Color) (*image.NRGBA, error) {
	if source == nil {
		return nil, ErrInvalidSource
	}
	b := source.Bounds()
	p, err := Plan(b.Dx(), b.Dy(), t)
	if err != nil {
		return nil, err
	}

	src, w, h := trimOverflow(source, p, t)
	if int64(w)*int64(h) > MaxScaledPixels {
		return nil, fmt.Errorf("%w: %dx%d into %s", ErrScaleTooLarge, w, h, t.Name)
	}

	canvas := imaging.New(t.Width, t.Height, opaque(background))
	scaled := imaging.Resize(src, w, h, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, scaled, p.Point(), 1.0)
	flatten(canvas)
	return canvas, nil
}

// trimOverflow drops the source rows and columns that only feed scaled pixels
// past the bottom or right edge of the canvas. It returns the source to resize
// and the matching scaled size.
func trimOverflow(source image.Image, p Placement, t target.Spec) (image.Image, int, int) {
	b := source.Bounds()
	srcW, dstW := b.Dx(), p.Width
	srcH, dstH := b.Dy(), p.Height
	if p.X >= 0 {
		srcW, dstW = keepLeading(srcW, dstW, t.Width-p.X)
	}
	if p.Y >= 0 {
		srcH, dstH = keepLeading(srcH, dstH, t.Height-p.Y)
	}
	if srcW == b.Dx() && srcH == b.Dy() {
		return source, p.Width, p.Height
	}
	rect := image.Rect(b.Min.X, b.Min.Y, b.Min.X+srcW, b.Min.Y+srcH)
	return imaging.Crop(source, rect), dstW, dstH
}

// keepLeading returns how many leading source pixels, and the scaled length
// they map to, are needed to render the first visible pixels of a
// srcLen -> dstLen resample. Both results are whole multiples of the
// srcLen:dstLen period, so the resample ratio, and with it every Lanczos
// weight of the kept pixels, is bit-identical to the full resize.
func keepLeading(srcLen, dstLen, visible int) (int, int) {
	if visible >= dstLen {
		return srcLen, dstLen
	}
	if visible < 1 {
		visible = 1
	}
	g := gcd(srcLen, dstLen)
	ps, pd := int64(srcLen/g), int64(dstLen/g)

	scale := float64(srcLen) / float64(dstLen)
	if scale < 1 {
		scale = 1
	}
	support := int64(math.Ceil(scale * imaging.Lanczos.Support))
	// Last visible pixel's kernel ends before visible*src/dst + support.
	need := (int64(visible)*int64(srcLen)+int64(dstLen)-1)/int64(dstLen) + support + 1

	periods := (need + ps - 1) / ps
	if periods*ps >= int64(srcLen) {
		return srcLen, dstLen
	}
	return int(periods * ps), int(periods * pd)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// floorHalf is n/2 rounded toward negative infinity.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

func opaque(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{A: 0xff}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
