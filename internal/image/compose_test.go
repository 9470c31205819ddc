package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/youruser/shotframe/internal/target"
)

var (
	green = color.NRGBA{R: 0x00, G: 0x64, B: 0x00, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}

	phone      = target.Spec{Name: "Phone", Width: 1080, Height: 1920, Orientation: target.Portrait}
	chromebook = target.Spec{Name: "Chromebook", Width: 1366, Height: 768, Orientation: target.Landscape}
)

func solid(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		spec       target.Spec
		want       Placement
	}{
		{
			name: "tall source into phone is centered",
			srcW: 1000, srcH: 2000, spec: phone,
			want: Placement{Width: 864, Height: 1728, X: 108, Y: 96},
		},
		{
			name: "wide source into chromebook",
			srcW: 2000, srcH: 1000, spec: chromebook,
			want: Placement{Width: 1228, Height: 614, X: 69, Y: 77},
		},
		{
			name: "square source into phone",
			srcW: 500, srcH: 500, spec: phone,
			want: Placement{Width: 864, Height: 864, X: 108, Y: 528},
		},
		{
			name: "very tall source into phone is pinned",
			srcW: 500, srcH: 2000, spec: phone,
			want: Placement{Width: 864, Height: 3456, X: 108, Y: OverflowPinY, Pinned: true},
		},
		{
			name: "very wide source into chromebook overflows centered",
			srcW: 4000, srcH: 1000, spec: chromebook,
			want: Placement{Width: 2456, Height: 614, X: -545, Y: 77},
		},
		{
			name: "odd remainder floors",
			srcW: 2003, srcH: 1000, spec: chromebook,
			// 2003*614/1000 = 1229, (1366-1229)/2 = 68
			want: Placement{Width: 1229, Height: 614, X: 68, Y: 77},
		},
		{
			name: "custom margin",
			srcW: 100, srcH: 100,
			spec: target.Spec{Name: "Wide", Width: 1000, Height: 500, Orientation: target.Landscape, MarginPercent: 25},
			want: Placement{Width: 250, Height: 250, X: 375, Y: 125},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.srcW, tt.srcH, tt.spec)
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if got != tt.want {
				t.Errorf("Plan(%d, %d, %s) = %+v, want %+v", tt.srcW, tt.srcH, tt.spec.Name, got, tt.want)
			}
		})
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		spec       target.Spec
		want       error
	}{
		{name: "zero source", srcW: 0, srcH: 10, spec: phone, want: ErrInvalidSource},
		{name: "bad target", srcW: 10, srcH: 10, spec: target.Spec{Name: "x", Width: 0, Height: 10, Orientation: target.Portrait}, want: ErrInvalidTarget},
		{name: "no orientation", srcW: 10, srcH: 10, spec: target.Spec{Name: "x", Width: 10, Height: 10}, want: ErrInvalidTarget},
		{name: "sliver", srcW: 100000, srcH: 1, spec: phone, want: ErrDegenerateScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.srcW, tt.srcH, tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Plan error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFloorHalf(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 1, 137: 68, -1: -1, -2: -1, -3: -2, -135: -68}
	for in, want := range cases {
		if got := floorHalf(in); got != want {
			t.Errorf("floorHalf(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestComposeDimensions(t *testing.T) {
	sources := []image.Image{
		solid(1000, 2000, red),
		solid(2000, 1000, red),
		solid(300, 300, red),
		solid(200, 3000, red),
	}
	for _, spec := range target.Defaults() {
		for _, src := range sources {
			out, err := Compose(src, spec, green)
			if err != nil {
				t.Fatalf("Compose(%v, %s): %v", src.Bounds().Size(), spec.Name, err)
			}
			if out.Bounds().Dx() != spec.Width || out.Bounds().Dy() != spec.Height {
				t.Errorf("%s: got %dx%d, want %dx%d", spec.Name, out.Bounds().Dx(), out.Bounds().Dy(), spec.Width, spec.Height)
			}
			if !out.Opaque() {
				t.Errorf("%s: output is not opaque", spec.Name)
			}
		}
	}
}

func TestComposePlacesSourceOnBackground(t *testing.T) {
	out, err := Compose(solid(1000, 2000, red), phone, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Paste region is x in [108, 972), y in [96, 1824).
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, green},
		{107, 500, green},
		{972, 500, green},
		{500, 95, green},
		{500, 1824, green},
		{1079, 1919, green},
		{540, 960, red},
		{110, 100, red},
	}
	for _, c := range checks {
		if got := out.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestComposeLandscapeScalesToHeight(t *testing.T) {
	out, err := Compose(solid(300, 900, red), chromebook, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// 614 tall, 204 wide, at (581, 77).
	if got := out.NRGBAAt(683, 77); got != red {
		t.Errorf("top edge of paste = %v, want red", got)
	}
	if got := out.NRGBAAt(683, 76); got != green {
		t.Errorf("above paste = %v, want background", got)
	}
	if got := out.NRGBAAt(683, 690); got != red {
		t.Errorf("bottom edge of paste = %v, want red", got)
	}
	if got := out.NRGBAAt(683, 691); got != green {
		t.Errorf("below paste = %v, want background", got)
	}
}

func TestComposeTransparentSourceShowsBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			src.SetNRGBA(x, y, red)
		}
	}
	out, err := Compose(src, phone, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Source is 864x864 at (108, 528); left half transparent.
	if got := out.NRGBAAt(200, 960); got != green {
		t.Errorf("transparent region = %v, want background", got)
	}
	if got := out.NRGBAAt(900, 960); got != red {
		t.Errorf("opaque region = %v, want red", got)
	}
}

func TestComposePinnedOverflow(t *testing.T) {
	out, err := Compose(solid(100, 1000, red), phone, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := out.NRGBAAt(540, OverflowPinY-1); got != green {
		t.Errorf("above pin = %v, want background", got)
	}
	if got := out.NRGBAAt(540, OverflowPinY); got != red {
		t.Errorf("at pin = %v, want red", got)
	}
	if got := out.NRGBAAt(540, 1919); got != red {
		t.Errorf("bottom row = %v, want clipped source", got)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 64; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 2), B: uint8(x ^ y), A: uint8(128 + x)})
		}
	}
	for _, spec := range []target.Spec{phone, chromebook} {
		a, err := Compose(src, spec, green)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		b, err := Compose(src, spec, green)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("%s: repeated composition differs", spec.Name)
		}
	}
}

func TestComposeBackgroundAlphaIgnored(t *testing.T) {
	out, err := Compose(solid(10, 10, red), phone, color.NRGBA{R: 1, G: 2, B: 3, A: 0x10})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got, want := out.NRGBAAt(0, 0), (color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}); got != want {
		t.Errorf("background = %v, want %v", got, want)
	}
}

func TestComposeRejectsInvalidInput(t *testing.T) {
	if _, err := Compose(nil, phone, green); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("nil source error = %v, want ErrInvalidSource", err)
	}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Compose(empty, phone, green); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("empty source error = %v, want ErrInvalidSource", err)
	}
	if _, err := Compose(solid(10, 10, red), target.Spec{Name: "bad"}, green); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("bad target error = %v, want ErrInvalidTarget", err)
	}
}

func TestKeepLeading(t *testing.T) {
	tests := []struct {
		name                string
		srcLen, dstLen, vis int
		wantSrc, wantDst    int
	}{
		{name: "fits", srcLen: 2000, dstLen: 1728, vis: 1870, wantSrc: 2000, wantDst: 1728},
		{name: "one pixel wide sliver", srcLen: 20000, dstLen: 17280000, vis: 1870, wantSrc: 7, wantDst: 6048},
		{name: "period of five rows", srcLen: 60, dstLen: 10368, vis: 1870, wantSrc: 15, wantDst: 2592},
		{name: "coprime lengths keep everything", srcLen: 20000, dstLen: 2468571, vis: 1870, wantSrc: 20000, wantDst: 2468571},
		{name: "nothing visible", srcLen: 20000, dstLen: 17280000, vis: -10, wantSrc: 5, wantDst: 4320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSrc, gotDst := keepLeading(tt.srcLen, tt.dstLen, tt.vis)
			if gotSrc != tt.wantSrc || gotDst != tt.wantDst {
				t.Errorf("keepLeading(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.srcLen, tt.dstLen, tt.vis, gotSrc, gotDst, tt.wantSrc, tt.wantDst)
			}
		})
	}
}

func TestComposeTallSliverClipsBottomRow(t *testing.T) {
	src := solid(1, 20000, red)
	p, err := Plan(1, 20000, phone)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.Pinned || p.Height != 17280000 {
		t.Fatalf("unexpected placement %+v", p)
	}
	if _, w, h := trimOverflow(src, p, phone); w != 864 || h != 6048 {
		t.Fatalf("trimmed scale = %dx%d, want 864x6048", w, h)
	}

	out, err := Compose(src, phone, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{540, OverflowPinY - 1, green},
		{540, OverflowPinY, red},
		{540, 1919, red},
		{108, 1919, red},
		{971, 1919, red},
		{107, 1919, green},
		{972, 1919, green},
	}
	for _, c := range checks {
		if got := out.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestComposeTrimmedOverflowMatchesFullResize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 5; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(y * 4), G: uint8(x * 50), B: uint8(255 - y*3), A: uint8(160 + y)})
		}
	}
	p, err := Plan(5, 60, phone)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if _, _, h := trimOverflow(src, p, phone); h >= p.Height {
		t.Fatalf("expected overflow to be trimmed, scaled height %d of %d", h, p.Height)
	}

	want := imaging.New(phone.Width, phone.Height, green)
	want = imaging.Overlay(want, imaging.Resize(src, p.Width, p.Height, imaging.Lanczos), p.Point(), 1.0)
	flatten(want)

	got, err := Compose(src, phone, green)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("trimmed composition differs from full-size resize")
	}
}

func TestComposeRejectsOversizedScale(t *testing.T) {
	_, err := Compose(solid(20000, 1, red), chromebook, green)
	if !errors.Is(err, ErrScaleTooLarge) {
		t.Errorf("Compose error = %v, want ErrScaleTooLarge", err)
	}
}
