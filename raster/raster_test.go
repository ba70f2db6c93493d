package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestResampleDoubles(t *testing.T) {
	data := encodePNG(t, 100, 40)
	out, err := Resample(data, 2)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 80 {
		t.Fatalf("unexpected size: %v", img.Bounds())
	}
}

func TestResampleRejectsBadFactor(t *testing.T) {
	data := encodePNG(t, 10, 10)
	if _, err := Resample(data, 0); err == nil {
		t.Fatal("expected error for zero factor")
	}
	if _, err := Resample(data, 0.001); err == nil {
		t.Fatal("expected error for collapsing factor")
	}
}

func TestPrepareRescalesToTargetDPI(t *testing.T) {
	page := PageImage{PageNumber: 3, Data: encodePNG(t, 150, 150), DPI: 150}
	in, err := Prepare(page, 300)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if in.DPI != 300 {
		t.Fatalf("input dpi = %d, want 300", in.DPI)
	}
	if in.PageNumber != 3 || in.ID != "page-3" {
		t.Fatalf("unexpected identity: %q page %d", in.ID, in.PageNumber)
	}
	img, err := png.Decode(bytes.NewReader(in.Image))
	if err != nil {
		t.Fatalf("decode prepared image: %v", err)
	}
	if img.Bounds().Dx() != 300 {
		t.Fatalf("prepared width = %d, want 300", img.Bounds().Dx())
	}
}

func TestPrepareKeepsUnknownDPI(t *testing.T) {
	data := encodePNG(t, 50, 50)
	in, err := Prepare(PageImage{PageNumber: 0, Data: data}, 0)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !bytes.Equal(in.Image, data) {
		t.Fatal("unknown-DPI image should pass through unmodified")
	}
	if in.DPI != 300 {
		t.Fatalf("default target dpi = %d, want 300", in.DPI)
	}
}

func TestPageSizePoints(t *testing.T) {
	w, h := PageSizePoints(2550, 3300, 300)
	if math.Abs(w-612) > 1e-6 || math.Abs(h-792) > 1e-6 {
		t.Fatalf("letter page at 300 dpi = (%v, %v), want (612, 792)", w, h)
	}
}
