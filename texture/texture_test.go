package texture

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestNew(t *testing.T) {
	src := checker(4, 2)
	tex, err := New(7, src.SubImage(image.Rect(0, 0, 4, 2)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tex.ID() != 7 || tex.Width() != 4 || tex.Height() != 2 || tex.Levels() != 1 {
		t.Errorf("New() = id %d %dx%d levels %d", tex.ID(), tex.Width(), tex.Height(), tex.Levels())
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(1, image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New(empty) error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewRGBA(1, 2, 2, make([]uint8, 8)); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("NewRGBA(short) error = %v, want ErrDataTooSmall", err)
	}
	if _, err := NewRGBA(1, 0, 2, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewRGBA(0x2) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestGenerateMipmaps(t *testing.T) {
	tex, err := New(1, checker(8, 2))
	if err != nil {
		t.Fatal(err)
	}
	tex.GenerateMipmaps()

	want := [][2]int{{8, 2}, {4, 1}, {2, 1}, {1, 1}}
	if tex.Levels() != len(want) {
		t.Fatalf("Levels() = %d, want %d", tex.Levels(), len(want))
	}
	for i, wh := range want {
		r := tex.Level(i).Rect
		if r.Dx() != wh[0] || r.Dy() != wh[1] {
			t.Errorf("level %d = %dx%d, want %dx%d", i, r.Dx(), r.Dy(), wh[0], wh[1])
		}
	}
	if tex.Level(len(want)) != nil {
		t.Error("Level past the chain should be nil")
	}
}

func TestSetSubImage(t *testing.T) {
	tex, err := NewRGBA(1, 4, 4, make([]uint8, 64))
	if err != nil {
		t.Fatal(err)
	}
	patch := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range patch.Pix {
		patch.Pix[i] = 200
	}
	if err := tex.SetSubImage(0, 2, 2, patch); err != nil {
		t.Fatalf("SetSubImage() error = %v", err)
	}
	if got := tex.Level(0).RGBAAt(3, 3); got.R != 200 {
		t.Errorf("texel (3,3) = %v, want R=200", got)
	}
	if got := tex.Level(0).RGBAAt(1, 1); got.R != 0 {
		t.Errorf("texel (1,1) = %v, want untouched", got)
	}
	if err := tex.SetSubImage(0, 3, 3, patch); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetSubImage(overflow) error = %v, want ErrOutOfBounds", err)
	}
	if err := tex.SetSubImage(4, 0, 0, patch); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("SetSubImage(level 4) error = %v, want ErrInvalidLevel", err)
	}
}
