package texture

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// gradient returns a w x 1 texture whose red channel is x*50.
func gradient(t *testing.T, w int) *Texture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, 1))
	for x := range w {
		img.Set(x, 0, color.RGBA{uint8(x * 50), 0, 0, 255})
	}
	tex, err := New(1, img)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func red(v mgl32.Vec4) int {
	return int(math.Round(float64(v[0] * 255)))
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		mode gputypes.AddressMode
		i, n int
		want int
	}{
		{gputypes.AddressModeRepeat, 5, 4, 1},
		{gputypes.AddressModeRepeat, -1, 4, 3},
		{gputypes.AddressModeClampToEdge, -3, 4, 0},
		{gputypes.AddressModeClampToEdge, 9, 4, 3},
		{gputypes.AddressModeMirrorRepeat, 4, 4, 3},
		{gputypes.AddressModeMirrorRepeat, 7, 4, 0},
		{gputypes.AddressModeMirrorRepeat, 8, 4, 0},
		{gputypes.AddressModeMirrorRepeat, -1, 4, 0},
	}
	for _, tt := range tests {
		if got := wrapIndex(tt.mode, tt.i, tt.n); got != tt.want {
			t.Errorf("wrapIndex(%v, %d, %d) = %d, want %d", tt.mode, tt.i, tt.n, got, tt.want)
		}
	}
}

func TestSampleAtNearestWrap(t *testing.T) {
	tex := gradient(t, 4)
	s := NewSampler2D(tex)

	tests := []struct {
		name string
		wrap gputypes.AddressMode
		u    float32
		want int
	}{
		{"repeat inside", gputypes.AddressModeRepeat, 0.3, 50},
		{"repeat beyond", gputypes.AddressModeRepeat, 1.3, 50},
		{"repeat negative", gputypes.AddressModeRepeat, -0.1, 150},
		{"clamp high", gputypes.AddressModeClampToEdge, 5, 150},
		{"clamp low", gputypes.AddressModeClampToEdge, -5, 0},
		{"mirror", gputypes.AddressModeMirrorRepeat, 1.1, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.WrapU = tt.wrap
			if got := red(s.SampleAt(mgl32.Vec2{tt.u, 0.5})); got != tt.want {
				t.Errorf("SampleAt(%v) red = %d, want %d", tt.u, got, tt.want)
			}
		})
	}
}

func TestSampleFarOutsideIsSafe(t *testing.T) {
	tex := gradient(t, 3)
	s := NewSampler2D(tex)
	s.MagFilter = FilterLinear

	coords := []float32{1e30, -1e30, 123456.7, -98765.4,
		float32(math.Inf(1)), float32(math.NaN())}
	for _, mode := range []gputypes.AddressMode{
		gputypes.AddressModeRepeat, gputypes.AddressModeMirrorRepeat, gputypes.AddressModeClampToEdge,
	} {
		s.WrapU, s.WrapV = mode, mode
		for _, c := range coords {
			got := s.SampleAt(mgl32.Vec2{c, -c})
			if got[3] != 1 {
				t.Errorf("SampleAt(%v) under %v = %v, want opaque texel", c, mode, got)
			}
		}
	}
}

func TestSampleLinear(t *testing.T) {
	tex := gradient(t, 4)
	s := NewSampler2D(tex)
	s.WrapU = gputypes.AddressModeClampToEdge
	s.MagFilter = FilterLinear

	// Halfway between texel centers 1 and 2.
	if got := red(s.SampleAt(mgl32.Vec2{0.5, 0.5})); got != 75 {
		t.Errorf("linear red = %d, want 75", got)
	}
}

func TestSampleMinificationUsesMipLevel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 255
	}
	tex, err := New(1, img)
	if err != nil {
		t.Fatal(err)
	}
	tex.GenerateMipmaps()
	// Paint level 2 green so the level choice is observable.
	lvl := tex.Level(2)
	lvl.Pix[0], lvl.Pix[1] = 0, 255

	s := NewSampler2D(tex)
	fp := Footprint{DUVdx: mgl32.Vec2{1, 0}, DUVdy: mgl32.Vec2{0, 1}}
	got := s.Sample(mgl32.Vec2{0.5, 0.5}, fp)
	if got[1] != 1 || got[0] != 0 {
		t.Errorf("Sample() with 4-texel footprint = %v, want level 2 (green)", got)
	}
	if got := s.Sample(mgl32.Vec2{0.5, 0.5}, Footprint{}); got[0] != 1 {
		t.Errorf("Sample() with zero footprint = %v, want level 0 (red)", got)
	}
}

func TestSampleDitheredStaysInRange(t *testing.T) {
	tex := gradient(t, 4)
	s := NewSampler2D(tex)
	s.MagFilter = FilterDithered
	s.WrapU = gputypes.AddressModeClampToEdge

	seen := map[int]bool{}
	for y := range 2 {
		for x := range 2 {
			seen[red(s.Sample(mgl32.Vec2{0.5, 0.5}, Footprint{X: x, Y: y}))] = true
		}
	}
	for r := range seen {
		if r != 50 && r != 100 {
			t.Errorf("dithered sample red = %d, want a neighbor texel (50 or 100)", r)
		}
	}
}

func TestSampleWithoutTexture(t *testing.T) {
	var s *Sampler2D
	if got := s.SampleAt(mgl32.Vec2{0.5, 0.5}); got != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("nil sampler = %v, want opaque black", got)
	}
	if s.TextureID() != 0 {
		t.Error("TextureID() of nil sampler should be 0")
	}
}

func TestSRGBDecode(t *testing.T) {
	tex, err := NewRGBA(1, 1, 1, []uint8{128, 128, 128, 128}, WithSRGB())
	if err != nil {
		t.Fatal(err)
	}
	got := NewSampler2D(tex).SampleAt(mgl32.Vec2{0, 0})
	if math.Abs(float64(got[0])-0.2158) > 1e-3 {
		t.Errorf("sRGB decoded red = %v, want ~0.2158", got[0])
	}
	if math.Abs(float64(got[3])-128.0/255.0) > 1e-6 {
		t.Errorf("alpha = %v, want linear 128/255", got[3])
	}
}

func TestFilterString(t *testing.T) {
	if FilterDithered.String() != "Dithered" || Filter(99).String() != "Unknown" {
		t.Error("unexpected Filter.String()")
	}
}
