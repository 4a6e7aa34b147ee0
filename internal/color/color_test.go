package color

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func floatNear(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestF32ToU8Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"half", 0.5, 128},
		{"negative", -3, 0},
		{"above one", 7, 255},
		{"nan", float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := F32ToU8(ColorF32{R: tt.in}).R
			if got != tt.want {
				t.Errorf("F32ToU8(%v).R = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackUnpackVec4(t *testing.T) {
	buf := make([]uint8, 4)
	PackVec4(buf, mgl32.Vec4{1, 0, 0.5, 1})
	if buf[0] != 255 || buf[1] != 0 || buf[2] != 128 || buf[3] != 255 {
		t.Fatalf("PackVec4 wrote %v", buf)
	}
	v := UnpackVec4(buf)
	if !floatNear(v[2], 128.0/255.0, 1e-6) {
		t.Errorf("UnpackVec4()[2] = %v, want %v", v[2], 128.0/255.0)
	}
}

func TestClamp(t *testing.T) {
	c := ColorF32{R: -1, G: 2, B: 0.25, A: float32(math.NaN())}.Clamp()
	if c.R != 0 || c.G != 1 || c.B != 0.25 || c.A != 0 {
		t.Errorf("Clamp() = %+v", c)
	}
}

func TestDecodeSRGB8MatchesFormula(t *testing.T) {
	for _, s := range []uint8{0, 10, 128, 200, 255} {
		want := SRGBToLinear(float32(s) / 255)
		if got := DecodeSRGB8(s); !floatNear(got, want, 1e-6) {
			t.Errorf("DecodeSRGB8(%d) = %v, want %v", s, got, want)
		}
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		s := float32(i) / 255
		got := LinearToSRGB(SRGBToLinear(s))
		if !floatNear(got, s, 1.0/255.0) {
			t.Errorf("round trip %v -> %v", s, got)
		}
	}
}
