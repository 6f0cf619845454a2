package fluid

import (
	"math"
	"testing"
)

const h = 28.0

func TestDensityKernelShape(t *testing.T) {
	if got := DensityKernel(0, h); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("DensityKernel(0) = %f, want 1", got)
	}
	if got := DensityKernel(2*h, h); got != 0 {
		t.Errorf("DensityKernel(2h) = %f, want 0", got)
	}
	if got := DensityKernel(3*h, h); got != 0 {
		t.Errorf("DensityKernel beyond support = %f, want 0", got)
	}

	// Monotonically decreasing over the support.
	prev := DensityKernel(0, h)
	for r := float32(h / 10); r < 2*h; r += h / 10 {
		cur := DensityKernel(r, h)
		if cur > prev {
			t.Fatalf("DensityKernel not decreasing at r=%f: %f > %f", r, cur, prev)
		}
		prev = cur
	}
}

func TestKernelContinuityAtBranch(t *testing.T) {
	// The two piecewise branches must meet at q=1.
	tests := []struct {
		name string
		fn   func(r, h float32) float32
	}{
		{"density", DensityKernel},
		{"pressure", PressureKernel},
		{"viscosity", ViscosityKernel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			below := tt.fn(h-1e-3, h)
			above := tt.fn(h+1e-3, h)
			if math.Abs(float64(below-above)) > 1e-3 {
				t.Errorf("discontinuity at q=1: %f vs %f", below, above)
			}
		})
	}
}

func TestPressureKernelPushesApart(t *testing.T) {
	// Negative slope everywhere inside the support, steepest at r=0.
	at0 := PressureKernel(0, h)
	if at0 >= 0 {
		t.Errorf("PressureKernel(0) = %f, want negative", at0)
	}
	for r := float32(0); r < 2*h; r += h / 8 {
		v := PressureKernel(r, h)
		if v > 0 {
			t.Errorf("PressureKernel(%f) = %f, want <= 0", r, v)
		}
		if v < at0 {
			t.Errorf("PressureKernel(%f) = %f steeper than at r=0 (%f)", r, v, at0)
		}
	}
	if got := PressureKernel(2*h, h); got != 0 {
		t.Errorf("PressureKernel(2h) = %f, want 0", got)
	}
}

func TestViscosityKernelDecreasing(t *testing.T) {
	prev := ViscosityKernel(0, h)
	for r := float32(h / 8); r <= 2*h; r += h / 8 {
		cur := ViscosityKernel(r, h)
		if cur > prev {
			t.Fatalf("ViscosityKernel not decreasing at r=%f", r)
		}
		if cur < 0 {
			t.Fatalf("ViscosityKernel(%f) = %f, want >= 0", r, cur)
		}
		prev = cur
	}
	if got := ViscosityKernel(2.5*h, h); got != 0 {
		t.Errorf("ViscosityKernel beyond support = %f, want 0", got)
	}
}
