package fluid

// Smoothing kernels, piecewise in q = r/h with support 2h. These are the
// tuned weighting heuristics the solver behavior depends on, not normalized
// textbook SPH kernels; changing their shape changes the visible motion.

// DensityKernel weighs a neighbor's mass contribution to local density.
// Peaks at 1 for r=0 and falls to 0 at q=2.
func DensityKernel(r, h float32) float32 {
	q := r / h
	switch {
	case q < 1:
		return 1 - 1.5*q*q + 0.75*q*q*q
	case q < 2:
		d := 2 - q
		return 0.25 * d * d * d
	default:
		return 0
	}
}

// PressureKernel is the (negative) radial slope used by the pressure force.
// Steepest at r=0 so compressed pairs are pushed apart hard, zero past q=2.
func PressureKernel(r, h float32) float32 {
	q := r / h
	switch {
	case q < 1:
		return -(3 - 2*q)
	case q < 2:
		d := 2 - q
		return -d * d
	default:
		return 0
	}
}

// ViscosityKernel weighs relative-velocity diffusion between neighbors.
// Piecewise decreasing from 3 at r=0 to 0 at q=2.
func ViscosityKernel(r, h float32) float32 {
	q := r / h
	switch {
	case q < 1:
		return 3 - 2*q
	case q < 2:
		return 2 - q
	default:
		return 0
	}
}
