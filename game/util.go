package game

import "math"

func cosf(a float32) float32 { return float32(math.Cos(float64(a))) }

func sinf(a float32) float32 { return float32(math.Sin(float64(a))) }
