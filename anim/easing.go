// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/easing.go
// Summary: Easing functions mapping linear progress [0,1] to eased progress.

package anim

import "strings"

// EasingFunc maps progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

var (
	// Linear - constant speed
	Linear EasingFunc = func(t float64) float64 { return t }

	// EaseIn - quadratic, slow start
	EaseIn EasingFunc = func(t float64) float64 { return t * t }

	// EaseOut - quadratic, slow end
	EaseOut EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOut - quadratic on both ends
	EaseInOut EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// Smoothstep - cubic S-curve
	Smoothstep EasingFunc = func(t float64) float64 { return t * t * (3 - 2*t) }
)

var easings = map[string]EasingFunc{
	"linear":     Linear,
	"easein":     EaseIn,
	"easeout":    EaseOut,
	"easeinout":  EaseInOut,
	"smoothstep": Smoothstep,
}

// EasingByName resolves "linear", "easeIn", "ease-out", "ease_in_out" and so
// on. Unknown names fall back to Linear.
func EasingByName(name string) EasingFunc {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if f, ok := easings[key]; ok {
		return f
	}
	return Linear
}
