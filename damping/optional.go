// SPDX-License-Identifier: MIT

package damping

// Optional is a per-element input vector that may be absent.
// The zero value is None.
type Optional struct {
	values []float64
	set    bool
}

// None returns an absent Optional; element lookups yield the fallback.
func None() Optional { return Optional{} }

// Some wraps values (not copied). Some(nil) is set and has length 0.
func Some(values []float64) Optional {
	return Optional{values: values, set: true}
}

// IsSet reports whether values were provided.
func (o Optional) IsSet() bool { return o.set }

// Len returns the number of provided values (0 for None).
func (o Optional) Len() int { return len(o.values) }

// At returns element i, or fallback when o is None.
func (o Optional) At(i int, fallback float64) float64 {
	if !o.set {
		return fallback
	}

	return o.values[i]
}
