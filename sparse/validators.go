// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//  - Single source of truth for the guards shared by builder, products and
//    interop code.
//  - Validators return sentinel errors wrapped with a tag so call sites can
//    add their own method context uniformly.

package sparse

import "fmt"

// validatorErrorf wraps err with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// methodErrorf wraps err with "Matrix.<method>" context.
func methodErrorf(method string, err error) error {
	return fmt.Errorf("Matrix.%s: %w", method, err)
}

// ValidateVecLen ensures len(x) == n. A nil slice is a valid empty vector.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen(len %d, want %d)", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// validateFinalized ensures m is non-nil and finalized.
func validateFinalized(m *Matrix) error {
	if m == nil {
		return validatorErrorf("validateFinalized", ErrNilMatrix)
	}
	if !m.finalized {
		return validatorErrorf("validateFinalized", ErrNotFinalized)
	}

	return nil
}

// validateBuilding ensures m is non-nil and still accepting rows.
func validateBuilding(m *Matrix) error {
	if m == nil {
		return validatorErrorf("validateBuilding", ErrNilMatrix)
	}
	if m.finalized {
		return validatorErrorf("validateBuilding", ErrFinalized)
	}

	return nil
}

// validateColumns checks every stored column index against ncolumns,
// walking rows in the same order as the transposed product.
// Complexity: O(nel).
func validateColumns(m *Matrix, ncolumns int) error {
	for i := 0; i < m.nl; i++ {
		for k := m.ijl[i]; k < m.ijl[i+1]; k++ {
			if j := m.ija[k]; j >= ncolumns {
				return fmt.Errorf("validateColumns(row %d, column %d, ncolumns %d): %w", i, j, ncolumns, ErrColumnOutOfRange)
			}
		}
	}

	return nil
}
