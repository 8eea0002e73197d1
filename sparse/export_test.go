// SPDX-License-Identifier: MIT

package sparse

// Test bridge: exposes unexported helpers and state to sparse_test only.

// PanicCapacityInvalid_TestOnly mirrors the WithCapacity panic message.
const PanicCapacityInvalid_TestOnly = panicCapacityInvalid

// ExportedResize exposes resize for white-box tests.
var ExportedResize = resize

// CapacityOf_TestOnly reports the capacities of sa, ija and ijl.
func CapacityOf_TestOnly(m *Matrix) (sa, ija, ijl int) {
	return cap(m.sa), cap(m.ija), cap(m.ijl)
}

// GatherCapacity_TestOnly resolves opts and returns the effective capacity.
func GatherCapacity_TestOnly(opts ...Option) int {
	return gatherOptions(opts...).capacity
}
