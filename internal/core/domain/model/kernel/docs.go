// Package kernel contains shared value objects used across the domain model.
//
// The kernel holds primitives that carry no business meaning of their own but
// enforce invariants every aggregate relies on, such as the UUID value object
// wrapping github.com/google/uuid. Domain packages depend on kernel; kernel
// depends on nothing above the shared error types.
package kernel
