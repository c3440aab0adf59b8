// Package kernel provides core domain primitives shared by the order, kitchen and
// notification models.
//
// The package includes:
//   - UUID: A value object for unique identifiers, random or name-based
//   - Department: A value object naming the preparation station of a menu item
//
// These primitives are immutable and safe for concurrent use.
package kernel
