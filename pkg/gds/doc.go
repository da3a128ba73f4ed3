// Package gds builds, manipulates and persists hierarchical 2D mask
// layouts in the GDSII stream format consumed by semiconductor and MEMS
// fabrication toolchains.
//
// A design is a forest of named cells. A Cell contains drawing
// primitives (Boundary, Path, Text) and references to other cells
// (CellRef, CellArray), forming an arbitrarily deep, possibly shared
// hierarchy. A Layout is the top-level library: it owns the unit and
// precision scale factors and knows how to write the whole dependency
// closure of its cells as a GDSII stream and how to read one back.
//
// # Usage
//
//	// Build a cell with a 2x2 square on layer 1.
//	square := gds.NewBoundary([]gds.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, 1, 0)
//	unit := gds.NewCell("UNIT")
//	unit.Add(square)
//
//	// Tile it 10x10 on a 5 um pitch inside a top cell.
//	top := gds.NewCell("TOP")
//	top.AddReference(gds.NewCellArray(unit, 10, 10, gds.GridSpacing(5, 5), gds.Point{}))
//
//	// Write the library.
//	layout := gds.NewLayout("DEMO")
//	layout.Add(top)
//	err := layout.SaveFile("demo.gds")
//
//	// Read it back. The returned layout holds the top-level cells.
//	imported, err := gds.ReadFile("demo.gds")
//
// # Units
//
// All geometry is expressed in user units. Layout.Unit is the size of
// one user unit in meters (default 1 um) and Layout.Precision the size
// of one database unit (default 1 nm); coordinates are scaled by
// Unit/Precision and rounded to integers when written.
//
// # Transforms
//
// Translate, Rotate, Scale and Reflect mutate geometry in place and
// invalidate cached bounding boxes. The COM sentinel selects an
// element's center of mass as the transform center.
//
// # Diagnostics
//
// Recoverable conditions (polygons over the official 199-point limit,
// unrecognized record types in an imported file, duplicate cell names)
// are collected on the Layout's Diagnostics rather than failing the
// operation. Unrepresentable geometry and structurally broken streams
// are hard errors.
//
// # Limitations
//
//   - Reference bounding boxes rotate the corners of the target's
//     axis-aligned box, which over-approximates rotated content.
//   - AREF decoding assumes an axis-aligned lattice.
//   - NODE, BOX and property records are skipped with a warning.
package gds
