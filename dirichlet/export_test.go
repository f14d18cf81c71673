package dirichlet

import "github.com/kjirou/curvedspaces/geom"

// Exported aliases for package-internal helpers the test suite in
// dirichlet_test needs but that have no reason to be public API.

var ExportBisectorPlane = bisectorPlane
var ExportSeedBanana = seedBanana
var ExportSeedLens = seedLens
var ExportLensOrder = lensOrder

func ExportPlaneValue(plane, v geom.Vector) float64 { return planeValue(plane, v) }
