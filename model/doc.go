// Package model defines the core types shared by the clustering packages.
//
// # Feature Points
//
//   - Point: immutable pixel feature (integer position, colour channels, origin index)
//   - Layout: capability flags declaring which sub-spaces a point set carries
//
// A Point with Origin == -1 is synthetic: it was computed (for example as a
// cluster centroid) and does not correspond to an input pixel.
//
// # Extraction
//
// Use FromPixels to build a row-major point set from any pixel source:
//
//	points := model.FromPixels(w, h, func(x, y int) (r, g, b uint8) {
//	    return img.RGBAt(x, y)
//	})
package model
