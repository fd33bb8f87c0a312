// Package views turns per-view render configuration into edit batches.
//
// A view names the footprints whose 3D models should be hidden, shown, or
// shifted before a board is handed to the rendering pipeline. Each view
// produces one edited copy of the board; independent views are processed in
// parallel, each owning its own tree.
package views
