// Package viz renders canvases and flights in the terminal.
//
// Raster pixels are mapped onto braille cells, each of which holds a 2x4
// grid of dots, so a terminal of W x H characters shows 2W x 4H dots.
package viz
