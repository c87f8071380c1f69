// Package mosaic composes per-page raster images into a single grid image.
//
// Each historical snapshot of a document produces one rasterized image per
// page. This package packs those page tiles into a rows×cols canvas: every
// tile is wrapped in a thin border, tiles fill the grid in row-major order,
// and any cells beyond the last page are filled with a solid background color.
//
// Compositing is byte-exact: source tile pixels are copied into the canvas
// unchanged. That is the reason this package works on image.RGBA directly
// instead of going through a path renderer.
//
// Grid shapes can be fixed by the caller or chosen by SelectShape, which
// grows a base shape derived from physical page proportions until the grid
// can hold every page. The search is a heuristic, not a minimal-area
// optimization.
package mosaic
