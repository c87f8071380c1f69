// Package frame composes the final time-lapse frames.
//
// A frame is a fixed 16:9 canvas with four panels: the page-preview mosaic
// on the left, and a header block, a running statistics chart, and the word
// cloud stacked on the right. Panel positions are fixed fractions of the
// frame, carried over from the historical output so re-rendered sequences
// line up with old ones.
//
// Text rendering degrades gracefully: without a configured font the panels,
// chart lines and images still render, only the text is absent. That keeps
// the pipeline testable on machines without fonts installed.
package frame
