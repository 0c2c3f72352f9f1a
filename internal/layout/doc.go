// Package layout implements the single-page fitting engine.
//
// The engine works on a content tree that has already been produced from
// markdown (see package blocks) and hands its output to the HTML/PDF
// renderer. It never shapes text itself. Instead it:
//
//  1. estimates the page count from a serialized-size density proxy (Estimate),
//  2. shrinks every typography tier, margin and the line spacing by a fixed
//     step (Rescaler),
//  3. repeats until the estimate reaches one page or the body size reaches
//     the legibility floor (Fit).
//
// The loop is bounded: with the default 12pt body, 0.5pt step and 8pt floor
// it runs at most 8 iterations. Fit reports whether it stopped because the
// content fits (StatusFitted) or because it gave up at the floor
// (StatusFloorReached).
//
// All functions are pure. Concurrent fits over distinct documents need no
// synchronization.
package layout
