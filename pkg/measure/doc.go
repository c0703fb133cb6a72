// Package measure provides pure, script-aware text measurement over the
// same inch coordinate system the layout engine uses.
//
// # Overview
//
// Two operations cover everything downstream stages need:
//
//   - Measure computes the width and height a run of text occupies at a
//     given font family, size, and weight, raising the width for text with
//     a high proportion of CJK code points and falling back through the
//     fixed default font chain when the requested family lacks coverage.
//   - Fit scans font sizes from a maximum down to a minimum, wrapping text
//     onto up to three lines, and returns the largest size that fits a
//     given width — or, failing that, a truncated single line with a
//     fits=false warning.
//
// Neither operation ever errors: a MeasuredText is always returned, and
// fits=false is the signal that the caller should treat the result as a
// warning rather than a failure (§4.1, §7).
package measure
