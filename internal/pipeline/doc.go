// Package pipeline implements the report markdown to HTML conversion stages.
//
// The stages are:
//   - Line preprocessing (line ending normalization, splitting)
//   - Block rendering: a line-oriented dispatch loop over a fixed dialect
//     (headings, meta line, rules, images, tables, ordered and unordered
//     lists, paragraphs) producing one HTML fragment per block
//   - Document building: the page template wrapping the body with the
//     stylesheet and title
//   - Image path rewriting for PDF rendering from a temporary location
//
// PDF generation is handled by the root mdreport package using headless
// Chrome (go-rod). This package is pure: every stage is a function of its
// input text.
package pipeline
