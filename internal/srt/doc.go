// Package srt reads and writes SubRip subtitle documents.
//
// Serialization is canonical: 1-based indices, comma-fraction timestamps,
// and a blank line after every block. Parsing is forgiving in the ways
// real-world files demand: CRLF line endings, missing index lines, period
// fractions, and stray blank lines are all tolerated, and blocks that still
// fail to parse are skipped rather than failing the whole document.
package srt
