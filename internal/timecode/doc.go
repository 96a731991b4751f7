// Package timecode converts between integer milliseconds and the two clock
// notations used by subtitle formats: the comma-fraction SubRip form
// (HH:MM:SS,mmm) and the centisecond Advanced SubStation form (H:MM:SS.cc).
//
// Formatting and parsing stay in integer arithmetic throughout. Parsing is
// tolerant of the comma/period drift and short fractions found in real-world
// SubRip files; formatting is strict so emitted documents are canonical.
package timecode
