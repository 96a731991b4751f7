// Package captions defines the timed-text data model shared across the
// captioning pipeline: provider words, caption cues, per-language styles, and
// language tracks.
//
// All timings are integer milliseconds from the start of the source video.
// Components that format or parse clock notation build on these values; no
// floating point enters time arithmetic. Language codes are treated as
// opaque, case-sensitive identifiers so that "en" and "EN" never collide or
// merge.
package captions
