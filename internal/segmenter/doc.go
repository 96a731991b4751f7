// Package segmenter groups timed transcript words into caption cues.
//
// Segmentation is a single greedy pass: words accumulate into a run until
// appending the next one would push the run past the character or duration
// bound, at which point the run closes and a new one starts. Two rules bend
// the bounds rather than break words: a word longer than the character limit
// still becomes its own cue, and punctuation-only tokens always attach to the
// run in progress so no cue ever opens with a dangling "!" or ",".
package segmenter
