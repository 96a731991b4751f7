// Package ass composes Advanced SubStation Alpha documents that place
// several caption tracks on screen at once.
//
// Each language track contributes one style record and one dialogue event
// per cue. Events carry explicit \pos overrides computed from the track's
// percentage-based vertical position, so simultaneous tracks land at fixed,
// non-colliding rows instead of being stacked by the renderer. All pixel
// values are derived from the real video geometry at compose time, which
// keeps a style meaning the same thing at 480p and 4K.
package ass
