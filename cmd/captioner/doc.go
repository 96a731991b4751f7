// Package main hosts the captioner CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into caption
// pipeline operations: transcript segmentation, subtitle document
// composition, media probes, dependency checks, and burn-in renders. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
