// Package render drives an ffmpeg binary to burn subtitle documents into
// video files.
//
// The package exposes a small Encoder surface (Probe and Encode) backed by a
// Client that shells out through an injectable Executor, so tests can feed
// canned encoder output without spawning processes. Input geometry and
// duration come from the encoder's own stream diagnostics, the burn-in
// filter graph is assembled with the quoting the filter syntax demands, and
// progress is derived from the time= tokens the encoder prints while it
// works.
//
// Runner wraps the Encoder in a small state machine covering one render job:
// probe, build filter, encode. An advisory lock next to the output file keeps
// two renders from writing the same path at once.
package render
