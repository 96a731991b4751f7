// Package logs tails the captioner log file for the CLI.
//
// Tail reads the last N lines of a file or streams lines appended after a
// byte offset, with bounded memory on arbitrarily large files. Follow-mode
// callers pass a context so polling stops cleanly when the command exits.
package logs
