// Package language normalizes caption track codes and resolves the
// human-readable names shown in tables, logs, and notifications.
package language
