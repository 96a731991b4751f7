// Package notifications sends ntfy push notifications for render events.
// When no topic is configured every notification is a silent no-op, so
// callers never need to guard their notify calls.
package notifications
