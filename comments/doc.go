// Package comments connects a field's annotation registry to a host comment
// application.
//
// A Widget is the host-facing facade: it registers itself with the injected
// App once, tracks whether commenting is enabled, and caches the host's
// comment list. A Source is a one-shot routine that turns the current
// selection into a new comment entity and handle. The Decorator binds each
// rendered occurrence of a comment entity to its handle on every frame.
package comments
