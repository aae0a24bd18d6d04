// Package binder turns widget change notifications into configuration
// updates. Apply is pure: it never modifies the configuration it receives and
// always returns a fresh copy carrying at most one changed key. Binder pairs
// Apply with a Notifier so the host hears about every accepted change.
package binder
