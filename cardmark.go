// Package cardmark captures newly created browser bookmarks as "cards".
// For every bookmark it locates the browser tab holding the page, extracts
// a short title/text summary with a domain-aware strategy, and posts the
// result to a remote card storage API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package cardmark
