// Package annotation binds document entities to live annotation handles.
//
// A Registry owns one Handle per entity key for the lifetime of a field. A
// Handle records the UI bindings attached by the most recent render (anchor
// identifier, visibility and focus setters) and exposes show/hide/focus,
// click forwarding, removal, and anchor position queries. Every operation on
// an unbound handle is a silent no-op.
//
// Handles never hold UI objects directly: anchors are AnchorIDs resolved
// through an AnchorResolver owned by the rendering layer, and the document
// is reached through Accessors.
package annotation
