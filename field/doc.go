// Package field provides a Bubble Tea rich-text field with inline comment
// annotations.
//
// The field owns the content state, the anchor table, and a comments.Widget.
// Every paint decorates each comment occurrence, places its anchor, and
// styles it from the decorator's marker state. The serialized content is
// exposed as the field's value.
package field
