// Package descriptor models the component descriptors emitted by upstream UI
// generators. A descriptor pairs a widget tag with a loosely typed props map;
// the helpers in this package turn those props into typed payloads, defaulting
// anything missing or malformed instead of failing.
package descriptor
