// Package selection implements multi-select state over an ordered,
// duplicate-tolerant track list.
//
// A selected row is identified by a [Key] combining track ID and global
// position, so two occurrences of the same track stay distinguishable. All
// operations are pure: they take a [State] value and return a new one. The
// shared container is [Store], which replaces the whole state atomically and
// notifies subscribers, so no partial mutation is ever observable.
package selection
