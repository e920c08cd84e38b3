// Package catalog defines the implementor catalog: an insertion-ordered
// mapping from crate name to the list of concrete types implementing the
// documented trait. The catalog is the unit of data handed across the
// registration bridge, and its key and entry order must survive a round
// trip through JSON unchanged, because the documentation viewer renders
// implementors in discovery order.
package catalog
