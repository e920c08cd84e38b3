// Package viewer holds the consumer side of the registration bridge: a
// merged, insertion-ordered index of every delivered crate, and a small
// JSON endpoint the documentation front end polls to populate
// "Implementors" sections. Rendering, navigation and search live in the
// front end, not here.
package viewer
