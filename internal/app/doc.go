// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: wire the bridge to
// the viewer (and optionally the preview hub), register the compiled-in
// producer modules, load generated catalogs from disk, then serve or emit
// the merged index. It is decoupled from any specific entrypoint like a CLI.
package app
