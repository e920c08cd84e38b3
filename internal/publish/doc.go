// Package publish pushes delivered implementor catalogs to a live-preview
// hub over socket.io. It is an optional second consumer behind the bridge:
// documentation preview servers subscribe to the hub and refresh their
// "Implementors" sections when a crate's catalog is re-registered. The hub
// connection is established once at startup; individual emit failures are
// logged and swallowed because live preview is best-effort.
package publish
