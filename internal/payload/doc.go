// Package payload reads and writes the generated implementors artifact:
// a JavaScript file that embeds one catalog as a JSON object literal and,
// when loaded in the viewer, either calls the viewer's registration hook
// or parks the catalog in a well-known pending slot. traitdex only needs
// the JSON object inside the fixed wrapper; the wrapper itself is emitted
// and recognized verbatim.
package payload
