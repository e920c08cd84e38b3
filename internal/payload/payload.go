package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vk/traitdexgo/internal/catalog"
)

const (
	prefix = "(function() {var implementors = "
	suffix = ";\nif (window.register_implementors) " +
		"{window.register_implementors(implementors);} else " +
		"{window.pending_implementors = implementors;}})()"
)

// marker is the part of the wrapper Parse anchors on. Generators differ in
// the leading IIFE punctuation across versions, so the anchor is the
// assignment itself.
const marker = "var implementors = "

// IsPayloadFile reports whether a file name looks like a generated
// implementors artifact ("implementors.js" or "<crate>.implementors.js").
func IsPayloadFile(name string) bool {
	base := filepath.Base(name)
	return base == "implementors.js" || strings.HasSuffix(base, ".implementors.js")
}

// Parse extracts the embedded JSON object from a generated artifact and
// decodes it into a catalog, preserving key order. The artifact is trusted
// by construction, but a loader fed the wrong file must find out, so a
// missing wrapper or an unbalanced object is an error.
func Parse(data []byte) (*catalog.Catalog, error) {
	text := string(data)
	at := strings.Index(text, marker)
	if at < 0 {
		return nil, fmt.Errorf("payload: no implementors assignment found")
	}

	object, err := extractObject(text[at+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	cat := catalog.New()
	if err := json.Unmarshal([]byte(object), cat); err != nil {
		return nil, fmt.Errorf("payload: embedded object is not a valid catalog: %w", err)
	}
	return cat, nil
}

// Marshal renders a catalog as a complete implementors artifact. The output
// is byte-stable for a given catalog.
func Marshal(cat *catalog.Catalog) ([]byte, error) {
	object, err := json.Marshal(cat)
	if err != nil {
		return nil, fmt.Errorf("payload: failed to marshal catalog: %w", err)
	}

	var b strings.Builder
	b.Grow(len(prefix) + len(object) + len(suffix))
	b.WriteString(prefix)
	b.Write(object)
	b.WriteString(suffix)
	return []byte(b.String()), nil
}

// Write emits a complete implementors artifact to w.
func Write(w io.Writer, cat *catalog.Catalog) error {
	data, err := Marshal(cat)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("payload: failed to write artifact: %w", err)
	}
	return nil
}

// extractObject returns the balanced JSON object at the start of s. The
// scan tracks string literals and escapes so braces inside impl text do
// not end the object early.
func extractObject(s string) (string, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if len(s) == 0 || s[0] != '{' {
		return "", fmt.Errorf("implementors assignment is not an object literal")
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", fmt.Errorf("implementors object literal is unterminated")
}
