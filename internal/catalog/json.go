package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON emits the catalog as a JSON object with crates in insertion
// order. encoding/json sorts map keys, so the object is assembled by hand.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, crate := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(crate)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal crate name %q: %w", crate, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		impls := c.entries[crate]
		if impls == nil {
			impls = []Implementor{}
		}
		val, err := json.Marshal(impls)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal implementors for crate %q: %w", crate, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the catalog, preserving the
// document's key order. The decode is token-level because encoding/json
// offers no ordered map type.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read catalog document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog document must be a JSON object, got %v", tok)
	}

	c.keys = nil
	c.entries = make(map[string][]Implementor)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read crate name: %w", err)
		}
		crate, ok := tok.(string)
		if !ok {
			return fmt.Errorf("crate name must be a string, got %v", tok)
		}

		var impls []Implementor
		if err := dec.Decode(&impls); err != nil {
			return fmt.Errorf("failed to decode implementors for crate %q: %w", crate, err)
		}
		c.Set(crate, impls)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of catalog document: %w", err)
	}
	return nil
}
