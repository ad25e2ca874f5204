package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes v into JSON without HTML escaping and without a trailing newline.
// Recorded request bodies are byte-identical to what was sent.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// json.Encoder.Encode always adds a trailing \n.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DuplicateKeys returns the keys that occur more than once at the top level
// of the JSON object in data, each reported once, in order of first repeat.
// Anything other than an object yields no keys.
func DuplicateKeys(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}

	seen := make(map[string]int)
	var dups []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, key)
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return dups, nil
}
