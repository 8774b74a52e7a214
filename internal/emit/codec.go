package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the serialisation of a Document.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack, "mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unknown emit format %q (expected json|msgpack)", s)
}

// Write serialises doc. Msgpack uses the same field names as JSON.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)
		return enc.Encode(doc)
	}
	return fmt.Errorf("unknown emit format %q", format)
}

// Read decodes a Document written by Write and checks its schema version.
func Read(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		err = dec.Decode(&doc)
	default:
		return Document{}, fmt.Errorf("unknown emit format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", format, err)
	}
	if doc.Schema != SchemaVersion {
		return Document{}, fmt.Errorf("unsupported schema %d (want %d)", doc.Schema, SchemaVersion)
	}
	return doc, nil
}
