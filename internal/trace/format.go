package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Format selects how events are written.
type Format uint8

const (
	FormatAuto   Format = iota // by the output file's extension
	FormatText                 // one aligned line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"json":   FormatNDJSON,
}

// ParseFormat reads a --trace-format value.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
	return f, nil
}

// wireEvent is the NDJSON form of an Event.
type wireEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Project  string            `json:"project,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// FormatEvent renders ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	var buf bytes.Buffer
	if format == FormatNDJSON {
		// strings and string maps always marshal
		_ = json.NewEncoder(&buf).Encode(wireEvent{
			Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
			Seq:      ev.Seq,
			Kind:     ev.Kind.String(),
			Scope:    ev.Scope.String(),
			SpanID:   ev.SpanID,
			ParentID: ev.ParentID,
			Project:  ev.Project,
			Name:     ev.Name,
			Detail:   ev.Detail,
			Extra:    ev.Extra,
		})
		return buf.Bytes()
	}
	writeText(&buf, ev)
	return buf.Bytes()
}

var kindGlyphs = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// writeText renders
//
//	15:04:05.000000 #seq [api.sus] → name (detail) {k=v}
//
// with the project shown by base name and child events indented.
func writeText(buf *bytes.Buffer, ev *Event) {
	fmt.Fprintf(buf, "%s #%-5d ", ev.Time.Format("15:04:05.000000"), ev.Seq)
	if ev.Project != "" {
		fmt.Fprintf(buf, "[%s] ", filepath.Base(ev.Project))
	}
	if ev.ParentID != 0 {
		buf.WriteString("  ")
	}
	if int(ev.Kind) < len(kindGlyphs) {
		buf.WriteString(kindGlyphs[ev.Kind])
	}
	buf.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(buf, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		fmt.Fprintf(buf, " {%s}", strings.Join(pairs, ", "))
	}
	buf.WriteByte('\n')
}
