// blocks/blocks.go
//
// Built-in section blocks.
//
// Context
// -------
// Each block in this package pairs an html/template fragment with a typed
// content struct and registers itself with the block registry in an init()
// func.  cmd/web blank-imports the package so registration happens before
// the first request.
//
// Content payloads arrive as opaque maps owned by the dashboard's per-block
// schema.  decode() round-trips them through JSON into the typed struct, so
// missing or oddly-typed keys degrade to zero values instead of panicking.
// Templates guard optional fields with {{if}} for the same reason.
package blocks

import (
	"bytes"
	"encoding/json"
	"html/template"
)

// link is a text + URL pair shared by several blocks.
type link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// decode maps a section's content payload onto dst via a JSON round trip.
func decode(content map[string]any, dst any) error {
	b, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// execute renders t over data into an HTML fragment.
func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
