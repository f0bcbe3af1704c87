// Package format renders CLI payloads as json, edn or yaml.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	JSON = "json"
	EDN  = "edn"
	YAML = "yaml"
)

var Names = []string{JSON, EDN, YAML}

// Validate reports an error for anything Write would reject.
func Validate(format string) error {
	switch normalize(format) {
	case JSON, EDN, YAML:
		return nil
	default:
		return fmt.Errorf("unknown format: %s (want %s)", format, strings.Join(Names, "|"))
	}
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		return JSON
	case "yml":
		return YAML
	}
	return f
}

// Write writes v in the requested format. Struct field names come from json
// tags in every format.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch normalize(format) {
	case JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	case YAML:
		return WriteYAML(w, v)
	default:
		return Validate(format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteYAML is always block style; pretty has no meaning for it.
func WriteYAML(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}

// generic round-trips v through JSON so every encoder sees json tag names and
// the same value shapes.
func generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	return x, nil
}
