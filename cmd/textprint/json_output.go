package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as a YAML document.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// resolveFormat picks the output format. Without an explicit choice a
// terminal gets a table and anything else gets JSON.
func resolveFormat(requested string, w io.Writer) (string, error) {
	switch requested {
	case formatTable, formatJSON, formatYAML:
		return requested, nil
	case "":
		if isTerminal(w) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json, or yaml)", requested)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
