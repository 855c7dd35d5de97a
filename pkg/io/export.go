package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/record"
)

// WriteJSON encodes rec as an indented JSON document. The output can be read
// back with [ReadJSON].
func WriteJSON(w io.Writer, rec *record.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromRecord(rec)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes rec as a TOML document.
func WriteTOML(w io.Writer, rec *record.Record) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(fromRecord(rec)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes rec in the given format.
func Write(w io.Writer, rec *record.Record, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, rec)
	case FormatTOML:
		return WriteTOML(w, rec)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown record format %q", format)
}

// ExportFile writes rec to path, choosing the format from its extension.
func ExportFile(rec *record.Record, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, rec, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
