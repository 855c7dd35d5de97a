package io

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/record"
)

// Format is a record document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension (.json, .toml or
// .tml). Other extensions fail with INVALID_FORMAT.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml", ".tml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported record file %q (want .json or .toml)", path)
}

// ReadJSON decodes a JSON record document from r.
//
// Unknown fields are ignored. The returned record is validated; see
// [record.New]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*record.Record, error) {
	var d document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, decodeError("json", err)
	}
	return d.toRecord()
}

// ReadTOML decodes a TOML record document from r. It does not close r.
func ReadTOML(r io.Reader) (*record.Record, error) {
	var d document
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, decodeError("toml", err)
	}
	return d.toRecord()
}

// Read decodes a record in the given format.
func Read(r io.Reader, format Format) (*record.Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown record format %q", format)
}

// ImportFile reads the record file at path, choosing the format from its
// extension.
func ImportFile(path string) (*record.Record, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	return readNamed(f, path)
}

// ImportFS is ImportFile on a file system, e.g. an embed.FS of sample
// records.
func ImportFS(fsys fs.FS, name string) (*record.Record, error) {
	if _, err := FormatFromPath(name); err != nil {
		return nil, err
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, openError(name, err)
	}
	defer f.Close()
	return readNamed(f, name)
}

func readNamed(r io.Reader, name string) (*record.Record, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	rec, err := Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rec, nil
}

func openError(name string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", name)
	}
	return fmt.Errorf("open %s: %w", name, err)
}

// decodeError keeps coded errors raised by field decoders (bad strands) and
// marks everything else INVALID_FORMAT.
func decodeError(format string, err error) error {
	if errors.GetCode(err) != "" {
		return fmt.Errorf("decode %s: %w", format, err)
	}
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
}
