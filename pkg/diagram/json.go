package diagram

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/archlayout/pkg/errors"
)

// ReadDiagram decodes a JSON diagram from r. Unknown fields are rejected so
// typos in hand-written files surface early. ReadDiagram does not validate;
// call [Diagram.Validate] or let the engine do it.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var d Diagram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	return d, nil
}

// ReadDiagramFile reads a JSON diagram from path.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Diagram{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Diagram{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadDiagram(f)
}

// MarshalDiagram encodes d as compact JSON. The output is deterministic for
// a given diagram and is used to derive cache keys.
func MarshalDiagram(d Diagram) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return data, nil
}

// ReadResult decodes a JSON layout result from r.
func ReadResult(r io.Reader) (*Result, error) {
	res := NewResult()
	if err := json.NewDecoder(r).Decode(res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	return res, nil
}

// MarshalResult encodes r as indented JSON. Map keys are emitted in sorted
// order so identical layouts produce identical bytes.
func MarshalResult(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteResult(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteResult encodes r as indented JSON to w.
func WriteResult(r *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return nil
}

// WriteResultFile writes r to a JSON file at path.
func WriteResultFile(r *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteResult(r, f)
}

// Sniff reports whether data looks like a layout result rather than a
// diagram. Results carry a "nodes" object; diagrams carry "cells".
func Sniff(data []byte) (isResult bool) {
	var probe struct {
		Nodes json.RawMessage `json:"nodes"`
		Cells json.RawMessage `json:"cells"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return len(probe.Nodes) > 0 && len(probe.Cells) == 0
}
