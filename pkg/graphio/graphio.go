// Package graphio serializes causal graphs to and from a JSON node-link
// format shared by the API, the CLI, the store and the cache.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/caugraph/caugraph/pkg/graph"
)

// MarshalDAG converts a DAG to indented JSON bytes.
func MarshalDAG(d *graph.DAG) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDoc(FromDAG(d), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalPDAG converts a PDAG to indented JSON bytes.
func MarshalPDAG(p *graph.PDAG) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDoc(FromPDAG(p), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDAG writes a DAG as JSON to w.
func WriteDAG(d *graph.DAG, w io.Writer) error { return writeDoc(FromDAG(d), w) }

// WritePDAG writes a PDAG as JSON to w.
func WritePDAG(p *graph.PDAG, w io.Writer) error { return writeDoc(FromPDAG(p), w) }

// WriteDAGFile writes a DAG to a JSON file created with 0644 permissions.
func WriteDAGFile(d *graph.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDoc(FromDAG(d), f)
}

// WritePDAGFile writes a PDAG to a JSON file created with 0644 permissions.
func WritePDAGFile(p *graph.PDAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDoc(FromPDAG(p), f)
}

// ReadDAG decodes a JSON dag document from r.
func ReadDAG(r io.Reader) (*graph.DAG, error) {
	doc, err := readDoc(r)
	if err != nil {
		return nil, err
	}
	return ToDAG(doc)
}

// ReadPDAG decodes a JSON pdag document from r.
func ReadPDAG(r io.Reader) (*graph.PDAG, error) {
	doc, err := readDoc(r)
	if err != nil {
		return nil, err
	}
	return ToPDAG(doc)
}

// ReadDAGFile reads a JSON file and returns the decoded DAG.
func ReadDAGFile(path string) (*graph.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDAG(f)
}

// ReadPDAGFile reads a JSON file and returns the decoded PDAG.
func ReadPDAGFile(path string) (*graph.PDAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPDAG(f)
}

// ReadDocument decodes a document from r without converting it, for callers
// that dispatch on Kind themselves.
func ReadDocument(r io.Reader) (Document, error) { return readDoc(r) }

// WriteDocument encodes a document to w as indented JSON.
func WriteDocument(doc Document, w io.Writer) error { return writeDoc(doc, w) }

func writeDoc(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDoc(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}
