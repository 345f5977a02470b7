package output

import (
	"bufio"
	"encoding/json"
	"io"
)

type jsonWriter struct {
	w     *bufio.Writer
	items []any
}

func newJSONWriter(w io.Writer) *jsonWriter {
	return &jsonWriter{w: bufio.NewWriter(w)}
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// Flush emits the buffered items as one indented JSON document. A single
// item is emitted directly, not as a one-element array.
func (w *jsonWriter) Flush() error {
	var doc any = w.items
	if len(w.items) == 1 {
		doc = w.items[0]
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(append(out, '\n')); err != nil {
		return err
	}
	return w.w.Flush()
}

type jsonlWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	bw := bufio.NewWriter(w)
	return &jsonlWriter{w: bw, enc: json.NewEncoder(bw)}
}

// Write streams one item per line immediately.
func (w *jsonlWriter) Write(data any) error {
	return w.enc.Encode(data)
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}
