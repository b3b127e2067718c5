// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// json.go — JSON codec for values meant to be read with redis-cli. Output is
// compact and not HTML-escaped; input must hold exactly one JSON value.

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSON stores values as JSON text.
type JSON struct{}

// Marshal writes v as a single line of JSON. <, > and & are kept literal so
// the stored text matches what a human would type.
func (JSON) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Unmarshal reads one JSON value from data into v. An empty payload or a
// second value after the first is an error.
func (JSON) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("json: trailing data after value")
	}
	return nil
}

func (JSON) Name() string { return "json" }
