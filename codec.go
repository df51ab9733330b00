package oidtree

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUnexpectedEOF is returned when the data ends unexpectedly.
	// It wraps io.ErrUnexpectedEOF.
	ErrUnexpectedEOF = fmt.Errorf("unexpected end of data: %w", io.ErrUnexpectedEOF)
	// ErrVarintOverflow is returned when a varint is too large.
	ErrVarintOverflow = errors.New("varint overflow")
	// ErrUnsupportedVersion is returned when the stream version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported stream version")
)

const (
	streamVersion = 1
)

// DecodeDeclarations parses a binary declaration stream, as produced by
// EncodeDeclarations or by a WASM plugin.
//
// The stream is a varint version, a varint count, then per declaration:
// name, module (length-prefixed strings), value (varint) and parent name.
func DecodeDeclarations(data []byte) ([]Declaration, error) {
	r := &postcardReader{data: data}

	version, err := r.readU32()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != streamVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, streamVersion)
	}

	count, err := r.readU32()
	if err != nil {
		return nil, fmt.Errorf("reading declaration count: %w", err)
	}
	// Every declaration takes at least four bytes.
	if int(count) > r.remaining()/4 {
		return nil, fmt.Errorf("reading declarations: count %d exceeds data: %w", count, ErrUnexpectedEOF)
	}

	decls := make([]Declaration, count)
	for i := range decls {
		decls[i], err = readDeclaration(r)
		if err != nil {
			return nil, fmt.Errorf("reading declaration %d: %w", i, err)
		}
	}
	if r.remaining() > 0 {
		return nil, fmt.Errorf("%d trailing bytes after declarations", r.remaining())
	}
	return decls, nil
}

func readDeclaration(r *postcardReader) (Declaration, error) {
	var d Declaration
	var err error

	d.Name, err = r.readString()
	if err != nil {
		return d, err
	}
	d.Module, err = r.readString()
	if err != nil {
		return d, err
	}
	d.Value, err = r.readU32()
	if err != nil {
		return d, err
	}
	d.ParentName, err = r.readString()
	if err != nil {
		return d, err
	}
	return d, nil
}

// EncodeDeclarations serializes decls in the format read by
// DecodeDeclarations.
func EncodeDeclarations(decls []Declaration) []byte {
	w := &postcardWriter{}
	w.writeU32(streamVersion)
	w.writeU32(uint32(len(decls)))
	for _, d := range decls {
		w.writeString(d.Name)
		w.writeString(d.Module)
		w.writeU32(d.Value)
		w.writeString(d.ParentName)
	}
	return w.buf
}

// === Postcard Reader ===

type postcardReader struct {
	data []byte
	pos  int
}

func (r *postcardReader) remaining() int {
	return len(r.data) - r.pos
}

// readU32 reads a varint-encoded u32.
func (r *postcardReader) readU32() (uint32, error) {
	var result uint32
	var shift uint
	for {
		if r.pos >= len(r.data) {
			return 0, ErrUnexpectedEOF
		}
		b := r.data[r.pos]
		r.pos++
		// The fifth byte carries only bits 28-31 and must end the varint.
		if shift == 28 && b&0xF0 != 0 {
			return 0, ErrVarintOverflow
		}
		result |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, nil
}

func (r *postcardReader) readString() (string, error) {
	length, err := r.readU32()
	if err != nil {
		return "", err
	}
	if int(length) > r.remaining() {
		return "", ErrUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(length)])
	r.pos += int(length)
	return s, nil
}

// === Postcard Writer ===

type postcardWriter struct {
	buf []byte
}

func (w *postcardWriter) writeU32(v uint32) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

func (w *postcardWriter) writeString(s string) {
	w.writeU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}
