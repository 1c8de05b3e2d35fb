// SPDX-License-Identifier: EPL-2.0

package riffio

import (
	"encoding/binary"
	"io"
)

// Cursor is a forward-only little-endian reader over a byte slice.
type Cursor struct {
	buf  []byte
	pos  int
	base int // offset of buf[0] within the whole input

	// declared is set for cursors whose bounds come from a chunk size
	// rather than from the end of the input.
	declared bool
}

// NewCursor returns a cursor over the whole of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Pos is the absolute offset of the next byte within the original input.
func (c *Cursor) Pos() int { return c.base + c.pos }

// Remaining is the number of bytes left before the cursor's bound.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Declared reports whether the bound of c comes from a declared chunk size.
func (c *Cursor) Declared() bool { return c.declared }

// ReadBytes returns the next n bytes. The returned slice aliases the
// underlying buffer and must not be modified.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, ErrTruncated
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 || n > c.Remaining() {
		return ErrTruncated
	}
	c.pos += n
	return nil
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Tag reads a 4 byte chunk identifier.
func (c *Cursor) Tag() ([4]byte, error) {
	var id [4]byte
	b, err := c.ReadBytes(4)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// Read implements io.Reader so a Cursor can feed stream based parsers.
func (c *Cursor) Read(p []byte) (int, error) {
	if c.Remaining() == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += n
	return n, nil
}

// Sub splits off the next n bytes as a bounded cursor and advances c past
// them. A request larger than what is left fails with ErrOverrun when c is
// itself bounded by a declared size, and with ErrTruncated otherwise.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if n < 0 || n > c.Remaining() {
		return nil, c.shortErr()
	}
	sub := &Cursor{
		buf:      c.buf[c.pos : c.pos+n : c.pos+n],
		base:     c.Pos(),
		declared: true,
	}
	c.pos += n
	return sub, nil
}

func (c *Cursor) shortErr() error {
	if c.declared {
		return ErrOverrun
	}
	return ErrTruncated
}
