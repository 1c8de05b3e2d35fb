// SPDX-License-Identifier: EPL-2.0

package riffio

import (
	"fmt"

	"github.com/go-audio/riff"
)

const (
	// HeaderSize is the size of a chunk tag plus its size field.
	HeaderSize = 8
	// ListTypeSize is the size of the form type following RIFF and LIST headers.
	ListTypeSize = 4
)

var (
	// RIFFID tags the outermost chunk of a RIFF file.
	RIFFID = riff.RiffID
	// ListID tags a container chunk whose body starts with a form type.
	ListID = [4]byte{'L', 'I', 'S', 'T'}
)

// Chunk is a RIFF chunk header. Size excludes the 8 header bytes.
type Chunk struct {
	ID   [4]byte
	Size uint32
}

// Tag returns the chunk identifier as a string.
func (ch Chunk) Tag() string { return string(ch.ID[:]) }

func (ch Chunk) String() string {
	return fmt.Sprintf("%q (%d bytes)", ch.Tag(), ch.Size)
}

// ReadHeader reads the next chunk header from c.
func ReadHeader(c *Cursor) (Chunk, error) {
	if c.Remaining() < HeaderSize {
		return Chunk{}, c.shortErr()
	}
	// the length check above guarantees both header fields are present
	id, size, err := riff.New(c).IDnSize()
	if err != nil {
		return Chunk{}, ErrTruncated
	}
	return Chunk{ID: id, Size: size}, nil
}

// Open reads a chunk header and returns a cursor bounded to its body.
func Open(c *Cursor) (Chunk, *Cursor, error) {
	ch, err := ReadHeader(c)
	if err != nil {
		return ch, nil, err
	}
	if uint64(ch.Size) > uint64(c.Remaining()) {
		return ch, nil, c.shortErr()
	}
	body, err := c.Sub(int(ch.Size))
	if err != nil {
		return ch, nil, err
	}
	return ch, body, nil
}

// OpenList reads a container chunk header plus its form type. The returned
// cursor covers the remaining Size-4 payload bytes.
func OpenList(c *Cursor) (Chunk, [4]byte, *Cursor, error) {
	var form [4]byte
	ch, body, err := Open(c)
	if err != nil {
		return ch, form, nil, err
	}
	if body.Remaining() < ListTypeSize {
		return ch, form, nil, ErrOverrun
	}
	form, err = body.Tag()
	if err != nil {
		return ch, form, nil, err
	}
	return ch, form, body, nil
}

// Each reads child chunks from c until c is exhausted, calling fn with each
// header and a cursor bounded to that child's body. Bytes fn leaves unread
// in a child body are skipped, as is the pad byte after an odd sized body.
// A missing pad byte at the very end of c is tolerated.
func Each(c *Cursor, fn func(Chunk, *Cursor) error) error {
	for c.Remaining() > 0 {
		ch, body, err := Open(c)
		if err != nil {
			return err
		}
		if err := fn(ch, body); err != nil {
			return err
		}
		if ch.Size%2 != 0 && c.Remaining() > 0 {
			if err := c.Skip(1); err != nil {
				return err
			}
		}
	}
	return nil
}
