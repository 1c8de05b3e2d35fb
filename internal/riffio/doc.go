// SPDX-License-Identifier: EPL-2.0

// Package riffio reads RIFF structured data out of an in-memory buffer.
//
// A Cursor is a sequential little-endian reader over a fixed byte slice.
// Chunk headers are framed with github.com/go-audio/riff and every chunk
// body is handed out as a bounded sub-cursor, so a reader can never move
// past the end of the chunk it was given:
//
//	c := riffio.NewCursor(data)
//	hdr, listType, body, err := riffio.OpenList(c)
//	err = riffio.Each(body, func(ch riffio.Chunk, sub *riffio.Cursor) error {
//	    // sub covers exactly ch.Size bytes
//	    return nil
//	})
//
// Reading past the end of the input fails with ErrTruncated. A child chunk
// declaring more bytes than its parent has left fails with ErrOverrun.
package riffio
