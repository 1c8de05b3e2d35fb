// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"github.com/ik5/soundfont/internal/riffio"
	"github.com/pkg/errors"
)

type record interface {
	validate() error
}

// readTable decodes a terminated record table: size/width-1 real records
// followed by one sentinel record. The sentinel is returned separately and
// is never validated.
func readTable[T record](c *riffio.Cursor, ch riffio.Chunk, width int, parse func([]byte) T) ([]T, T, error) {
	var sentinel T
	if ch.Size == 0 || ch.Size%uint32(width) != 0 {
		return nil, sentinel, errors.Wrapf(ErrMalformedChunk,
			"%s size %d is not a whole number of %d byte records", ch.Tag(), ch.Size, width)
	}

	n := int(ch.Size)/width - 1
	recs := make([]T, 0, n)
	for i := range n {
		b, err := c.ReadBytes(width)
		if err != nil {
			return nil, sentinel, errors.Wrapf(err, "%s record %d", ch.Tag(), i)
		}
		rec := parse(b)
		if err := rec.validate(); err != nil {
			return nil, sentinel, errors.Wrapf(err, "%s record %d", ch.Tag(), i)
		}
		recs = append(recs, rec)
	}

	b, err := c.ReadBytes(width)
	if err != nil {
		return nil, sentinel, errors.Wrapf(err, "%s terminal record", ch.Tag())
	}
	return recs, parse(b), nil
}
