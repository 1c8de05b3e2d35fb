// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"bytes"
	"io"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"

	sfaudio "github.com/ik5/soundfont/audio"
	"github.com/ik5/soundfont/utils"
)

// CodecOgg is the registry key OpenSample uses for compressed sample data.
const CodecOgg = "ogg"

// Sample returns the header of sample i.
func (b *Bank) Sample(i int) (SampleHeader, error) {
	if i < 0 || i >= len(b.Samples) {
		return SampleHeader{}, errors.Wrapf(ErrNoSuchSample, "sample %d of %d", i, len(b.Samples))
	}
	return b.Samples[i], nil
}

// pcm returns the 16-bit frames of sample i, aliasing SampleData.
func (b *Bank) pcm(i int) (SampleHeader, []int16, error) {
	s, err := b.Sample(i)
	if err != nil {
		return s, nil, err
	}
	if s.Type.IsROM() {
		return s, nil, errors.Wrapf(ErrROMSample, "sample %d %q", i, s.Name)
	}
	if s.Type.IsCompressed() {
		return s, nil, errors.Wrapf(ErrCompressedSample, "sample %d %q", i, s.Name)
	}
	if s.End < s.Start || uint64(s.End) > uint64(len(b.SampleData)) {
		return s, nil, errors.Wrapf(ErrSampleOutOfRange, "sample %d %q spans %d..%d of %d frames",
			i, s.Name, s.Start, s.End, len(b.SampleData))
	}
	return s, b.SampleData[s.Start:s.End:s.End], nil
}

// SampleBuffer copies sample i into a mono 16-bit buffer.
func (b *Bank) SampleBuffer(i int) (*audio.IntBuffer, error) {
	s, pcm, err := b.pcm(i)
	if err != nil {
		return nil, err
	}
	data := make([]int, len(pcm))
	for j, v := range pcm {
		data[j] = int(v)
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(s.SampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}

// LinkedBuffer interleaves sample i with its linked partner into a stereo
// buffer, left channel first. Sample i may be either half of the pair.
// The result is as long as the shorter of the two.
func (b *Bank) LinkedBuffer(i int) (*audio.IntBuffer, error) {
	s, err := b.Sample(i)
	if err != nil {
		return nil, err
	}
	left, right := i, int(s.SampleLink)
	switch s.Type.Link() {
	case LeftSample:
	case RightSample:
		left, right = right, left
	default:
		return nil, errors.Wrapf(ErrNotStereo, "sample %d %q is %v", i, s.Name, s.Type)
	}

	_, l, err := b.pcm(left)
	if err != nil {
		return nil, errors.Wrap(err, "left channel")
	}
	_, r, err := b.pcm(right)
	if err != nil {
		return nil, errors.Wrap(err, "right channel")
	}

	n := min(len(l), len(r))
	data := make([]int, 2*n)
	for j := range n {
		data[2*j] = int(l[j])
		data[2*j+1] = int(r[j])
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: int(s.SampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}

// OpenSample returns sample i as a streaming mono source. Compressed samples
// are decoded with the codec registered under CodecOgg in codecs; codecs
// may be nil for banks without compressed samples.
func OpenSample(b *Bank, i int, codecs *sfaudio.Registry) (sfaudio.Source, error) {
	s, err := b.Sample(i)
	if err != nil {
		return nil, err
	}
	if s.Type.IsCompressed() && !s.Type.IsROM() {
		return openCompressed(b, i, s, codecs)
	}
	_, pcm, err := b.pcm(i)
	if err != nil {
		return nil, err
	}
	return &pcmSource{pcm: pcm, sampleRate: int(s.SampleRate), bufSize: 4096}, nil
}

// openCompressed decodes an Ogg stream stored in the smpl chunk. For
// compressed samples Start and End are byte offsets into the chunk.
func openCompressed(b *Bank, i int, s SampleHeader, codecs *sfaudio.Registry) (sfaudio.Source, error) {
	if codecs == nil {
		return nil, errors.Wrapf(ErrNoCodec, "sample %d %q", i, s.Name)
	}
	dec, ok := codecs.Get(CodecOgg)
	if !ok {
		return nil, errors.Wrapf(ErrNoCodec, "sample %d %q", i, s.Name)
	}
	if s.End < s.Start || uint64(s.End) > 2*uint64(len(b.SampleData)) {
		return nil, errors.Wrapf(ErrSampleOutOfRange, "sample %d %q spans bytes %d..%d of %d",
			i, s.Name, s.Start, s.End, 2*len(b.SampleData))
	}
	raw := make([]byte, 2*len(b.SampleData))
	for j, v := range b.SampleData {
		raw[2*j] = byte(v)
		raw[2*j+1] = byte(uint16(v) >> 8)
	}
	src, err := dec.Decode(bytes.NewReader(raw[s.Start:s.End]))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sample %d %q", i, s.Name)
	}
	return src, nil
}

// pcmSource streams 16-bit frames as float32 samples.
type pcmSource struct {
	pcm        []int16
	pos        int
	sampleRate int
	bufSize    int
}

func (s *pcmSource) SampleRate() int { return s.sampleRate }
func (s *pcmSource) Channels() int   { return 1 }
func (s *pcmSource) BufSize() int    { return s.bufSize }
func (s *pcmSource) Close() error    { return nil }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.pos >= len(s.pcm) {
		return 0, io.EOF
	}
	n := utils.Int16sToFloat32(dst, s.pcm[s.pos:])
	s.pos += n
	return n, nil
}
