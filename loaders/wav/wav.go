// Package wav decodes WAV (RIFF) byte buffers.
package wav

import (
	"bytes"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/Baxi19/soundpool/pcm"
)

func Decode(raw []byte) (pcm.Clip, error) {
	d := wav.NewDecoder(bytes.NewReader(raw))
	if !d.IsValidFile() {
		return pcm.Clip{}, errors.New("wav: not a RIFF/WAVE file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return pcm.Clip{}, errors.Wrap(err, "wav: reading pcm data")
	}
	return clipFromBuffer(buf)
}

func clipFromBuffer(buf *gaudio.IntBuffer) (pcm.Clip, error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return pcm.Clip{}, errors.New("wav: no pcm data")
	}
	f := buf.AsFloat32Buffer()
	// AsFloat32Buffer converts without normalizing; scale to [-1, 1]
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))
	for i := range f.Data {
		f.Data[i] /= scale
	}
	return pcm.Clip{
		Data:       f.Data,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}, nil
}
