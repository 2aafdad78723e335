// Package mp3 decodes MP3 byte buffers.
package mp3

import (
	"bytes"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"

	"github.com/Baxi19/soundpool/pcm"
)

func Decode(raw []byte) (pcm.Clip, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return pcm.Clip{}, errors.Wrap(err, "mp3: decoding")
	}
	// go-mp3 always outputs 16-bit little-endian stereo.
	buf, err := io.ReadAll(dec)
	if err != nil {
		return pcm.Clip{}, errors.Wrap(err, "mp3: reading pcm data")
	}
	if len(buf) < 4 {
		return pcm.Clip{}, errors.New("mp3: no pcm data")
	}
	data := make([]float32, len(buf)/2)
	for i := 0; i < len(data); i++ {
		v := int16(buf[2*i]) | int16(buf[2*i+1])<<8
		data[i] = float32(v) / (1 << 15)
	}
	return pcm.Clip{
		Data:       data,
		Channels:   2,
		SampleRate: dec.SampleRate(),
	}, nil
}
