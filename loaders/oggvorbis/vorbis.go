// Package oggvorbis decodes Ogg Vorbis byte buffers.
package oggvorbis

import (
	"bytes"

	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"

	"github.com/Baxi19/soundpool/pcm"
)

func Decode(raw []byte) (pcm.Clip, error) {
	data, format, err := oggvorbis.ReadAll(bytes.NewReader(raw))
	if err != nil {
		return pcm.Clip{}, errors.Wrap(err, "oggvorbis: decoding")
	}
	if len(data) == 0 {
		return pcm.Clip{}, errors.New("oggvorbis: no pcm data")
	}
	return pcm.Clip{
		Data:       data,
		Channels:   format.Channels,
		SampleRate: format.SampleRate,
	}, nil
}
