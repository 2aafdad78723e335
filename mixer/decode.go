package mixer

import (
	"bytes"

	"github.com/Baxi19/soundpool/loaders/mp3"
	"github.com/Baxi19/soundpool/loaders/oggvorbis"
	"github.com/Baxi19/soundpool/loaders/wav"
	"github.com/Baxi19/soundpool/pcm"
)

var (
	riffMagic = []byte("RIFF")
	oggMagic  = []byte("OggS")
)

// decodeClip sniffs the container magic and dispatches to the matching
// loader. Anything that is neither RIFF nor Ogg is attempted as MP3, which
// covers both ID3-tagged and bare-frame files.
func decodeClip(raw []byte) (pcm.Clip, error) {
	switch {
	case len(raw) >= 4 && bytes.Equal(raw[:4], riffMagic):
		return wav.Decode(raw)
	case len(raw) >= 4 && bytes.Equal(raw[:4], oggMagic):
		return oggvorbis.Decode(raw)
	default:
		return mp3.Decode(raw)
	}
}
