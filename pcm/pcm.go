// Package pcm holds decoded audio clips in the interleaved float32 form
// the mixer consumes, and converts arbitrary decoder output into it.
package pcm

import (
	"github.com/pkg/errors"
)

// Clip is a fully decoded audio clip.
//
//	[Data]      = [frame 1] [frame 2] ...
//	[frame *]   = [channel 1] [channel 2] ...
//	[channel *] = [float32] in [-1, 1]
type Clip struct {
	Data       []float32
	Channels   int
	SampleRate int
}

func (c Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// Stereo returns the clip as interleaved stereo at targetRate. Mono input is
// duplicated onto both channels; rate conversion is linear interpolation.
func (c Clip) Stereo(targetRate int) ([]float32, error) {
	if c.SampleRate <= 0 || targetRate <= 0 {
		return nil, errors.Errorf("invalid sample rate (%d -> %d)", c.SampleRate, targetRate)
	}
	switch c.Channels {
	case 1, 2:
	default:
		return nil, errors.Errorf("channel count must be 1 or 2 but was %d", c.Channels)
	}

	stereo := c.Data
	if c.Channels == 1 {
		stereo = make([]float32, 2*len(c.Data))
		for i, v := range c.Data {
			stereo[2*i] = v
			stereo[2*i+1] = v
		}
	}
	if c.SampleRate == targetRate {
		return stereo, nil
	}
	return resampleStereo(stereo, c.SampleRate, targetRate), nil
}

func resampleStereo(in []float32, fromRate, toRate int) []float32 {
	inFrames := len(in) / 2
	if inFrames == 0 {
		return nil
	}
	outFrames := int(int64(inFrames) * int64(toRate) / int64(fromRate))
	if outFrames < 1 {
		outFrames = 1
	}
	out := make([]float32, 2*outFrames)
	step := float64(fromRate) / float64(toRate)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * step
		f0 := int(pos)
		if f0 >= inFrames-1 {
			out[2*i] = in[2*(inFrames-1)]
			out[2*i+1] = in[2*(inFrames-1)+1]
			continue
		}
		frac := float32(pos - float64(f0))
		out[2*i] = in[2*f0]*(1-frac) + in[2*(f0+1)]*frac
		out[2*i+1] = in[2*f0+1]*(1-frac) + in[2*(f0+1)+1]*frac
	}
	return out
}
