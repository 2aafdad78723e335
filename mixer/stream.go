package mixer

type stream struct {
	id     int32
	data   []float32 // interleaved stereo at the engine sample rate
	pos    float64   // frame position, fractional when rate != 1
	left   float32
	right  float32
	rate   float32
	loop   int // -1 = infinite, otherwise remaining repeats
	paused bool
}

// mix adds the stream's next samples into buf (interleaved stereo) and
// reports whether the stream finished playing.
func (s *stream) mix(buf []float32) (done bool) {
	if s.paused {
		return false
	}
	frames := len(s.data) / 2
	if frames == 0 {
		return true
	}
	for i := 0; i+1 < len(buf); i += 2 {
		fi := int(s.pos)
		if fi >= frames {
			if s.loop == 0 {
				return true
			}
			if s.loop > 0 {
				s.loop--
			}
			s.pos -= float64(frames)
			fi = int(s.pos)
			if fi >= frames {
				s.pos = 0
				fi = 0
			}
		}
		buf[i] += s.data[2*fi] * s.left
		buf[i+1] += s.data[2*fi+1] * s.right
		s.pos += float64(s.rate)
	}
	return false
}
