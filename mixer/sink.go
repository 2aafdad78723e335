package mixer

import "time"

// Source is the pull side of the engine. ReadFloat32s fills buf with the
// next mixed interleaved stereo samples.
type Source interface {
	ReadFloat32s(buf []float32)
}

// Sink consumes mixed audio. The engine starts its sink once at creation and
// closes it on Release.
type Sink interface {
	Start(src Source, sampleRate, channelCount int)
	Close()
}

// NewNullSink returns a sink that discards samples at realtime rate. Stream
// positions keep advancing without an output device, which is all the pool
// layer needs; an OS-backed sink can be dropped in through Options.Sink.
func NewNullSink() Sink {
	return &nullSink{done: make(chan struct{})}
}

type nullSink struct {
	done chan struct{}
}

func (s *nullSink) Start(src Source, sampleRate, channelCount int) {
	go func() {
		var buf [4096]float32
		sleep := time.Duration(float64(time.Second) * float64(len(buf)) / float64(channelCount) / float64(sampleRate))
		for {
			select {
			case <-s.done:
				return
			default:
			}
			src.ReadFloat32s(buf[:])
			time.Sleep(sleep)
		}
	}()
}

func (s *nullSink) Close() {
	close(s.done)
}
