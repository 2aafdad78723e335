// Package mixer provides the audio-mixing resource a sound pool manages:
// decoding clips into memory, playing a bounded number of concurrent streams
// with per-stream stereo gain and playback rate, and delivering asynchronous
// load-complete notifications on a single goroutine.
package mixer

import "io"

// LoadCompleteFunc receives the sound id of a finished load and a status
// code (0 = success). It always fires on one fixed internal goroutine.
type LoadCompleteFunc func(soundID, status int32)

// Mixer is the resource a pool instance exclusively owns. Implementations
// reject loads issued after Release with a negative id and silently ignore
// control calls addressing unknown stream ids.
type Mixer interface {
	SetLoadCompleteListener(fn LoadCompleteFunc)

	// LoadPath reads and decodes the clip at path. It returns the assigned
	// sound id, or a negative value if the load was rejected synchronously.
	// Decoding continues in the background; the result arrives through the
	// load-complete listener.
	LoadPath(path string, priority int) int32

	// LoadDescriptor decodes length bytes starting at offset of r, with the
	// same contract as LoadPath.
	LoadDescriptor(r io.ReaderAt, offset, length int64, priority int) int32

	// Play starts a stream for a loaded sound. It returns the new stream id,
	// or 0 if the stream could not start.
	Play(soundID int32, leftVolume, rightVolume float32, loop int, rate float32) int32

	Pause(streamID int32)
	Resume(streamID int32)
	Stop(streamID int32)
	SetVolume(streamID int32, left, right float32)
	SetRate(streamID int32, rate float32)

	// Release tears the mixer down. All sounds and streams are dropped, the
	// listener never fires again, and later loads return -1.
	Release()
}
