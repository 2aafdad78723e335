// Package audiotest generates small PCM WAV clips for tests.
package audiotest

import "encoding/binary"

// WAV builds a canonical 44-byte-header 16-bit PCM WAV file. The sample
// generator is called once per frame per channel.
func WAV(sampleRate, channels, frames int, sample func(frame, channel int) int16) []byte {
	bitsPerSample := uint16(16)
	byteRate := uint32(sampleRate) * uint32(channels) * uint32(bitsPerSample/8)
	blockAlign := uint16(channels) * uint16(bitsPerSample/8)
	dataSize := uint32(frames * channels * 2)

	out := make([]byte, 44+int(dataSize))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1)
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)

	pos := 44
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint16(out[pos:pos+2], uint16(sample(f, c)))
			pos += 2
		}
	}
	return out
}

// ConstWAV builds a stereo clip where every sample has the given amplitude.
func ConstWAV(sampleRate, frames int, amplitude int16) []byte {
	return WAV(sampleRate, 2, frames, func(int, int) int16 { return amplitude })
}
