// Package sound produces the audio that hosts play or record when the
// machine raises a beep: a generated square wave tone, or a sample loaded
// from a WAV or MP3 file.
package sound

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Tone defaults
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440.0
	DefaultDuration   = 100 * time.Millisecond
)

// Sample is mono PCM audio with values in the range -1.0 to 1.0
type Sample struct {
	Rate int
	Data []float32
}

// Duration returns the playing time of the sample
func (s Sample) Duration() time.Duration {
	if s.Rate <= 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// PCM16 converts the sample to signed 16 bit little endian bytes
func (s Sample) PCM16() []byte {
	b := make([]byte, len(s.Data)*2)
	for i, v := range s.Data {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(toInt16(v)))
	}
	return b
}

func toInt16(v float32) int16 {
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return int16(v * math.MaxInt16)
}

// Tone generates a square wave at freq Hz lasting for duration
func Tone(rate int, duration time.Duration, freq float64) Sample {
	n := int(int64(rate) * int64(duration) / int64(time.Second))
	s := Sample{
		Rate: rate,
		Data: make([]float32, n),
	}

	const volume = 0.25
	period := float64(rate) / freq
	for i := range s.Data {
		if math.Mod(float64(i), period) < period/2 {
			s.Data[i] = volume
		} else {
			s.Data[i] = -volume
		}
	}
	return s
}

// LoadSample decodes a WAV or MP3 file. Only the first channel of
// multi-channel audio is kept.
func LoadSample(filename string) (Sample, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Sample{}, fmt.Errorf("sound: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decodeWav(f)
	case ".mp3":
		return decodeMp3(f)
	}
	return Sample{}, fmt.Errorf("sound: unsupported file type %q", filepath.Ext(filename))
}

func decodeWav(r io.ReadSeeker) (Sample, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return Sample{}, fmt.Errorf("sound: wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("sound: wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}
	scale := float32(math.Pow(2, float64(dec.BitDepth)-1))
	if scale <= 0 {
		scale = 1
	}

	s := Sample{
		Rate: int(dec.SampleRate),
		Data: make([]float32, 0, len(floatBuf.Data)/chans),
	}
	for i := 0; i < len(floatBuf.Data); i += chans {
		s.Data = append(s.Data, floatBuf.Data[i]/scale)
	}
	return s, nil
}

func decodeMp3(r io.Reader) (Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Sample{}, fmt.Errorf("sound: mp3: %w", err)
	}

	s := Sample{
		Rate: dec.SampleRate(),
	}

	// the decoded stream is always 16 bit little endian, two channels. four
	// bytes per frame; keep the left channel
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int16(binary.LittleEndian.Uint16(chunk[i:]))
			s.Data = append(s.Data, float32(v)/math.MaxInt16)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return Sample{}, fmt.Errorf("sound: mp3: %w", err)
		}
	}
	return s, nil
}
