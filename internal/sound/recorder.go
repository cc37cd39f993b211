package sound

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder collects beeps against emulation time and writes them as a WAV
// file. Audio is kept in memory until Write so it is only suitable for short
// sessions.
type Recorder struct {
	beep  Sample
	now   time.Duration
	beeps []time.Duration
}

// NewRecorder is the preferred method of initialisation for the Recorder type
func NewRecorder(beep Sample) *Recorder {
	return &Recorder{beep: beep}
}

// Advance moves the recording position forward
func (r *Recorder) Advance(elapsed time.Duration) {
	if elapsed > 0 {
		r.now += elapsed
	}
}

// Beep records a beep at the current position
func (r *Recorder) Beep() {
	r.beeps = append(r.beeps, r.now)
}

// Beeps returns the positions of all recorded beeps
func (r *Recorder) Beeps() []time.Duration {
	return r.beeps
}

// Length returns the length of the recording. The recording is extended so
// that the final beep plays in full.
func (r *Recorder) Length() time.Duration {
	length := r.now
	if n := len(r.beeps); n > 0 {
		if end := r.beeps[n-1] + r.beep.Duration(); end > length {
			length = end
		}
	}
	return length
}

// Write encodes the recording as a mono 16 bit WAV file
func (r *Recorder) Write(w io.WriteSeeker) error {
	rate := r.beep.Rate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	n := int(int64(r.Length()) * int64(rate) / int64(time.Second))
	data := make([]int, n)
	for _, at := range r.beeps {
		start := int(int64(at) * int64(rate) / int64(time.Second))
		for i, v := range r.beep.Data {
			if start+i >= n {
				break
			}
			data[start+i] = int(toInt16(v))
		}
	}

	enc := wav.NewEncoder(w, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("sound: wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sound: wav: %w", err)
	}
	return nil
}
