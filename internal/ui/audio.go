package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundPromote
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager handles sound effect playback. Sounds are synthesized at
// startup; nothing is loaded from disk.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager(enabled bool, volume float64) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
	}
	am.SetVolume(volume)

	am.sounds[SoundMove] = click(440, 0.08, 0.3)
	am.sounds[SoundCapture] = click(330, 0.12, 0.5)
	am.sounds[SoundCheck] = tone(880, 0.15, 0.4)
	am.sounds[SoundCastle] = concat(click(400, 0.06, 0.3), silence(0.05), click(440, 0.06, 0.24))
	am.sounds[SoundPromote] = concat(tone(523.25, 0.08, 0.3), tone(783.99, 0.12, 0.3))
	am.sounds[SoundInvalid] = buzz(150, 0.1, 0.3)
	am.sounds[SoundGameEnd] = chord([]float64{261.63, 329.63, 392.00}, 0.4, 0.5)
	return am
}

// synth renders duration seconds of wave(t, progress) as 16-bit stereo PCM.
func synth(duration float64, wave func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		val := int16(math.Max(-1, math.Min(1, wave(t, t/duration))) * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// click is a short percussive wood-on-wood sound.
func click(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, _ float64) float64 {
		envelope := math.Exp(-t * 30)
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * envelope * amplitude
	})
}

// tone has a short attack and a linear decay.
func tone(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0 - (progress-0.1)/0.9
		if progress < 0.1 {
			envelope = progress / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * envelope * amplitude
	})
}

func buzz(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1.0 - progress) * amplitude * 0.5
	})
}

func chord(freqs []float64, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0
		if progress < 0.1 {
			envelope = progress / 0.1
		} else if progress > 0.7 {
			envelope = (1.0 - progress) / 0.3
		}
		sample := 0.0
		for _, f := range freqs {
			sample += math.Sin(2 * math.Pi * f * t)
		}
		return sample / float64(len(freqs)) * envelope * amplitude
	})
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	// A new player per call lets sounds overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume sets the audio volume, clamped to 0..1.
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}

// Volume returns the playback volume.
func (am *AudioManager) Volume() float64 {
	return am.volume
}
