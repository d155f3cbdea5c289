package parameter

import "time"

// Audio hardware
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, trading latency for underruns
	AudioBufferDuration = 50 * time.Millisecond
)

// Collision click
const (
	// MinSoundGap between consecutive clicks
	MinSoundGap = 20 * time.Millisecond

	ClickDuration  = 12 * time.Millisecond
	ClickBaseFreq  = 440.0
	ClickFreqRange = 1320.0
	ClickVolume    = 0.25

	// ClickRateScale is the log collision count reaching the top of the pitch range
	ClickRateScale = 6.0
)
