package audio

import (
	"fmt"
	"math"
)

// BakeRequest selects the band and envelope follower of one bake.
type BakeRequest struct {
	Band    Band
	Attack  float64 // seconds
	Release float64 // seconds
}

// Keyframe is one sample of an animation curve.
type Keyframe struct {
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

// Baker turns a frequency band of an audio file into an amplitude curve
// sampled once per animation frame.
type Baker struct {
	FrameStart int
	cache      *SpectrumCache
}

// NewBaker creates a baker sampling at fps with fftSize analysis windows.
func NewBaker(fps, fftSize int) *Baker {
	return &Baker{
		FrameStart: 1,
		cache:      NewSpectrumCache(fps, fftSize),
	}
}

// Cache exposes the baker's spectrum cache.
func (b *Baker) Cache() *SpectrumCache {
	return b.cache
}

// Bake returns the envelope of req.Band in filename, one keyframe per frame
// starting at FrameStart.
func (b *Baker) Bake(filename string, req BakeRequest) ([]Keyframe, error) {
	if req.Band.High <= req.Band.Low {
		return nil, fmt.Errorf("invalid band %.2f-%.2f Hz", req.Band.Low, req.Band.High)
	}

	spec, err := b.cache.Get(filename)
	if err != nil {
		return nil, err
	}

	envelope := FollowEnvelope(spec.BandSeries(req.Band), spec.FPS, req.Attack, req.Release)

	keys := make([]Keyframe, len(envelope))
	for i, v := range envelope {
		keys[i] = Keyframe{Frame: b.FrameStart + i, Value: v}
	}
	return keys, nil
}

// FollowEnvelope smooths a per-frame amplitude series with separate rise
// (attack) and fall (release) time constants in seconds. A zero time
// constant follows the input immediately.
func FollowEnvelope(series []float64, fps int, attack, release float64) []float64 {
	attackCoef := smoothingCoefficient(attack, fps)
	releaseCoef := smoothingCoefficient(release, fps)

	out := make([]float64, len(series))
	var env float64
	for i, v := range series {
		coef := releaseCoef
		if v > env {
			coef = attackCoef
		}
		env = v + coef*(env-v)
		out[i] = env
	}
	return out
}

func smoothingCoefficient(seconds float64, fps int) float64 {
	if seconds <= 0 || fps <= 0 {
		return 0
	}
	return math.Exp(-1 / (seconds * float64(fps)))
}
