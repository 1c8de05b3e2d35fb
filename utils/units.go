// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SoundFont generator amounts are stored in logarithmic units. These helpers
// turn them into plain seconds, hertz and decibels.

// TimecentsToSeconds converts an envelope or LFO delay in timecents.
// The minimum amount -32768 means zero time.
func TimecentsToSeconds(tc int16) float64 {
	if tc == math.MinInt16 {
		return 0
	}
	return math.Exp2(float64(tc) / 1200)
}

// AbsoluteCentsToHz converts a frequency in absolute cents, where 6900
// cents is 440 Hz.
func AbsoluteCentsToHz(cents int16) float64 {
	return 8.176 * math.Exp2(float64(cents)/1200)
}

// CentibelsToDecibels converts an attenuation in centibels.
func CentibelsToDecibels(cb int16) float64 {
	return float64(cb) / 10
}

// CentibelsToGain converts an attenuation in centibels to a linear
// amplitude factor in (0, 1].
func CentibelsToGain(cb int16) float64 {
	if cb <= 0 {
		return 1
	}
	return math.Pow(10, -float64(cb)/200)
}
