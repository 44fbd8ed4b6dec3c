package utils

import "time"

// EpochHeight returns the number of whole epochs elapsed between genesis and now.
// Times before genesis map to epoch 0.
func EpochHeight(now, genesis time.Time, epochDuration time.Duration) uint64 {
	if epochDuration <= 0 || !now.After(genesis) {
		return 0
	}
	return uint64(now.Sub(genesis) / epochDuration)
}

// MaxTime returns the later of two times
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
