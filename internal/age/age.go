package age

import "time"

// AgeData computes how long ago then was and whether timing data exists.
// Times in the future count as zero age.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	age := now.Sub(then)
	if age < 0 {
		age = 0
	}
	return age, true
}
