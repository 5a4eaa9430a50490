package handler

import "time"

func minutesToDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

func durationToMinutes(d time.Duration) int {
	return int(d / time.Minute)
}
