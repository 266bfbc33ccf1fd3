package internal

import "time"

const (
	formatEndTime = "02.01.2006 15:04 MST"
)

func Format(date time.Time) string {
	return date.Format(formatEndTime)
}
