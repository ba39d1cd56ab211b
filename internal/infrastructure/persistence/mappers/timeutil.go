package mappers

import "time"

// Timestamps are stored as Unix milliseconds. Nil pointers stay nil.

func milliToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}

func milliPtrToTime(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := milliToTime(*millis)
	return &t
}

func timePtrToMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	m := t.UnixMilli()
	return &m
}
