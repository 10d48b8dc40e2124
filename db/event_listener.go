package db

import "time"

type EventListener interface {
	// OnIO is called after a point read or an iterator creation on col. start is
	// when the operation began.
	OnIO(col Column, start time.Time)
}

type SelectiveListener struct {
	OnIOCb func(col Column, duration time.Duration)
}

func (l *SelectiveListener) OnIO(col Column, start time.Time) {
	if l.OnIOCb != nil {
		l.OnIOCb(col, time.Since(start))
	}
}
