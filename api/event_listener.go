package api

import "time"

type EventListener interface {
	// OnRequest is called once a request has been answered. route is the
	// matched route pattern, or "unmatched".
	OnRequest(route string, status int, took time.Duration)
}

type SelectiveListener struct {
	OnRequestCb func(route string, status int, took time.Duration)
}

func (l *SelectiveListener) OnRequest(route string, status int, took time.Duration) {
	if l.OnRequestCb != nil {
		l.OnRequestCb(route, status, took)
	}
}
