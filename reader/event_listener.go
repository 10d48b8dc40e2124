package reader

import "github.com/NethermindEth/makimono/db"

type EventListener interface {
	// OnLookup is called after every point read, found is false for missing keys
	// and for values that did not decode.
	OnLookup(col db.Column, found bool)
	OnDecodeFailure(col db.Column)
}

type SelectiveListener struct {
	OnLookupCb        func(col db.Column, found bool)
	OnDecodeFailureCb func(col db.Column)
}

func (l *SelectiveListener) OnLookup(col db.Column, found bool) {
	if l.OnLookupCb != nil {
		l.OnLookupCb(col, found)
	}
}

func (l *SelectiveListener) OnDecodeFailure(col db.Column) {
	if l.OnDecodeFailureCb != nil {
		l.OnDecodeFailureCb(col)
	}
}
