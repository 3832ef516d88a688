package session

import "github.com/verte-zerg/shadow/internal/catalog"

// Listener receives session events. Callbacks run inside the clock's
// scheduling domain and must not block.
type Listener interface {
	OnComboChanged(drill catalog.Drill)
	OnProgress(fraction float64)
	OnComplete()
}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	ComboChanged func(catalog.Drill)
	Progress     func(float64)
	Complete     func()
}

// OnComboChanged implements Listener.
func (l ListenerFuncs) OnComboChanged(drill catalog.Drill) {
	if l.ComboChanged != nil {
		l.ComboChanged(drill)
	}
}

// OnProgress implements Listener.
func (l ListenerFuncs) OnProgress(fraction float64) {
	if l.Progress != nil {
		l.Progress(fraction)
	}
}

// OnComplete implements Listener.
func (l ListenerFuncs) OnComplete() {
	if l.Complete != nil {
		l.Complete()
	}
}
