// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package event provides the typed change notifications of the
// dispatch log. A notification carries no data. Subscribers pull a
// fresh snapshot from the use case after being notified, so they can
// never observe a stale payload.
package event

import "sync"

// DataUpdated is published after the reference data is persisted.
type DataUpdated struct{}

// LogUpdated is published after the dispatch log is persisted.
type LogUpdated struct{}

type subscriber[E any] struct {
	id int
	f  func(E)
}

// Topic delivers events of type E to its subscribers synchronously,
// in their registration order. The zero value is ready to be used.
type Topic[E any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[E]
}

// Subscribe registers f and returns a function which unregisters it.
// Calling the returned function more than once has no effect.
func (t *Topic[E]) Subscribe(f func(E)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, subscriber[E]{id: id, f: f})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls all subscribers with e. Subscribers are called without
// holding the topic lock, so they may subscribe or unsubscribe.
func (t *Topic[E]) Publish(e E) {
	t.mu.Lock()
	subs := make([]subscriber[E], len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()
	for _, s := range subs {
		s.f(e)
	}
}

// Len returns the number of current subscribers.
func (t *Topic[E]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Bus groups the topics of the dispatch log.
type Bus struct {
	DataUpdated Topic[DataUpdated]
	LogUpdated  Topic[LogUpdated]
}

// NewBus instantiates a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}
