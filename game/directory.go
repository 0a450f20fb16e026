package game

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Directory owns the live sessions, keyed by room code. Creation and
// destruction are tied to the host connection's lifetime.
type Directory struct {
	locker   sync.RWMutex
	sessions map[string]*Session
	codes    *CodeGenerator
	words    *WordSource
	timers   TimerFactory
}

func NewDirectory(words *WordSource, timers TimerFactory) *Directory {
	return &Directory{
		sessions: make(map[string]*Session),
		codes:    NewCodeGenerator(),
		words:    words,
		timers:   timers,
	}
}

// Create registers a new session under a fresh room code and starts its
// actor. The code generator guarantees uniqueness among live rooms, so a
// collision here means the bookkeeping is broken.
func (d *Directory) Create(host *Host, settings Settings) (*Session, error) {
	code := d.codes.Generate()

	d.locker.Lock()
	if _, exists := d.sessions[code]; exists {
		d.locker.Unlock()
		d.codes.Dispose(code)
		return nil, ErrRoomExists
	}
	session := NewSession(code, host, settings, d.words, d.timers)
	d.sessions[code] = session
	d.locker.Unlock()

	go session.Run()

	log.Info().Str("room", code).Msg("room created")
	return session, nil
}

func (d *Directory) Lookup(code string) (*Session, bool) {
	d.locker.RLock()
	defer d.locker.RUnlock()
	session, ok := d.sessions[code]
	return session, ok
}

// Remove destroys a session: unregisters it, recycles its code, and
// closes the actor, which cancels the timer and kicks every participant.
func (d *Directory) Remove(code string) {
	d.locker.Lock()
	session, ok := d.sessions[code]
	delete(d.sessions, code)
	d.locker.Unlock()

	if !ok {
		return
	}

	d.codes.Dispose(code)
	session.Close()
	log.Info().Str("room", code).Msg("room destroyed")
}

func (d *Directory) Count() int {
	d.locker.RLock()
	defer d.locker.RUnlock()
	return len(d.sessions)
}
