package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/validation"
)

// Event is pushed to a session's stream subscribers
type Event struct {
	Name string
	Data any
}

// ChangeEvent is the payload of a "change" event
type ChangeEvent struct {
	Kind  store.ChangeKind `json:"kind"`
	State store.State      `json:"state"`
}

const subscriberBuffer = 16

// Session is one in-memory editing session: a store with an overflow watcher
type Session struct {
	ID        string
	Store     *store.Store
	Watcher   *validation.Watcher
	CreatedAt time.Time

	mu          sync.Mutex
	lastSeen    time.Time
	subscribers map[int]chan Event
	nextSub     int
	closed      bool
	unsubscribe func()
}

func newSession(id string, measurer validation.Measurer, debounce time.Duration, onReport func(validation.OverflowReport)) *Session {
	now := time.Now()
	s := &Session{
		ID:          id,
		Store:       store.New(),
		Watcher:     validation.NewWatcher(measurer, debounce),
		CreatedAt:   now,
		lastSeen:    now,
		subscribers: make(map[int]chan Event),
	}

	s.unsubscribe = s.Store.Subscribe(func(c store.Change) {
		s.publish(Event{Name: "change", Data: ChangeEvent{Kind: c.Kind, State: c.State}})
	})
	s.Watcher.OnReport(func(r validation.OverflowReport) {
		if onReport != nil {
			onReport(r)
		}
		s.publish(Event{Name: "overflow", Data: r})
	})
	s.Watcher.Attach(s.Store)
	return s
}

// Subscribe returns a channel of session events and a cancel func. Slow
// subscribers miss events rather than block the store.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
		})
	}
}

func (s *Session) publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- e:
		default:
			log.Printf("[sessions] %s: subscriber too slow, dropped %s event", s.ID, e.Name)
		}
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// close stops the watcher and ends every subscription
func (s *Session) close() {
	s.Watcher.Stop()
	s.unsubscribe()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

// SessionConfig bounds the registry
type SessionConfig struct {
	IdleTTL     time.Duration
	MaxSessions int
	Debounce    time.Duration
	Measurer    validation.Measurer
	OnReport    func(validation.OverflowReport)
	OnCount     func(int)
}

// SessionRegistry holds the live sessions and expires idle ones
type SessionRegistry struct {
	cfg SessionConfig

	mu       sync.RWMutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionRegistry creates a registry and starts its janitor
func NewSessionRegistry(cfg SessionConfig) *SessionRegistry {
	if cfg.Measurer == nil {
		cfg.Measurer = validation.EstimateMeasurer{}
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	r := &SessionRegistry{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	if cfg.IdleTTL > 0 {
		go r.janitor(max(cfg.IdleTTL/4, time.Second))
	}
	return r
}

// Create starts a new session
func (r *SessionRegistry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.cfg.MaxSessions {
		return nil, &ErrTooManySessions{Max: r.cfg.MaxSessions}
	}
	s := newSession(uuid.NewString(), r.cfg.Measurer, r.cfg.Debounce, r.cfg.OnReport)
	r.sessions[s.ID] = s
	r.reportCount()
	log.Printf("[sessions] created %s (%d active)", s.ID, len(r.sessions))
	return s, nil
}

// Get returns a session and marks it used
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	s.touch(time.Now())
	return s, nil
}

// Delete ends a session
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.reportCount()
	r.mu.Unlock()

	if !ok {
		return &ErrSessionNotFound{ID: id}
	}
	s.close()
	return nil
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Expire ends sessions idle since before cutoff and returns how many were removed
func (r *SessionRegistry) Expire(cutoff time.Time) int {
	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.reportCount()
	r.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		log.Printf("[sessions] expired %d idle sessions", len(expired))
	}
	return len(expired)
}

func (r *SessionRegistry) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Expire(time.Now().Add(-r.cfg.IdleTTL))
		case <-r.stop:
			return
		}
	}
}

// reportCount must be called with r.mu held
func (r *SessionRegistry) reportCount() {
	if r.cfg.OnCount != nil {
		r.cfg.OnCount(len(r.sessions))
	}
}

// Close ends every session and stops the janitor
func (r *SessionRegistry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.reportCount()
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
