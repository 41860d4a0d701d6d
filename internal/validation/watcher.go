package validation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultMeasureTimeout bounds a single background measurement
const DefaultMeasureTimeout = 10 * time.Second

// Watcher rechecks overflow in the background after document edits settle.
// Edits that cannot change layout, such as color changes, do not trigger a recheck.
type Watcher struct {
	measurer Measurer
	debounce *Debouncer
	timeout  time.Duration

	mu          sync.Mutex
	fingerprint string
	latest      *OverflowReport
	listeners   []func(OverflowReport)
	unsubscribe func()
}

// NewWatcher creates a watcher. A non-positive delay uses DefaultDebounceDelay.
func NewWatcher(m Measurer, delay time.Duration) *Watcher {
	return &Watcher{
		measurer: m,
		debounce: NewDebouncer(delay),
		timeout:  DefaultMeasureTimeout,
	}
}

// OnReport registers fn to receive every completed report
func (w *Watcher) OnReport(fn func(OverflowReport)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Latest returns the most recent report, if one has completed
func (w *Watcher) Latest() (OverflowReport, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.latest == nil {
		return OverflowReport{}, false
	}
	return *w.latest, true
}

// Attach subscribes the watcher to a store and schedules an initial check
func (w *Watcher) Attach(s *store.Store) {
	unsubscribe := s.Subscribe(func(c store.Change) {
		if c.Kind.AffectsDocument() {
			w.Observe(&c.State.Document)
		}
	})
	w.mu.Lock()
	w.unsubscribe = unsubscribe
	w.mu.Unlock()

	doc := s.ExportResumeData()
	w.Observe(&doc)
}

// Observe schedules a recheck of doc unless its layout is unchanged since the last one
func (w *Watcher) Observe(doc *types.ResumeDocument) {
	fp, err := LayoutFingerprint(doc)
	if err != nil {
		log.Printf("[overflow] failed to fingerprint document: %v", err)
		return
	}

	w.mu.Lock()
	if fp == w.fingerprint {
		w.mu.Unlock()
		return
	}
	w.fingerprint = fp
	w.mu.Unlock()

	snapshot := doc.Clone()
	w.debounce.Schedule(func() { w.run(&snapshot, fp) })
}

// run measures doc. The result is dropped when the document has changed since
// fp was scheduled, so a slow measurement never replaces a newer report.
func (w *Watcher) run(doc *types.ResumeDocument, fp string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	report, err := Check(ctx, w.measurer, doc)
	if err != nil {
		// keep the previous report; a failed measurement says nothing about overflow
		log.Printf("[overflow] %v", err)
		w.mu.Lock()
		if w.fingerprint == fp {
			w.fingerprint = ""
		}
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	if w.fingerprint != fp {
		w.mu.Unlock()
		return
	}
	if report.Overflow {
		log.Printf("[overflow] content %.0fpx exceeds %.0fpx limit for %s", report.ContentHeight, report.Limit, report.PageFormat)
	}
	w.latest = &report
	listeners := make([]func(OverflowReport), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(report)
	}
}

// Stop detaches from the store and drops any pending recheck
func (w *Watcher) Stop() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	w.debounce.Cancel()
}

// LayoutFingerprint hashes the parts of doc that can affect its rendered height
func LayoutFingerprint(doc *types.ResumeDocument) (string, error) {
	d := *doc
	d.Colors = types.ResumeColors{}
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
