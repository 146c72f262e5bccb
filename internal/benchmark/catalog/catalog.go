package catalog

import (
	"strings"
	"sync/atomic"
	"time"

	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/metrics"
)

// Snapshot is an immutable set of benchmark records per kind. Matching runs
// against one snapshot; a refresh builds a new snapshot instead of editing.
type Snapshot struct {
	records  map[model.Kind][]model.Record
	source   string
	loadedAt time.Time
}

func NewSnapshot(source string, records map[model.Kind][]model.Record) *Snapshot {
	cp := make(map[model.Kind][]model.Record, len(records))
	for k, recs := range records {
		cp[k] = append([]model.Record(nil), recs...)
	}
	return &Snapshot{records: cp, source: source, loadedAt: time.Now()}
}

// Records returns the records of one kind. Callers must not modify the slice.
func (s *Snapshot) Records(kind model.Kind) []model.Record {
	if s == nil {
		return nil
	}
	return s.records[kind]
}

// With returns a new snapshot where kind is replaced by recs; s is left untouched.
func (s *Snapshot) With(source string, kind model.Kind, recs []model.Record) *Snapshot {
	next := make(map[model.Kind][]model.Record, len(model.Kinds))
	if s != nil {
		for k, v := range s.records {
			next[k] = v
		}
	}
	next[kind] = append([]model.Record(nil), recs...)
	return &Snapshot{records: next, source: source, loadedAt: time.Now()}
}

func (s *Snapshot) Info() model.CatalogInfo {
	info := model.CatalogInfo{Counts: make(map[model.Kind]int, len(model.Kinds))}
	if s == nil {
		return info
	}
	for _, k := range model.Kinds {
		info.Counts[k] = len(s.records[k])
	}
	info.Source = s.source
	info.LoadedAt = s.loadedAt
	return info
}

// Store holds the active snapshot. Readers always see a whole snapshot,
// either the previous one or the new one.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	st := &Store{}
	if initial == nil {
		initial = NewSnapshot("empty", nil)
	}
	st.Swap(initial)
	return st
}

func (st *Store) Snapshot() *Snapshot { return st.cur.Load() }

// Swap installs next as the active snapshot.
func (st *Store) Swap(next *Snapshot) {
	st.cur.Store(next)
	publish(next)
}

func publish(next *Snapshot) {
	label := next.source
	if i := strings.IndexByte(label, ':'); i > 0 {
		label = label[:i] // "upload:cpu.xlsx" -> "upload"
	}
	metrics.CatalogReloads.WithLabelValues(label).Inc()
	for _, k := range model.Kinds {
		metrics.CatalogRecords.WithLabelValues(string(k)).Set(float64(len(next.records[k])))
	}
}

// Replace swaps in a copy of the current snapshot with one kind replaced.
// Concurrent Replace calls for different kinds do not lose each other's update.
func (st *Store) Replace(source string, kind model.Kind, recs []model.Record) *Snapshot {
	for {
		old := st.cur.Load()
		next := old.With(source, kind, recs)
		if st.cur.CompareAndSwap(old, next) {
			publish(next)
			return next
		}
	}
}
