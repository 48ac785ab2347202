package ecs

import (
	"context"
	"math"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	LastPurged      int
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

func (st *SystemStats) record(d time.Duration) {
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// initializer is implemented by Query and Singleton fields.
type initializer interface {
	Init(storage *Storage)
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage *Storage
	systems []System
	stats   []SystemStats

	elapsed    float64
	lastPurged int
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends a system and binds every Query and Singleton field of it
// to the scheduler's storage. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)
	s.stats = append(s.stats, SystemStats{
		Name:        systemName(system),
		MinDuration: math.MaxInt64,
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := range v.NumField() {
		field := v.Field(i)
		if field.Kind() != reflect.Struct || !field.CanAddr() || !field.CanSet() {
			continue
		}
		if f, ok := field.Addr().Interface().(initializer); ok {
			f.Init(s.storage)
		}
	}
}

// Once executes all registered systems once with the given delta time, then
// applies the frame's commands and maintains the storage so that entities
// deleted during the frame are gone before anything renders.
func (s *Scheduler) Once(dt float64) {
	s.elapsed += dt
	frame := newUpdateFrame(dt, s.elapsed, s.storage)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.stats[i].record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
	s.lastPurged = s.storage.Maintain()
}

// Storage returns the storage the scheduler's systems run against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Elapsed returns the summed delta time of every frame run so far.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

// LastPurged returns how many entities the last frame's Maintain removed.
func (s *Scheduler) LastPurged() int {
	return s.lastPurged
}

// Run calls Once every interval with the measured wall-clock delta until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		LastPurged:  s.lastPurged,
		Systems:     make([]SystemStats, len(s.stats)),
	}
	for i, st := range s.stats {
		if st.ExecutionCount == 0 {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
