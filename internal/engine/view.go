package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Snapshot is the state a renderer consumes: the accepted input and the
// summary computed from it.
type Snapshot struct {
	Input   string
	Summary Summary
}

// Compute validates input and derives a snapshot for the given clock reading.
func Compute(input string, clock Clock) (Snapshot, error) {
	birth, err := ParseBirthDate(input)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Input:   FormatBirthDate(birth),
		Summary: ComputeSummary(birth, clock.Now()),
	}, nil
}

// View owns the current birth date and its derived snapshot.
// Writers go through SetBirthDate or Recompute; readers call Snapshot and
// always see a complete value.
type View struct {
	Clock Clock

	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// NewView starts on config.DefaultBirthDate.
func NewView(clock Clock) *View {
	if clock == nil {
		clock = RealClock{}
	}
	v := &View{Clock: clock}
	// The default is a constant known to parse.
	snap, _ := Compute(config.DefaultBirthDate, clock)
	v.snap.Store(&snap)
	return v
}

// SetBirthDate recomputes the grid for input. Invalid input is rejected with
// ErrInvalidBirthDate and the previous snapshot stays current.
func (v *View) SetBirthDate(input string) (Snapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	started := time.Now()
	snap, err := Compute(input, v.Clock)
	if err != nil {
		slog.Debug(config.MsgRejectedInput,
			config.LogKeyComponent, config.CompView,
			config.LogKeyValue, input,
		)
		return *v.snap.Load(), err
	}
	v.publish(&snap, started)
	return snap, nil
}

// Recompute samples the clock again for the current birth date.
func (v *View) Recompute() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	started := time.Now()
	current := v.snap.Load()
	snap := Snapshot{
		Input:   current.Input,
		Summary: ComputeSummary(current.Summary.BirthDate, v.Clock.Now()),
	}
	v.publish(&snap, started)
	return snap
}

// Snapshot returns the latest snapshot without locking.
func (v *View) Snapshot() Snapshot {
	return *v.snap.Load()
}

func (v *View) publish(snap *Snapshot, started time.Time) {
	v.snap.Store(snap)
	slog.Debug(config.MsgRecomputed,
		config.LogKeyComponent, config.CompView,
		config.LogKeyDOB, snap.Input,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyCount, snap.Summary.TotalWeeks),
			slog.Int(config.LogKeyLived, snap.Summary.WeeksLived),
			slog.Int(config.LogKeyCurrent, snap.Summary.CurrentWeekNumber),
			slog.Float64(config.LogKeyPercent, snap.Summary.PercentComplete),
			slog.Int64(config.LogKeyDuration, time.Since(started).Milliseconds()),
		),
	)
}
