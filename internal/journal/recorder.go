package journal

import (
	"time"

	"cube-combine/internal/physics"
	"cube-combine/internal/sim"
)

// Recorder folds per-frame reports into a RunLog.
type Recorder struct {
	log RunLog
}

func NewRecorder(start time.Time) *Recorder {
	return &Recorder{log: RunLog{StartedAt: start.UTC()}}
}

// Observe accounts for one frame.
func (r *Recorder) Observe(rep sim.Report) {
	r.log.Frames = rep.Frame
	r.log.Jumps += len(rep.Jumps)
	r.log.Landings += len(rep.Landed)
	for _, c := range rep.Contacts {
		if c.Kind == physics.Begin {
			r.log.Touches++
		}
	}
	for _, c := range rep.Combines {
		r.log.Combines = append(r.log.Combines, CombineEntry{
			Frame:    rep.Frame,
			Category: c.Category.String(),
			Position: c.Translation,
		})
	}
}

// Finish stamps the run's duration and returns the log.
func (r *Recorder) Finish(end time.Time) RunLog {
	r.log.Duration = end.Sub(r.log.StartedAt)
	return r.log
}
