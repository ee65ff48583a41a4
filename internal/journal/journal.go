// Package journal keeps a compressed history of finished runs.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// FileName is the journal file inside the journal directory. Every run is
// its own zstd frame holding one JSON line, so the file stays a valid zstd
// stream as runs are appended.
const FileName = "runs.jsonl.zst"

// RunLog records statistics gathered during one run.
type RunLog struct {
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration_ns"`
	Frames    uint64         `json:"frames"`
	Jumps     int            `json:"jumps"`
	Landings  int            `json:"landings"`
	Touches   int            `json:"touches"`
	Combines  []CombineEntry `json:"combines,omitempty"`
}

// CombineEntry is one absorbed object.
type CombineEntry struct {
	Frame    uint64     `json:"frame"`
	Category string     `json:"category"`
	Position [3]float64 `json:"position"`
}

// Path returns the journal file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// appendMu keeps concurrent sessions from interleaving their frames.
var appendMu sync.Mutex

// Append adds log to the journal in dir, creating both if needed. It is safe
// for concurrent use.
func Append(dir string, log RunLog) error {
	appendMu.Lock()
	defer appendMu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	f, err := os.OpenFile(Path(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	w := bufio.NewWriter(enc)
	if err := json.NewEncoder(w).Encode(log); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode run: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write run: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	return f.Close()
}

// ReadAll decodes every run in the journal at path, oldest first. A missing
// file holds no runs.
func ReadAll(path string) ([]RunLog, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var runs []RunLog
	jd := json.NewDecoder(dec)
	for {
		var r RunLog
		err := jd.Decode(&r)
		if err == io.EOF {
			return runs, nil
		}
		if err != nil {
			return runs, fmt.Errorf("%s: decode run %d: %w", filepath.Base(path), len(runs)+1, err)
		}
		runs = append(runs, r)
	}
}
