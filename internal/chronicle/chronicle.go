package chronicle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/mcweebus/quietcurrent/internal/game"
)

// Entry is one line of a settlement's history, with the stores as they stood after it.
type Entry struct {
	Seed       int64  `csv:"seed"`
	Action     int    `csv:"action"`
	Day        int    `csv:"day"`
	Command    string `csv:"command"`
	Message    string `csv:"message"`
	Panel      string `csv:"panel"`
	Efficiency int    `csv:"efficiency"`
	Weather    string `csv:"weather"`
	Power      int    `csv:"power"`
	Scrap      int    `csv:"scrap"`
	Water      int    `csv:"water"`
	Seeds      int    `csv:"seeds"`
	Mycelium   int    `csv:"mycelium"`
	Residents  int    `csv:"residents"`
	Active     int    `csv:"active_cells"`
}

// Snapshot captures the world after a command.
func Snapshot(s *game.Session, command string, res game.ActionResult) Entry {
	w := s.World
	msg := strings.TrimSpace(res.Message)
	if len(res.Flashes) > 0 {
		msg = strings.TrimSpace(msg + " " + strings.Join(res.Flashes, " "))
	}
	return Entry{
		Seed:       w.Seed,
		Action:     w.ActionCount,
		Day:        w.DaysFounded,
		Command:    command,
		Message:    msg,
		Panel:      string(w.PanelState),
		Efficiency: w.PanelEfficiency,
		Weather:    string(w.Weather),
		Power:      w.Power,
		Scrap:      w.Scrap,
		Water:      w.Water,
		Seeds:      w.Seeds,
		Mycelium:   w.Mycelium,
		Residents:  len(w.Residents),
		Active:     game.ActiveCells(w, s.Rules),
	}
}

// Log keeps the most recent entries in memory.
type Log struct {
	limit   int
	entries []Entry
}

func NewLog(limit int) *Log {
	if limit < 1 {
		limit = 200
	}
	return &Log{limit: limit}
}

func (l *Log) Add(e Entry) {
	l.entries = append(l.entries, e)
	if len(l.entries) > l.limit {
		l.entries = append([]Entry(nil), l.entries[len(l.entries)-l.limit:]...)
	}
}

func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns up to n of the newest entries, oldest first.
func (l *Log) Tail(n int) []Entry {
	if n <= 0 || n >= len(l.entries) {
		return l.Entries()
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

func WriteCSV(w io.Writer, entries []Entry) error {
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("writing chronicle: %w", err)
	}
	return nil
}

func ReadCSV(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("reading chronicle: %w", err)
	}
	return entries, nil
}

// Sink receives entries as they happen.
type Sink interface {
	Write(entries ...Entry) error
}

type SinkFunc func(entries ...Entry) error

func (f SinkFunc) Write(entries ...Entry) error { return f(entries...) }

// Tee fans entries out to every non-nil sink. A failing sink does not stop
// the others.
func Tee(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return SinkFunc(func(entries ...Entry) error {
		var errs []error
		for _, s := range live {
			if err := s.Write(entries...); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Writer appends entries to a CSV file, writing the header once.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// OpenWriter returns nil when path is empty.
func OpenWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating chronicle dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening chronicle: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening chronicle: %w", err)
	}
	return &Writer{file: f, headerWritten: info.Size() > 0}, nil
}

func (cw *Writer) Write(entries ...Entry) error {
	if cw == nil || len(entries) == 0 {
		return nil
	}
	if !cw.headerWritten {
		if err := gocsv.Marshal(entries, cw.file); err != nil {
			return fmt.Errorf("writing chronicle: %w", err)
		}
		cw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(entries, cw.file); err != nil {
		return fmt.Errorf("writing chronicle: %w", err)
	}
	return nil
}

func (cw *Writer) Close() error {
	if cw == nil {
		return nil
	}
	return cw.file.Close()
}
