package chronicle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcweebus/quietcurrent/internal/game"
)

func TestSnapshotJoinsFlashes(t *testing.T) {
	s := game.NewSession(game.NewWorld("Log", game.VariantNetwork, 4), game.NewRand(4))
	res := game.ActionResult{Handled: true, Message: "you tend.", Flashes: []string{"rain.", "a visitor."}}
	e := Snapshot(s, "tend", res)
	if e.Message != "you tend. rain. a visitor." {
		t.Fatalf("message=%q", e.Message)
	}
	if e.Command != "tend" || e.Seed != 4 || e.Panel != "neglected" {
		t.Fatalf("entry=%+v", e)
	}
}

func TestLogKeepsNewest(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Add(Entry{Action: i})
	}
	got := l.Entries()
	if len(got) != 3 || got[0].Action != 3 || got[2].Action != 5 {
		t.Fatalf("entries=%+v", got)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || tail[0].Action != 4 {
		t.Fatalf("tail=%+v", tail)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := []Entry{
		{Seed: 1, Action: 1, Command: "tend", Message: "grime, and more grime.", Panel: "neglected", Power: 0},
		{Seed: 1, Action: 2, Command: "wait", Message: "quiet", Panel: "neglected", Water: 2},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "seed,action,day,command") {
		t.Fatalf("missing header: %q", buf.String())
	}
	out, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestWriterAppendsWithOneHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "chronicle.csv")
	for i := 0; i < 2; i++ {
		cw, err := OpenWriter(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := cw.Write(Entry{Action: i + 1}, Entry{Action: i + 10}); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := cw.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := strings.Count(string(data), "seed,action"); n != 1 {
		t.Fatalf("header written %d times", n)
	}
	entries, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries=%d want 4", len(entries))
	}
}

func TestOpenWriterDisabled(t *testing.T) {
	cw, err := OpenWriter("")
	if err != nil || cw != nil {
		t.Fatalf("empty path should disable the writer")
	}
	if err := cw.Write(Entry{}); err != nil {
		t.Fatalf("nil writer write: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("nil writer close: %v", err)
	}
}

func TestTeeWritesEverySink(t *testing.T) {
	var a, b int
	failing := SinkFunc(func(entries ...Entry) error {
		return errors.New("disk full")
	})
	sink := Tee(
		SinkFunc(func(entries ...Entry) error { a += len(entries); return nil }),
		nil,
		failing,
		SinkFunc(func(entries ...Entry) error { b += len(entries); return nil }),
	)
	err := sink.Write(Entry{Action: 1}, Entry{Action: 2})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if a != 2 || b != 2 {
		t.Fatalf("a=%d b=%d", a, b)
	}
}
