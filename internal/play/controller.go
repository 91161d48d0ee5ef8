package play

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/parser"
	"github.com/mcweebus/quietcurrent/internal/save"
)

const historyLimit = 260

// Controller turns typed lines into world actions and keeps the save,
// the chronicle and the message history in step with them.
type Controller struct {
	Session *game.Session
	History *chronicle.Log

	store   save.Store
	sink    chronicle.Sink
	logger  *slog.Logger
	parser  *parser.Parser
	pending *parser.ClarifyQuestion
	last    *parser.Cell

	now func() time.Time
}

type Options struct {
	Store  save.Store
	Sink   chronicle.Sink
	Logger *slog.Logger
	Now    func() time.Time
}

// Outcome is what a frontend shows after one submitted line.
type Outcome struct {
	Lines   []string
	Flashes []string
	Choices []string
	Ticked  bool
	Arrived bool
	Quit    bool
}

func New(s *game.Session, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		Session: s,
		History: chronicle.NewLog(historyLimit),
		store:   opts.Store,
		sink:    opts.Sink,
		logger:  opts.Logger,
		parser:  parser.New(),
		now:     opts.Now,
	}
}

// Resume applies time-away decay and returns the greeting lines.
func (c *Controller) Resume() []string {
	w := c.Session.World
	lines := []string{fmt.Sprintf("%s. day %d.", displayName(w), w.DaysFounded)}
	if msg := c.Session.Resume(c.now()); msg != "" {
		lines = append(lines, msg)
		c.logger.Info("settlement resumed", "world", w, "decay", msg)
	}
	return lines
}

func (c *Controller) Submit(raw string) Outcome {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Outcome{}
	}

	var intent parser.Intent
	if picked, ok := c.pickPending(raw); ok {
		intent = picked
	} else {
		c.pending = nil
		intent = c.parser.Parse(c.context(), raw)
	}

	if intent.Clarify != nil {
		out := Outcome{Lines: []string{intent.Clarify.Prompt}}
		if len(intent.Clarify.Options) > 0 {
			c.pending = intent.Clarify
			for i, opt := range intent.Clarify.Options {
				out.Choices = append(out.Choices, fmt.Sprintf("%d) %s", i+1, parser.IntentToCommandString(opt)))
			}
		}
		return out
	}
	if intent.Verb == "" {
		return Outcome{Lines: []string{"Unknown command: " + raw}}
	}
	if intent.Kind == parser.Meta {
		return c.meta(intent)
	}
	return c.execute(intent)
}

func (c *Controller) pickPending(raw string) (parser.Intent, bool) {
	if c.pending == nil {
		return parser.Intent{}, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(c.pending.Options) {
		return parser.Intent{}, false
	}
	picked := c.pending.Options[n-1]
	c.pending = nil
	return picked, true
}

func (c *Controller) context() parser.ParseContext {
	ctx := parser.ContextFor(c.Session)
	ctx.LastCell = c.last
	return ctx
}

func (c *Controller) execute(intent parser.Intent) Outcome {
	line := parser.IntentToCommandString(intent)
	hadVisitor := c.Session.Visitor != nil
	res := c.Session.Execute(line)
	if !res.Handled {
		return Outcome{Lines: []string{"Unknown command: " + line}}
	}
	if intent.Cell != nil {
		cell := *intent.Cell
		c.last = &cell
	}

	out := Outcome{Flashes: res.Flashes, Ticked: res.Ticked}
	if res.Message != "" {
		out.Lines = strings.Split(res.Message, "\n")
	}
	if !res.Ticked {
		return out
	}

	out.Arrived = !hadVisitor && c.Session.Visitor != nil
	entry := chronicle.Snapshot(c.Session, line, res)
	c.History.Add(entry)
	if c.sink != nil {
		if err := c.sink.Write(entry); err != nil {
			c.logger.Warn("chronicle write failed", "err", err)
		}
	}
	if err := c.Save(); err != nil {
		out.Lines = append(out.Lines, "could not save: "+err.Error())
	}
	return out
}

func (c *Controller) meta(intent parser.Intent) Outcome {
	switch intent.Verb {
	case "save":
		if err := c.Save(); err != nil {
			return Outcome{Lines: []string{"could not save: " + err.Error()}}
		}
		return Outcome{Lines: []string{"saved."}}
	case "quit":
		if err := c.Close(); err != nil {
			return Outcome{Lines: []string{"could not save: " + err.Error()}, Quit: true}
		}
		return Outcome{Lines: []string{"the panel hums on without you."}, Quit: true}
	case "backups":
		return Outcome{Lines: []string{c.backupReport()}}
	case "log":
		n := 10
		if len(intent.Args) > 0 {
			if v, err := strconv.Atoi(intent.Args[0]); err == nil && v > 0 {
				n = v
			}
		}
		return Outcome{Lines: c.logLines(n)}
	}
	return Outcome{Lines: []string{"Unknown command: " + intent.Verb}}
}

func (c *Controller) logLines(n int) []string {
	entries := c.History.Tail(n)
	if len(entries) == 0 {
		return []string{"nothing has happened yet."}
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("#%d %s: %s", e.Action, e.Command, e.Message))
	}
	return lines
}

type backupLister interface {
	ListBackups() []int
}

func (c *Controller) backupReport() string {
	lister, ok := c.store.(backupLister)
	if !ok {
		return "this save keeps no backup files."
	}
	slots := lister.ListBackups()
	if len(slots) == 0 {
		return "no backups yet."
	}
	parts := make([]string, len(slots))
	for i, n := range slots {
		parts[i] = strconv.Itoa(n)
	}
	return "backups: " + strings.Join(parts, ", ")
}

// Save writes the world if a store is attached.
func (c *Controller) Save() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Save(c.Session.World); err != nil {
		c.logger.Error("save failed", "err", err)
		return err
	}
	c.logger.Debug("saved", "world", c.Session.World)
	return nil
}

// Close stamps the world as last seen now and saves it.
func (c *Controller) Close() error {
	c.Session.Close(c.now())
	return c.Save()
}

// LoadOrCreate returns the stored world, or a new one when there is none.
// An unreadable record counts as no save; the next save replaces it.
func LoadOrCreate(store save.Store, name string, variant game.Variant, seed int64) (*game.World, bool, error) {
	w, err := store.Load()
	switch {
	case err == nil:
		return w, false, nil
	case errors.Is(err, save.ErrNoSave):
	case errors.Is(err, save.ErrCorrupt):
		slog.Warn("discarding unreadable save", "err", err)
	default:
		return nil, false, err
	}
	return game.NewWorld(name, variant, seed), true, nil
}

func displayName(w *game.World) string {
	if w.Name == "" {
		return "the settlement"
	}
	return w.Name
}
