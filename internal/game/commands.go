package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const helpText = "Commands: status, tend, fix <dust|wire|debris|connector>, build [<building>], " +
	"dig|inoculate <x> <y>, plant <x> <y> <crop>, water <x> <y>, harvest <x> <y>, clear <x> <y>, " +
	"compost|enrich <x> <y>, pile, feed|extend|suppress <x> <y>, trade yes|no, explore, " +
	"flower <slot> <variety>, flowers, frame <harvest|sow|clear|water>, garden, residents, wait, help."

// Execute runs one command line. Unknown input comes back unhandled.
func (s *Session) Execute(raw string) ActionResult {
	fields := strings.Fields(strings.TrimSpace(strings.ToLower(raw)))
	if len(fields) == 0 {
		return ActionResult{Handled: false}
	}
	args := fields[1:]

	switch fields[0] {
	case "help", "commands":
		return ActionResult{Handled: true, Message: helpText}
	case "status", "look":
		return ActionResult{Handled: true, Message: StatusReport(s.World)}
	case "garden":
		return ActionResult{Handled: true, Message: GardenReport(s.World, s.Rules)}
	case "residents":
		return ActionResult{Handled: true, Message: ResidentReport(s.World)}
	case "tend":
		return s.Tend()
	case "wait", "rest":
		return s.Wait()
	case "fix", "maintain":
		if len(args) == 0 {
			return ActionResult{Handled: true, Message: "Usage: fix <dust|wire|debris|connector>"}
		}
		c, ok := ParseCondition(args[0])
		if !ok {
			return ActionResult{Handled: true, Message: "the panel has no such part."}
		}
		return s.Maintain(c)
	case "build":
		if len(args) == 0 {
			return ActionResult{Handled: true, Message: BuildingReport(s.World)}
		}
		return s.Build(strings.Join(args, "_"))
	case "dig", "inoculate", "sow":
		return s.cellCommand(args, s.Sow)
	case "water":
		return s.cellCommand(args, s.Water)
	case "clear", "weed":
		return s.cellCommand(args, s.Clear)
	case "compost", "enrich":
		return s.cellCommand(args, s.Improve)
	case "harvest":
		return s.cellCommand(args, s.Harvest)
	case "feed":
		return s.cellCommand(args, s.Feed)
	case "extend":
		return s.cellCommand(args, s.Extend)
	case "suppress":
		return s.cellCommand(args, s.Suppress)
	case "plant":
		if len(args) < 3 {
			return ActionResult{Handled: true, Message: "Usage: plant <x> <y> <crop>"}
		}
		idx, err := parseCell(args[0], args[1])
		if err != nil {
			return ActionResult{Handled: true, Message: err.Error()}
		}
		return s.Plant(idx, args[2])
	case "pile":
		return s.AddCompost()
	case "trade":
		if len(args) == 0 {
			if s.Visitor == nil {
				return ActionResult{Handled: true, Message: "no one is waiting."}
			}
			return ActionResult{Handled: true, Message: s.Visitor.Description() + " " + s.Visitor.Offer(s.World)}
		}
		switch args[0] {
		case "yes", "y", "accept":
			return s.Trade(true)
		case "no", "n", "decline":
			return s.Trade(false)
		}
		return ActionResult{Handled: true, Message: "Usage: trade yes|no"}
	case "accept":
		return s.Trade(true)
	case "decline":
		return s.Trade(false)
	case "explore":
		return s.Explore()
	case "flower":
		if len(args) < 2 {
			return ActionResult{Handled: true, Message: "Usage: flower <slot> <variety>"}
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return ActionResult{Handled: true, Message: "slot must be a number."}
		}
		return s.PlantFlower(slot-1, args[1])
	case "flowers":
		return s.TendFlowers()
	case "frame":
		if len(args) == 0 {
			return ActionResult{Handled: true, Message: FrameReport(s.World)}
		}
		t, ok := ParseFrameTask(args[0])
		if !ok {
			return ActionResult{Handled: true, Message: "the frame can harvest, sow, clear or water."}
		}
		return s.ToggleFrame(t)
	default:
		return ActionResult{Handled: false}
	}
}

func (s *Session) cellCommand(args []string, fn func(int) ActionResult) ActionResult {
	if len(args) < 2 {
		return ActionResult{Handled: true, Message: "give a plot as <x> <y>."}
	}
	idx, err := parseCell(args[0], args[1])
	if err != nil {
		return ActionResult{Handled: true, Message: err.Error()}
	}
	return fn(idx)
}

// parseCell reads one-based coordinates.
func parseCell(xs, ys string) (int, error) {
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return 0, errors.New("plots are numbered, like 3 4")
	}
	if !InBounds(x-1, y-1) {
		return 0, fmt.Errorf("the garden is %d by %d", GardenWidth, GardenHeight)
	}
	return Index(x-1, y-1), nil
}

func StatusReport(w *World) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, day %d. weather %s (%d).\n", displayName(w), w.DaysFounded, w.Weather, w.WeatherDuration)
	fmt.Fprintf(&b, "panel: %s, %d%%", w.PanelState, w.PanelEfficiency)
	if active := w.ActiveConditions(); len(active) > 0 {
		names := make([]string, len(active))
		for i, c := range active {
			names[i] = string(c)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "power %d  scrap %d  water %d  %s %d", w.Power, w.Scrap, w.Water, w.SeedLabel(), w.Seeds)
	if w.GardenVariant == VariantNetwork {
		fmt.Fprintf(&b, "  mycelium %d", w.Mycelium)
	}
	if w.HasCompostPile {
		fmt.Fprintf(&b, "  compost %d/%d", w.CompostLevel, CompostMax)
	}
	if name := AncestralName(w); name != "" {
		fmt.Fprintf(&b, "\nthe old name: %s", name)
	}
	return b.String()
}

func displayName(w *World) string {
	if w.Name == "" {
		return "the settlement"
	}
	return w.Name
}

func GardenReport(w *World, rules Ruleset) string {
	s := rules.Summary(w)
	if rules.Variant() == VariantCrops {
		return fmt.Sprintf("garden: %d growing, %d ready, %d weedy of %d plots.", s.Growing, s.Ready, s.Weedy, s.Total)
	}
	return fmt.Sprintf("network: %d hypha, %d connected, %d mature, %d fruiting, %d competing.", s.Hypha, s.Connected, s.Mature, s.Fruiting, s.Competing)
}

func ResidentReport(w *World) string {
	if len(w.Residents) == 0 {
		return "no one lives here but you."
	}
	lines := make([]string, 0, len(w.Residents))
	for _, r := range w.Residents {
		lines = append(lines, fmt.Sprintf("%s: %s, %d days", r.Name, MoodLabel(r.Mood), r.Days))
	}
	return strings.Join(lines, "\n")
}

func BuildingReport(w *World) string {
	lines := make([]string, 0, len(buildings))
	for _, b := range buildings {
		mark := " "
		if w.Has(b.Key) {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %s: %s (%s)", mark, b.Key, b.Description, b.Cost.Describe(w))
		if b.Requires != "" {
			line += " needs " + string(b.Requires)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func FrameReport(w *World) string {
	if !w.HasTendingFrame {
		return "you have no tending frame."
	}
	if len(w.FrameRules) == 0 {
		return "the frame is idle."
	}
	names := make([]string, len(w.FrameRules))
	for i, t := range w.FrameRules {
		names[i] = string(t)
	}
	return "the frame will " + strings.Join(names, ", ") + "."
}
