package gui

import (
	"fmt"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mcweebus/quietcurrent/internal/game"
	uitheme "github.com/mcweebus/quietcurrent/internal/gui/theme"
	"github.com/mcweebus/quietcurrent/internal/parser"
)

// gardenTool is one click action on the grid. Verb goes through the
// parser, so aliases like inoculate resolve the same as typed input.
type gardenTool struct {
	Label     string
	Verb      string
	NeedsCrop bool
}

var cropTools = []gardenTool{
	{Label: "Dig", Verb: "dig"},
	{Label: "Plant", Verb: "plant", NeedsCrop: true},
	{Label: "Water", Verb: "water"},
	{Label: "Harvest", Verb: "harvest"},
	{Label: "Clear", Verb: "clear"},
	{Label: "Compost", Verb: "compost"},
}

var networkTools = []gardenTool{
	{Label: "Inoculate", Verb: "inoculate"},
	{Label: "Water", Verb: "water"},
	{Label: "Clear", Verb: "clear"},
	{Label: "Enrich", Verb: "enrich"},
	{Label: "Feed", Verb: "feed"},
	{Label: "Extend", Verb: "extend"},
	{Label: "Suppress", Verb: "suppress"},
}

func toolsFor(v game.Variant) []gardenTool {
	if v == game.VariantCrops {
		return cropTools
	}
	return networkTools
}

func (ui *gameUI) tools() []gardenTool {
	return toolsFor(ui.ctrl.Session.World.GardenVariant)
}

func intentCommand(intent parser.Intent) string {
	return parser.IntentToCommandString(intent)
}

// gardenGrid returns the square-celled grid area centred in the body, and
// the side of one cell.
func gardenGrid(body rl.Rectangle) (rl.Rectangle, float32) {
	area := rl.NewRectangle(body.X+spaceM, body.Y+spaceM+40, body.Width*0.68-spaceM*2, body.Height-spaceM*2-40)
	side := area.Width / game.GardenWidth
	if h := area.Height / game.GardenHeight; h < side {
		side = h
	}
	gridW := side * game.GardenWidth
	gridH := side * game.GardenHeight
	return rl.NewRectangle(area.X+(area.Width-gridW)/2, area.Y, gridW, gridH), side
}

// cellAt maps a point to a one-based plot, or false outside the grid.
func cellAt(grid rl.Rectangle, side float32, pos rl.Vector2) (parser.Cell, bool) {
	if side <= 0 || !rl.CheckCollisionPointRec(pos, grid) {
		return parser.Cell{}, false
	}
	x := int((pos.X - grid.X) / side)
	y := int((pos.Y - grid.Y) / side)
	if x < 0 || x >= game.GardenWidth || y < 0 || y >= game.GardenHeight {
		return parser.Cell{}, false
	}
	return parser.Cell{X: x + 1, Y: y + 1}, true
}

// clickCell queues the selected tool against the plot.
func (ui *gameUI) clickCell(cell parser.Cell) {
	tools := ui.tools()
	tool := tools[clampInt(ui.tool, 0, len(tools)-1)]
	intent := parser.Intent{
		Raw:        tool.Verb,
		Kind:       parser.Command,
		Verb:       tool.Verb,
		Cell:       &parser.Cell{X: cell.X, Y: cell.Y},
		Confidence: 1,
	}
	if tool.NeedsCrop {
		crops := game.Crops()
		intent.Args = []string{crops[wrapIndex(ui.crop, len(crops))].Key}
	}
	ui.intents.EnqueueIntent(intent)
}

func (ui *gameUI) updateGarden() {
	if HotkeysEnabled(ui) {
		for i := range ui.tools() {
			if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
				ui.tool = i
			}
		}
	}
	grid, side := gardenGrid(computeLayout(uitheme.FrameInset(ui.width, ui.height)).body)
	cell, ok := cellAt(grid, side, rl.GetMousePosition())
	ui.hoverCell = -1
	if !ok {
		return
	}
	ui.hoverCell = game.Index(cell.X-1, cell.Y-1)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ui.clickCell(cell)
	}
}

func (ui *gameUI) drawGarden(body rl.Rectangle) {
	w := ui.ctrl.Session.World
	rules := ui.ctrl.Session.Rules
	DrawPanel(body, "Garden", false)

	grid, side := gardenGrid(body)
	for idx, c := range w.Garden {
		x, y := game.Coords(idx)
		r := rl.NewRectangle(grid.X+float32(x)*side+1, grid.Y+float32(y)*side+1, side-2, side-2)
		rl.DrawRectangleRec(r, cellColor(rules, c))
		if idx == ui.hoverCell {
			rl.DrawRectangleLinesEx(r, 2, colorAccent)
		}
	}
	if !w.HasGardenBed {
		rl.DrawRectangleRec(grid, rl.Fade(colorBG, 0.7))
		drawText("build a garden bed to work this ground.", int32(grid.X+spaceM), int32(grid.Y+grid.Height/2), typeScale.Body, colorWarn)
	}

	side2 := rl.NewRectangle(body.X+body.Width*0.68, body.Y+spaceM+40, body.Width*0.32-spaceM, body.Height-spaceM*2-40)
	y := side2.Y
	tools := ui.tools()
	for i, tool := range tools {
		label := fmt.Sprintf("%d %s", i+1, tool.Label)
		if i == ui.tool {
			label = "> " + label
		}
		if gui.Button(rl.NewRectangle(side2.X, y, side2.Width/2-spaceXS, 28), label) {
			ui.tool = i
		}
		y += 32
	}
	if tools[clampInt(ui.tool, 0, len(tools)-1)].NeedsCrop {
		crops := game.Crops()
		crop := crops[wrapIndex(ui.crop, len(crops))]
		if gui.Button(rl.NewRectangle(side2.X, y, side2.Width/2-spaceXS, 28), "crop: "+crop.Key) {
			ui.crop = wrapIndex(ui.crop+1, len(crops))
		}
		y += 32
	}

	info := rl.NewRectangle(side2.X+side2.Width/2, side2.Y, side2.Width/2, side2.Height)
	iy := int32(0)
	if ui.hoverCell >= 0 && ui.hoverCell < len(w.Garden) {
		c := w.Garden[ui.hoverCell]
		x, yy := game.Coords(ui.hoverCell)
		iy = drawWrappedText(fmt.Sprintf("plot %d,%d: %s", x+1, yy+1, rules.StateLabel(c.State)), info, iy, typeScale.Small, colorText)
		iy = drawWrappedText(fmt.Sprintf("soil %d  moisture %d", c.Soil, c.Moisture), info, iy, typeScale.Small, colorDim)
		if w.GardenVariant == game.VariantCrops && c.Growth > 0 {
			iy = drawWrappedText(fmt.Sprintf("%s %d%%", c.Crop, c.Growth), info, iy, typeScale.Small, colorDim)
		}
		iy += 8
	}
	sum := rules.Summary(w)
	summary := fmt.Sprintf("active %d of %d", game.ActiveCells(w, rules), game.GardenSize)
	iy = drawWrappedText(summary, info, iy, typeScale.Small, colorMuted)
	if w.GardenVariant == game.VariantNetwork {
		drawWrappedText(fmt.Sprintf("fruiting %d  competing %d  pollinators %d", sum.Fruiting, sum.Competing, len(ui.ctrl.Session.Pollinators.Swarm)), info, iy, typeScale.Small, colorMuted)
	} else {
		drawWrappedText(fmt.Sprintf("growing %d  ready %d  weedy %d", sum.Growing, sum.Ready, sum.Weedy), info, iy, typeScale.Small, colorMuted)
	}
}

// cellColor shades a plot by how alive it is, then by moisture.
func cellColor(rules game.Ruleset, c game.Cell) rl.Color {
	base := rl.NewColor(0x3A, 0x2E, 0x24, 255)
	switch {
	case rules.IsWeedy(c.State):
		base = rl.NewColor(0x6E, 0x6A, 0x2C, 255)
	case c.State == game.StateReady || c.State == game.StateFruiting:
		base = AppTheme.Warning
	case rules.IsActive(c.State):
		base = AppTheme.Living
	case rules.IsLiving(c.State):
		base = rl.NewColor(0x4A, 0x5C, 0x3A, 255)
	case c.State == game.StateDug || c.State == game.StateDecomposing:
		base = rl.NewColor(0x52, 0x40, 0x30, 255)
	case c.State == game.StateDepleted:
		base = rl.NewColor(0x2E, 0x29, 0x25, 255)
	}
	if c.Moisture > 0 {
		base = blend(base, AppTheme.Accent, float32(c.Moisture)/float32(game.MoistureMax)*0.25)
	}
	return base
}

func blend(a, b rl.Color, t float32) rl.Color {
	inv := 1 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		255,
	)
}

// flowerCentres lays the bed out from the slot offsets. Offsets step columns
// by two, so one column unit is half a slot wide.
func flowerCentres(body rl.Rectangle) ([game.FlowerSlots]rl.Vector2, float32) {
	radius := body.Height / 14
	if radius > 34 {
		radius = 34
	}
	cx := body.X + body.Width*0.35
	cy := body.Y + body.Height/2 + 12
	var out [game.FlowerSlots]rl.Vector2
	for i, off := range game.FlowerOffsets {
		out[i] = rl.NewVector2(cx+float32(off[1])*radius*1.15, cy+float32(off[0])*radius*2.2)
	}
	return out, radius
}

// flowerSlotAt returns the zero-based slot under pos.
func flowerSlotAt(body rl.Rectangle, pos rl.Vector2) (int, bool) {
	centres, radius := flowerCentres(body)
	for i, c := range centres {
		if rl.CheckCollisionPointCircle(pos, c, radius) {
			return i, true
		}
	}
	return 0, false
}

func (ui *gameUI) clickFlowerSlot(slot int) {
	varieties := game.FlowerVarieties()
	ui.intents.EnqueueIntent(parser.Intent{
		Raw:        "flower",
		Kind:       parser.Command,
		Verb:       "flower",
		Args:       []string{strconv.Itoa(slot + 1), varieties[wrapIndex(ui.flower, len(varieties))].Key},
		Confidence: 1,
	})
}

func (ui *gameUI) updateFlowers() {
	if !ui.ctrl.Session.World.FlowersUnlocked {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		body := computeLayout(uitheme.FrameInset(ui.width, ui.height)).body
		if slot, ok := flowerSlotAt(body, rl.GetMousePosition()); ok {
			ui.clickFlowerSlot(slot)
		}
	}
}

func (ui *gameUI) drawFlowers(body rl.Rectangle) {
	w := ui.ctrl.Session.World
	DrawPanel(body, "Flower bed", false)
	if !w.FlowersUnlocked {
		drawText("nothing grows here yet. the tend count will open the ground.", int32(body.X+spaceM), int32(body.Y+70), typeScale.Body, colorDim)
		return
	}

	centres, radius := flowerCentres(body)
	for i, c := range centres {
		slot := w.Flowers[i]
		clr := rl.Fade(AppTheme.Border, 0.9)
		switch slot.State {
		case game.FlowerBudding:
			clr = AppTheme.Living
		case game.FlowerFlowering:
			clr = AppTheme.Warning
		case game.FlowerWilting:
			clr = rl.NewColor(0x7A, 0x5A, 0x4A, 255)
		}
		rl.DrawCircleV(c, radius, clr)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), radius, AppTheme.Border)
		label := strconv.Itoa(i + 1)
		drawText(label, int32(c.X)-measureText(label, typeScale.Small)/2, int32(c.Y)-typeScale.Small/2, typeScale.Small, colorBG)
	}

	panel := rl.NewRectangle(body.X+body.Width*0.66, body.Y+spaceM+40, body.Width*0.34-spaceM, body.Height-spaceM*2-40)
	varieties := game.FlowerVarieties()
	v := varieties[wrapIndex(ui.flower, len(varieties))]
	if gui.Button(rl.NewRectangle(panel.X, panel.Y, panel.Width, 30), "plant: "+v.Key) {
		ui.flower = wrapIndex(ui.flower+1, len(varieties))
	}
	y := drawWrappedText(v.Description, rl.NewRectangle(panel.X, panel.Y+40, panel.Width, 80), 0, typeScale.Small, colorDim)
	if gui.Button(rl.NewRectangle(panel.X, panel.Y+48+float32(y), panel.Width, 30), "Tend flowers") {
		ui.submit("flowers")
	}
	s := game.SummarizeFlowers(w)
	drawText(fmt.Sprintf("budding %d  flowering %d  wilting %d", s.Budding, s.Flowering, s.Wilting), int32(panel.X), int32(panel.Y+88)+y, typeScale.Small, colorMuted)
}

func (ui *gameUI) drawSettlement(body rl.Rectangle) {
	s := ui.ctrl.Session
	w := s.World
	leftW := body.Width * 0.5
	left := rl.NewRectangle(body.X, body.Y, leftW-spaceXS, body.Height)
	right := rl.NewRectangle(body.X+leftW+spaceXS, body.Y, body.Width-leftW-spaceXS, body.Height)

	DrawPanel(left, "The panel", false)
	inner := panelBody(left)
	y := int32(0)
	conds := w.ActiveConditions()
	if len(conds) == 0 {
		y = drawWrappedText("no faults you can see.", inner, y, typeScale.Body, colorDim)
	}
	for _, c := range conds {
		label := game.ConditionLabel(c)
		if gui.Button(rl.NewRectangle(inner.X, inner.Y+float32(y), 110, 26), "Fix "+string(c)) {
			ui.submit("fix " + string(c))
		}
		drawText(label, int32(inner.X+120), int32(inner.Y)+y+4, typeScale.Small, colorWarn)
		y += 32
	}
	y += 8
	for _, b := range game.Buildings() {
		if !w.Has(b.Key) {
			continue
		}
		drawText("+ "+b.Name, int32(inner.X), int32(inner.Y)+y, typeScale.Small, colorDim)
		y += textLineHeight(typeScale.Small)
	}

	actions := []struct{ Label, Command string }{
		{"Tend", "tend"}, {"Wait", "wait"}, {"Explore", "explore"}, {"Build list", "build"},
	}
	if w.HasCompostPile {
		actions = append(actions, struct{ Label, Command string }{"Compost", "pile"})
	}
	bx := inner.X
	by := inner.Y + inner.Height - 32
	for _, a := range actions {
		if gui.Button(rl.NewRectangle(bx, by, 96, 30), a.Label) {
			ui.submit(a.Command)
		}
		bx += 102
	}

	DrawPanel(right, "Residents", false)
	inner = panelBody(right)
	ry := inner.Y
	if len(w.Residents) == 0 {
		drawText("no one else lives here yet.", int32(inner.X), int32(ry), typeScale.Body, colorDim)
		ry += float32(textLineHeight(typeScale.Body))
	}
	for _, r := range w.Residents {
		DrawListItem(rl.NewRectangle(inner.X, ry, inner.Width, 26), false, r.Name, fmt.Sprintf("mood %d  %dd", r.Mood, r.Days))
		ry += 30
	}

	if v := s.Visitor; v != nil {
		card := rl.NewRectangle(inner.X, inner.Y+inner.Height-120, inner.Width, 120)
		DrawPanel(card, "", true)
		offer := fmt.Sprintf("%s offers %d %s for %d %s.", v.Name, v.GiveAmount, v.Give, v.WantAmount, v.Want)
		drawWrappedText(offer, rl.NewRectangle(card.X+spaceS, card.Y+spaceS, card.Width-spaceS*2, 60), 0, typeScale.Body, colorText)
		if gui.Button(rl.NewRectangle(card.X+spaceS, card.Y+card.Height-40, 110, 30), "Accept") {
			ui.submit("accept")
		}
		if gui.Button(rl.NewRectangle(card.X+spaceS+120, card.Y+card.Height-40, 110, 30), "Decline") {
			ui.submit("decline")
		}
	}
}

func (ui *gameUI) drawLog(body rl.Rectangle) {
	DrawPanel(body, "Chronicle", false)
	inner := panelBody(body)
	ui.logRows = gui.SliderBar(rl.NewRectangle(inner.X+inner.Width-260, body.Y+spaceS, 200, 20), "10", "200", ui.logRows, 10, 200)

	entries := ui.ctrl.History.Tail(int(ui.logRows))
	if len(entries) == 0 {
		drawText("nothing has happened yet.", int32(inner.X), int32(inner.Y), typeScale.Body, colorDim)
		return
	}
	fit := int(inner.Height / 28)
	if len(entries) > fit {
		entries = entries[len(entries)-fit:]
	}
	y := inner.Y
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		msg := e.Message
		if limit := int(inner.Width / 9); len(msg) > limit && limit > 3 {
			msg = msg[:limit-3] + "..."
		}
		DrawListItem(rl.NewRectangle(inner.X, y, inner.Width, 26), i == len(entries)-1,
			fmt.Sprintf("#%d %s", e.Action, e.Command), msg)
		y += 28
	}
}
