package gui

import (
	"fmt"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mcweebus/quietcurrent/internal/config"
	"github.com/mcweebus/quietcurrent/internal/game"
	uitheme "github.com/mcweebus/quietcurrent/internal/gui/theme"
	"github.com/mcweebus/quietcurrent/internal/play"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *play.Controller
	// Fresh asks for a name and garden before play starts.
	Fresh     bool
	Seed      int64
	Window    config.WindowConfig
	AssetsDir string
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	ui := newGameUI(a.cfg)
	return ui.Run()
}

type screen int

const (
	screenNaming screen = iota
	screenSettlement
	screenGarden
	screenFlowers
	screenLog
)

var playScreens = []struct {
	Label  string
	Screen screen
}{
	{"Settlement", screenSettlement},
	{"Garden", screenGarden},
	{"Flowers", screenFlowers},
	{"Log", screenLog},
}

const (
	maxMessages = 260
	maxNameLen  = 24
	maxInputLen = 80
)

type gameUI struct {
	cfg  AppConfig
	ctrl *play.Controller

	width  int32
	height int32
	quit   bool

	screen screen

	nameInput string
	variant   game.Variant

	input    string
	recall   []string
	messages []string
	choices  []string
	status   string

	tool      int
	crop      int
	flower    int
	hoverCell int
	logRows   float32

	intents *intentQueue
	now     func() time.Time
}

func newGameUI(cfg AppConfig) *gameUI {
	ui := &gameUI{
		cfg:       cfg,
		ctrl:      cfg.Controller,
		width:     int32(cfg.Window.Width),
		height:    int32(cfg.Window.Height),
		screen:    screenSettlement,
		variant:   game.VariantNetwork,
		hoverCell: -1,
		logRows:   40,
		intents:   newIntentQueue(16),
		now:       time.Now,
	}
	if ui.width <= 0 || ui.height <= 0 {
		ui.width, ui.height = 1280, 760
	}
	if cfg.Fresh {
		ui.screen = screenNaming
	} else {
		for _, line := range ui.ctrl.Resume() {
			ui.appendMessage(line)
		}
	}
	return ui
}

func (ui *gameUI) Run() error {
	fps := int32(ui.cfg.Window.FPS)
	if fps <= 0 {
		fps = 60
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "quiet current")
	rl.SetExitKey(0)
	rl.SetTargetFPS(fps)
	initTypography()
	uitheme.InitSkin(ui.cfg.AssetsDir)

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.update()

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.draw()
		rl.EndDrawing()
	}

	uitheme.UnloadSkin()
	shutdownTypography()
	rl.CloseWindow()
	if ui.screen == screenNaming {
		return nil
	}
	return ui.ctrl.Close()
}

func (ui *gameUI) update() {
	if ui.screen == screenNaming {
		ui.updateNaming()
		return
	}

	if ctrlDown() && rl.IsKeyPressed(rl.KeyS) {
		ui.submit("save")
		return
	}
	if HotkeysEnabled(ui) {
		ui.updateHotkeys()
	}
	switch ui.screen {
	case screenGarden:
		ui.updateGarden()
	case screenFlowers:
		ui.updateFlowers()
	}
	ui.updateCommandLine()
	ui.processIntentQueue()
}

func (ui *gameUI) updateHotkeys() {
	if rl.IsKeyPressed(rl.KeyTab) {
		next := 0
		for i, s := range playScreens {
			if s.Screen == ui.screen {
				next = wrapIndex(i+1, len(playScreens))
			}
		}
		if ShiftKeyPressed(rl.KeyTab) {
			next = wrapIndex(next-2, len(playScreens))
		}
		ui.screen = playScreens[next].Screen
	}
}

func (ui *gameUI) updateCommandLine() {
	captureTextInput(&ui.input, maxInputLen)
	if rl.IsKeyPressed(rl.KeyUp) && len(ui.recall) > 0 {
		ui.input = ui.recall[len(ui.recall)-1]
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.input = ""
		ui.choices = nil
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		ui.submitInput()
	}
}

func (ui *gameUI) draw() {
	inset := uitheme.DrawFrame(ui.width, ui.height)
	if ui.screen == screenNaming {
		ui.drawNaming(inset)
		return
	}

	l := computeLayout(inset)
	ui.drawStatus(l.status)
	ui.drawTabs(l.tabs)
	switch ui.screen {
	case screenSettlement:
		ui.drawSettlement(l.body)
	case screenGarden:
		ui.drawGarden(l.body)
	case screenFlowers:
		ui.drawFlowers(l.body)
	case screenLog:
		ui.drawLog(l.body)
	}
	ui.drawMessages(l.messages)
	ui.drawCommandLine(l.input)
}

// layout splits the inset into fixed bands: status, tabs, body, recent
// messages and the command line.
type layout struct {
	status   rl.Rectangle
	tabs     rl.Rectangle
	body     rl.Rectangle
	messages rl.Rectangle
	input    rl.Rectangle
}

func computeLayout(inset rl.Rectangle) layout {
	statusH := float32(92)
	tabsH := float32(34)
	inputH := float32(44)
	messagesH := inset.Height * 0.26
	if messagesH < 120 {
		messagesH = 120
	}
	x, w := inset.X+spaceS, inset.Width-spaceS*2
	y := inset.Y + spaceS

	l := layout{}
	l.status = rl.NewRectangle(x, y, w, statusH)
	y += statusH + spaceXS
	l.tabs = rl.NewRectangle(x, y, w, tabsH)
	y += tabsH + spaceXS
	bottom := inset.Y + inset.Height - spaceS
	l.input = rl.NewRectangle(x, bottom-inputH, w, inputH)
	l.messages = rl.NewRectangle(x, l.input.Y-spaceXS-messagesH, w, messagesH)
	bodyH := l.messages.Y - spaceXS - y
	if bodyH < 120 {
		bodyH = 120
	}
	l.body = rl.NewRectangle(x, y, w, bodyH)
	return l
}

func (ui *gameUI) updateNaming() {
	captureTextInput(&ui.nameInput, maxNameLen)
	if rl.IsKeyPressed(rl.KeyTab) {
		ui.toggleVariant()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		ui.foundSettlement()
	}
}

func (ui *gameUI) toggleVariant() {
	if ui.variant == game.VariantNetwork {
		ui.variant = game.VariantCrops
	} else {
		ui.variant = game.VariantNetwork
	}
}

// foundSettlement swaps in a new world built from the naming form.
func (ui *gameUI) foundSettlement() bool {
	name := strings.TrimSpace(ui.nameInput)
	if name == "" {
		ui.status = "a settlement needs a name."
		return false
	}
	ui.ctrl.Session = game.NewSession(game.NewWorld(name, ui.variant, ui.cfg.Seed), nil)
	ui.screen = screenSettlement
	ui.status = ""
	ui.tool, ui.crop = 0, 0
	ui.appendMessage(fmt.Sprintf("%s. a panel under grime, and quiet.", name))
	ui.appendMessage("type help for commands, or press tab to look around.")
	if err := ui.ctrl.Save(); err != nil {
		ui.status = "save failed: " + err.Error()
	}
	return true
}

func (ui *gameUI) drawNaming(inset rl.Rectangle) {
	cw, ch := float32(560), float32(320)
	card := rl.NewRectangle(inset.X+(inset.Width-cw)/2, inset.Y+(inset.Height-ch)/2, cw, ch)
	DrawPanel(card, "A new settlement", true)
	body := panelBody(card)

	drawText("Name the place:", int32(body.X), int32(body.Y), typeScale.Body, colorDim)
	field := rl.NewRectangle(body.X, body.Y+28, body.Width, 40)
	DrawInputField(field, ui.nameInput, "somewhere quiet", true)

	drawText("Garden:", int32(body.X), int32(field.Y+field.Height+18), typeScale.Body, colorDim)
	y := field.Y + field.Height + 44
	if gui.Button(rl.NewRectangle(body.X, y, 200, 32), variantButtonLabel(game.VariantNetwork, ui.variant)) {
		ui.variant = game.VariantNetwork
	}
	if gui.Button(rl.NewRectangle(body.X+212, y, 200, 32), variantButtonLabel(game.VariantCrops, ui.variant)) {
		ui.variant = game.VariantCrops
	}
	if gui.Button(rl.NewRectangle(body.X+body.Width-120, body.Y+body.Height-36, 120, 32), "Begin") {
		ui.foundSettlement()
	}
	DrawHintText("tab switches garden, enter begins", int32(body.X), int32(body.Y+body.Height-28))
	if ui.status != "" {
		drawText(ui.status, int32(card.X), int32(card.Y+card.Height+12), typeScale.Small, colorWarn)
	}
}

func variantButtonLabel(v, selected game.Variant) string {
	label := "Mycelium network"
	if v == game.VariantCrops {
		label = "Crop rows"
	}
	if v == selected {
		return "[" + label + "]"
	}
	return label
}

func (ui *gameUI) drawStatus(rect rl.Rectangle) {
	DrawPanel(rect, "", false)
	w := ui.ctrl.Session.World
	x := int32(rect.X + spaceM)
	y := int32(rect.Y + spaceS)

	title := fmt.Sprintf("%s  day %d  %s", displayName(w), w.DaysFounded, w.Weather)
	drawText(title, x, y, typeScale.Header, colorAccent)
	if ui.ctrl.Session.Visitor != nil {
		note := ui.ctrl.Session.Visitor.Name + " is waiting at the edge"
		nw := measureText(note, typeScale.Small)
		drawText(note, int32(rect.X+rect.Width-spaceM)-nw, y+4, typeScale.Small, colorWarn)
	}

	stores := fmt.Sprintf("power %d   scrap %d   water %d   %s %d", w.Power, w.Scrap, w.Water, w.SeedLabel(), w.Seeds)
	drawText(stores, x, y+textLineHeight(typeScale.Header), typeScale.Body, colorText)

	meterW := float32(220)
	meterX := rect.X + rect.Width - spaceM - meterW
	meterY := rect.Y + 40
	uitheme.DrawMeter(rl.NewRectangle(meterX, meterY, meterW, 24),
		fmt.Sprintf("panel %s %d%%", w.PanelState, w.PanelEfficiency),
		w.PanelEfficiency, 100, meterColor(w.PanelEfficiency, 60, 30))
	uitheme.DrawMeter(rl.NewRectangle(meterX-meterW-spaceM, meterY, meterW, 24),
		fmt.Sprintf("residents %d/%d", len(w.Residents), game.ResidentCapacity),
		len(w.Residents), game.ResidentCapacity, AppTheme.Accent)
}

func (ui *gameUI) drawTabs(rect rl.Rectangle) {
	bw := float32(140)
	for i, s := range playScreens {
		label := s.Label
		if s.Screen == ui.screen {
			label = "> " + label
		}
		if gui.Button(rl.NewRectangle(rect.X+float32(i)*(bw+spaceXS), rect.Y, bw, rect.Height), label) {
			ui.screen = s.Screen
		}
	}
	DrawHintText("tab cycles views  ctrl+s saves  up recalls", int32(rect.X+float32(len(playScreens))*(bw+spaceXS)+spaceS), int32(rect.Y+8))
}

func (ui *gameUI) drawMessages(rect rl.Rectangle) {
	DrawPanel(rect, "", false)
	size := typeScale.Log
	lineH := textLineHeight(size)
	maxWidth := int32(rect.Width - spaceM*2)

	var lines []string
	var flash []bool
	for _, msg := range ui.messages {
		for _, wrapped := range wrapText(msg, size, maxWidth) {
			lines = append(lines, wrapped)
			flash = append(flash, strings.Contains(msg, "] ~ "))
		}
	}
	fit := int((rect.Height - spaceS*2) / float32(lineH))
	start := len(lines) - fit
	if start < 0 {
		start = 0
	}
	y := int32(rect.Y + spaceS)
	for i := start; i < len(lines); i++ {
		clr := colorText
		if flash[i] {
			clr = colorWarn
		}
		drawText(lines[i], int32(rect.X+spaceM), y, size, clr)
		y += lineH
	}
}

func (ui *gameUI) drawCommandLine(rect rl.Rectangle) {
	fieldW := rect.Width
	if len(ui.choices) > 0 {
		fieldW = rect.Width * 0.45
	}
	DrawInputField(rl.NewRectangle(rect.X, rect.Y, fieldW, rect.Height), ui.input, "type a command", true)

	x := rect.X + fieldW + spaceS
	for i, choice := range ui.choices {
		bw := float32(measureText(choice, typeScale.Small)) + spaceL
		if x+bw > rect.X+rect.Width {
			break
		}
		if gui.Button(rl.NewRectangle(x, rect.Y+4, bw, rect.Height-8), choice) {
			ui.submit(fmt.Sprintf("%d", i+1))
		}
		x += bw + spaceXS
	}
	if ui.status != "" && len(ui.choices) == 0 {
		sw := measureText(ui.status, typeScale.Small)
		drawText(ui.status, int32(rect.X+rect.Width-spaceM)-sw, int32(rect.Y+14), typeScale.Small, colorWarn)
	}
}

func (ui *gameUI) submitInput() {
	raw := strings.TrimSpace(ui.input)
	ui.input = ""
	if raw == "" {
		return
	}
	ui.recall = append(ui.recall, raw)
	ui.submit(raw)
}

// submit sends one command line through the controller and records the
// outcome in the message history.
func (ui *gameUI) submit(raw string) play.Outcome {
	ui.appendMessage("> " + raw)
	out := ui.ctrl.Submit(raw)
	for _, line := range out.Lines {
		ui.appendMessage(line)
	}
	for _, flash := range out.Flashes {
		ui.appendMessage("~ " + flash)
	}
	ui.choices = out.Choices
	ui.status = ""
	if out.Arrived && ui.ctrl.Session.Visitor != nil {
		ui.status = ui.ctrl.Session.Visitor.Name + " has arrived."
	}
	if out.Quit {
		ui.quit = true
	}
	return out
}

func (ui *gameUI) processIntentQueue() {
	for {
		intent, ok := ui.intents.Dequeue()
		if !ok {
			return
		}
		ui.submit(intentCommand(intent))
	}
}

func (ui *gameUI) appendMessage(message string) {
	line := strings.TrimSpace(message)
	if line == "" {
		return
	}
	formatted := fmt.Sprintf("[%s] %s", ui.now().Format("15:04:05"), line)
	ui.messages = append(ui.messages, formatted)
	if len(ui.messages) > maxMessages {
		ui.messages = append([]string(nil), ui.messages[len(ui.messages)-maxMessages:]...)
	}
}

func displayName(w *game.World) string {
	if w.Name == "" {
		return "the settlement"
	}
	return w.Name
}

func drawWrappedText(text string, rect rl.Rectangle, y int32, size int32, clr rl.Color) int32 {
	lines := wrapText(text, size, int32(rect.Width))
	for i, line := range lines {
		drawText(line, int32(rect.X), int32(rect.Y)+y+int32(i)*textLineHeight(size), size, clr)
	}
	return y + int32(len(lines))*textLineHeight(size)
}

func wrapText(text string, size int32, maxWidth int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureText(candidate, size) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)
	return lines
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}

func wrapIndex(i int, size int) int {
	if size <= 0 {
		return 0
	}
	for i < 0 {
		i += size
	}
	for i >= size {
		i -= size
	}
	return i
}

func clampInt(v int, min int, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
