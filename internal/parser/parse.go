package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Type help for the list."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, tend, fix, build, garden, water, harvest, trade, explore.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens = dropFillers(argsTokens)

	// "clear the dust" means the panel, not a plot.
	if intent.Verb == "clear" && len(argsTokens) > 0 {
		if c, _, tie := bestMatches(argsTokens[0], ctx.Conditions); len(c) == 1 && !tie {
			intent.Verb = "fix"
		}
	}

	def, _ := p.registry.command(intent.Verb)
	if def.TakesCell {
		rest, cell := splitCell(argsTokens)
		if cell == nil {
			rest, cell = resolvePronounCell(ctx, rest)
		}
		if cell == nil {
			intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("Which plot should I %s? Give it as x y, like %s 3 4.", def.Canonical, def.Canonical)}
			intent.Confidence = 0.44
			return intent
		}
		intent.Cell = cell
		argsTokens = rest
	}

	resolvedArgs, clarify, argScore := resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		if options := buildArgOptions(ctx, intent, 5); len(options) > 0 {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
				Options: options,
			}
			intent.Confidence = 0.46
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "garden", "residents":
		return Query
	case "save", "backups", "log", "quit":
		return Meta
	default:
		return Command
	}
}

func dropFillers(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !isFiller(t) {
			out = append(out, t)
		}
	}
	return out
}

func resolvePronounCell(ctx ParseContext, tokens []string) ([]string, *Cell) {
	for i, t := range tokens {
		if isPronoun(t) && ctx.LastCell != nil {
			c := *ctx.LastCell
			rest := append(append([]string(nil), tokens[:i]...), tokens[i+1:]...)
			return rest, &c
		}
	}
	return tokens, nil
}

// vocabulary returns the names an argument position may take.
func vocabulary(ctx ParseContext, verb string, argPos int) []string {
	switch {
	case verb == "fix" && argPos == 0:
		return ctx.Conditions
	case verb == "build" && argPos == 0:
		return ctx.Buildings
	case verb == "plant" && argPos == 0:
		return ctx.Crops
	case verb == "flower" && argPos == 1:
		return ctx.Flowers
	case verb == "frame" && argPos == 0:
		return ctx.FrameTasks
	case verb == "trade" && argPos == 0:
		return []string{"yes", "no"}
	default:
		return nil
	}
}

func resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		pos := len(resolved)
		token := args[i]

		if def.Canonical == "flower" && pos == 0 {
			if _, err := strconv.Atoi(token); err != nil {
				return nil, &ClarifyQuestion{Prompt: "Which slot? Flowers are planted as flower <slot> <variety>."}, 0.4
			}
			resolved = append(resolved, token)
			continue
		}

		vocab := vocabulary(ctx, def.Canonical, pos)
		if len(vocab) == 0 {
			resolved = append(resolved, token)
			score -= 0.02
			continue
		}

		// Building names run to two words.
		joined := token
		if i+1 < len(args) {
			try := token + " " + args[i+1]
			if _, s, _ := bestMatches(try, vocab); s > 0.9 {
				joined = try
				i++
			}
		}
		entity, confidence, tie := bestMatches(joined, vocab)
		if tie && len(entity) >= 2 {
			options := make([]Intent, 0, 2)
			for idx := 0; idx < 2; idx++ {
				options = append(options, Intent{
					Kind:       commandKind(def.Canonical),
					Verb:       def.Canonical,
					Args:       append(append([]string(nil), resolved...), entity[idx]),
					Confidence: confidence - float64(idx)*0.01,
				})
			}
			return nil, &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Did you mean %s %s or %s?", def.Canonical, entity[0], entity[1]),
				Options: options,
			}, 0.52
		}
		if len(entity) == 1 {
			resolved = append(resolved, entity[0])
			score = minScore(score, confidence)
			continue
		}
		resolved = append(resolved, joined)
		score -= 0.1
	}
	return resolved, nil, clampScore(score)
}

func bestMatches(token string, all []string) ([]string, float64, bool) {
	token = normaliseInput(token)
	if len(all) == 0 || token == "" {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}

	results := make([]scored, 0, len(all))
	for _, raw := range all {
		cand := normaliseInput(raw)
		if cand == "" {
			continue
		}
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildArgOptions(ctx ParseContext, intent Intent, maxOptions int) []Intent {
	pos := len(intent.Args)
	vocab := vocabulary(ctx, intent.Verb, pos)
	options := make([]Intent, 0, maxOptions)
	seen := map[string]bool{}
	for _, v := range vocab {
		n := normaliseInput(v)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		options = append(options, Intent{
			Kind:       intent.Kind,
			Verb:       intent.Verb,
			Args:       append(append([]string(nil), intent.Args...), n),
			Cell:       intent.Cell,
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "how are things", "what do i have", "how much power", "whats the weather", "what s the weather", "how is the panel") {
		return makeIntent(Query, "status", nil, 0.9)
	}
	if containsAnyPhrase(n, "who lives here", "who is here", "how is everyone") {
		return makeIntent(Query, "residents", nil, 0.9)
	}
	if containsAnyPhrase(n, "how is the garden", "show the garden", "show me the garden") {
		return makeIntent(Query, "garden", nil, 0.88)
	}
	if containsAnyPhrase(n, "wipe the panel", "dust the panel", "clean the panel", "clean up the panel", "look after the panel") {
		return makeIntent(Command, "tend", nil, 0.86)
	}
	if ctx.Visitor {
		if containsAnyPhrase(n, "yes please", "sure", "ok", "okay", "take the offer", "accept the offer", "deal") {
			return makeIntent(Command, "accept", nil, 0.84)
		}
		if containsAnyPhrase(n, "no thanks", "no thank you", "not today", "turn them away", "send them on") {
			return makeIntent(Command, "decline", nil, 0.84)
		}
	}
	if containsAnyPhrase(n, "head out", "go exploring", "look around outside", "search the ruins", "go scavenging") {
		return makeIntent(Command, "explore", nil, 0.82)
	}
	if containsAnyPhrase(n, "let time pass", "do nothing", "sit a while", "take a break") {
		return makeIntent(Command, "wait", nil, 0.8)
	}
	for _, c := range ctx.Conditions {
		if containsWord(n, c) && containsAnyPhrase(n, "fix", "clear", "clean", "sort out", "deal with") {
			return makeIntent(Command, "fix", []string{normaliseInput(c)}, 0.8)
		}
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent as the plain command line the
// session understands: verb, then the plot, then the remaining arguments.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	parts := []string{verb}
	if intent.Cell != nil {
		parts = append(parts, strconv.Itoa(intent.Cell.X), strconv.Itoa(intent.Cell.Y))
	}
	for _, arg := range intent.Args {
		if n := normaliseInput(arg); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}
