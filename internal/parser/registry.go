package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	canonical = normaliseInput(canonical)
	cmd, ok := r.commands[canonical]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		consumed := min(len(tokens), len(phrase.tokens))
		prefix := strings.Join(tokens[:consumed], " ")

		if consumed == len(phrase.tokens) && prefix == phrase.alias {
			score := 1.0
			source := "exact"
			if phrase.alias != phrase.canonical {
				score = 0.97
				source = "alias"
			}
			// Longer phrases win over the single verb they start with.
			score += 0.1 * float64(consumed-1)
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  consumed,
				Score:     score,
				Source:    source,
			})
			continue
		}

		if len(phrase.tokens) == 1 && strings.HasPrefix(phrase.alias, tokens[0]) && len(tokens[0]) >= 2 {
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  1,
				Score:     0.9,
				Source:    "prefix",
			})
			continue
		}

		// Fuzzy: only when there was no exact/prefix hit for this phrase.
		cut := consumed
		compare := prefix
		if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
			cut = len(phrase.tokens)
			compare = strings.Join(tokens[:cut], " ")
		}
		if cut == 0 || compare == "" {
			continue
		}
		if len(compare) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(compare, phrase.alias)
		limit := levenshteinLimit(len(phrase.alias))
		if dist > limit {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, phrase.alias) {
			score += 0.04
		}
		if phrase.alias != phrase.canonical {
			score += 0.03
		}
		cands = append(cands, commandCandidate{
			Canonical: phrase.canonical,
			Alias:     phrase.alias,
			Consumed:  cut,
			Score:     score,
			Source:    "lev",
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, HandlerKey: "help"},
		{Canonical: "status", Aliases: []string{"st", "look", "l", "stores"}, HandlerKey: "status"},
		{Canonical: "garden", Aliases: []string{"grid", "plots", "network"}, HandlerKey: "garden"},
		{Canonical: "residents", Aliases: []string{"who", "people", "neighbours"}, HandlerKey: "residents"},
		{Canonical: "tend", Aliases: []string{"clean", "wipe", "tend panel", "clean panel"}, HandlerKey: "tend"},
		{Canonical: "fix", Aliases: []string{"maintain", "repair", "mend"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "fix"},
		{Canonical: "build", Aliases: []string{"construct", "make"}, MaxArgs: 3, HandlerKey: "build"},
		{Canonical: "dig", Aliases: []string{"till", "inoculate", "sow"}, TakesCell: true, HandlerKey: "sow"},
		{Canonical: "plant", MinArgs: 1, MaxArgs: 1, TakesCell: true, HandlerKey: "plant"},
		{Canonical: "water", Aliases: []string{"wet", "soak"}, TakesCell: true, HandlerKey: "water"},
		{Canonical: "harvest", Aliases: []string{"pick", "reap", "gather"}, TakesCell: true, HandlerKey: "harvest"},
		{Canonical: "clear", Aliases: []string{"weed", "pull"}, TakesCell: true, HandlerKey: "clear"},
		{Canonical: "compost", Aliases: []string{"enrich", "mulch"}, TakesCell: true, HandlerKey: "improve"},
		{Canonical: "pile", Aliases: []string{"add compost", "turn pile"}, HandlerKey: "pile"},
		{Canonical: "feed", TakesCell: true, HandlerKey: "feed"},
		{Canonical: "extend", Aliases: []string{"spread"}, TakesCell: true, HandlerKey: "extend"},
		{Canonical: "suppress", Aliases: []string{"cut back"}, TakesCell: true, HandlerKey: "suppress"},
		{Canonical: "trade", MaxArgs: 1, HandlerKey: "trade"},
		{Canonical: "accept", Aliases: []string{"yes", "y", "deal"}, HandlerKey: "accept"},
		{Canonical: "decline", Aliases: []string{"no", "refuse", "pass"}, HandlerKey: "decline"},
		{Canonical: "explore", Aliases: []string{"venture", "scavenge", "wander", "go out"}, HandlerKey: "explore"},
		{Canonical: "flower", MinArgs: 2, MaxArgs: 2, HandlerKey: "flower"},
		{Canonical: "flowers", Aliases: []string{"tend flowers", "meadow"}, HandlerKey: "flowers"},
		{Canonical: "frame", MaxArgs: 1, HandlerKey: "frame"},
		{Canonical: "wait", Aliases: []string{"rest", "idle", "z"}, HandlerKey: "wait"},

		// Session commands handled outside the world.
		{Canonical: "save", HandlerKey: "save"},
		{Canonical: "backups", HandlerKey: "backups"},
		{Canonical: "log", Aliases: []string{"history", "chronicle"}, MaxArgs: 1, HandlerKey: "log"},
		{Canonical: "quit", Aliases: []string{"exit", "q", "bye"}, HandlerKey: "quit"},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
