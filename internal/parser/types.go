package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Meta
	Unknown
)

// Cell is a one-based garden coordinate.
type Cell struct {
	X int
	Y int
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Cell       *Cell
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext holds the names the settlement currently knows about,
// used to correct typos in arguments.
type ParseContext struct {
	Buildings  []string
	Crops      []string
	Flowers    []string
	Conditions []string
	FrameTasks []string
	Visitor    bool
	LastCell   *Cell
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	TakesCell  bool
	HandlerKey string
}
