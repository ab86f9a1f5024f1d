package colors

import "github.com/fatih/color"

// Palette of pit's terminal output, one entry per kind of thing shown.
var (
	HashC     = color.New(color.FgYellow)
	IDC       = color.New(color.FgGreen, color.Bold)
	PathC     = color.New(color.FgMagenta)
	PromptC   = color.New(color.FgCyan)
	FaintC    = color.New(color.Faint)
	IncludedC = color.New(color.FgGreen)
	ExcludedC = color.New(color.FgRed)
)

var (
	// Hash colors (abbreviated) commit ids.
	Hash = HashC.Sprint
	// ID colors snapshot identifiers.
	ID     = IDC.Sprint
	Path   = PathC.Sprint
	Prompt = PromptC.Sprint
	Faint  = FaintC.Sprint

	// Included and Excluded color the two sections of `pit status`.
	Included = IncludedC.Sprint
	Excluded = ExcludedC.Sprint
)
