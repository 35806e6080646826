package types

// Verdict classifies the outcome of checking one step.
type Verdict string

const (
	// VerdictValid means a chain of rules connects the two expressions.
	VerdictValid Verdict = "valid"
	// VerdictMistake means no chain was found but the error was diagnosed.
	VerdictMistake Verdict = "mistake"
	// VerdictNoPath means no chain and no diagnosis was found.
	VerdictNoPath Verdict = "no-path"
	// VerdictInconclusive means the search ran out of budget.
	VerdictInconclusive Verdict = "inconclusive"
	// VerdictInvalidInput means one of the expressions did not parse.
	VerdictInvalidInput Verdict = "invalid-input"
)

// Failed reports whether the verdict should fail a batch run.
func (v Verdict) Failed() bool {
	return v != VerdictValid
}

// Step is the printable form of one explanation step.
type Step struct {
	Message  string `json:"message"`
	Before   string `json:"before"`
	After    string `json:"after"`
	Substeps []Step `json:"substeps,omitempty"`
}

// Mistake is the printable form of a diagnosed mistake.
type Mistake struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	PrevNodes   []string `json:"prev_nodes,omitempty"`
	NextNodes   []string `json:"next_nodes,omitempty"`
	// Corrections holds suggested replacements as "wrong -> right".
	Corrections []string `json:"corrections,omitempty"`
}

// Finding is the outcome of one step read from a step file.
type Finding struct {
	Filename string    `json:"filename"`
	Index    int       `json:"index"`
	Prev     string    `json:"prev"`
	Next     string    `json:"next"`
	Verdict  Verdict   `json:"verdict"`
	Steps    []Step    `json:"steps,omitempty"`
	Mistakes []Mistake `json:"mistakes,omitempty"`
	Rules    []string  `json:"rules,omitempty"`
	Error    string    `json:"error,omitempty"`
}
