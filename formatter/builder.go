package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	okStyle         = color.New(color.FgGreen, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// findingFormatter is the interface that wraps the FindingTemplate method.
// Implementations render one kind of verdict.
type findingFormatter interface {
	FindingTemplate() string
}

// getFindingFormatter returns the formatter for a verdict.
func getFindingFormatter(verdict tt.Verdict) findingFormatter {
	switch verdict {
	case tt.VerdictValid:
		return &ValidFormatter{}
	case tt.VerdictMistake:
		return &MistakeFormatter{}
	default:
		return &GeneralFormatter{}
	}
}

// GenerateFormattedFindings renders findings in order, each with its own
// header.
func GenerateFormattedFindings(findings []tt.Finding) string {
	var builder strings.Builder
	for _, f := range findings {
		builder.WriteString(buildFinding(f, getFindingFormatter(f.Verdict)))
	}
	return builder.String()
}

// Summary counts findings per verdict, in a fixed verdict order.
func Summary(findings []tt.Finding) string {
	order := []tt.Verdict{
		tt.VerdictValid, tt.VerdictMistake, tt.VerdictNoPath,
		tt.VerdictInconclusive, tt.VerdictInvalidInput,
	}
	counts := make(map[tt.Verdict]int)
	for _, f := range findings {
		counts[f.Verdict]++
	}

	parts := make([]string, 0, len(order))
	for _, v := range order {
		if counts[v] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[v], v))
		}
	}
	noun := "steps"
	if len(findings) == 1 {
		noun = "step"
	}
	if len(parts) == 0 {
		return fmt.Sprintf("0 %s checked\n", noun)
	}
	return fmt.Sprintf("%d %s checked: %s\n", len(findings), noun, strings.Join(parts, ", "))
}

/***** Finding Formatter Builder *****/

type FindingData struct {
	Verdict  string
	Location string
	Padding  string
	Prev     string
	Next     string
	Steps    []tt.Step
	Mistakes []tt.Mistake
	Error    string
}

func buildFinding(f tt.Finding, formatter findingFormatter) string {
	location := fmt.Sprintf("step %d", f.Index)
	if f.Filename != "" {
		location = fmt.Sprintf("%s#%d", f.Filename, f.Index)
	}

	data := FindingData{
		Verdict:  string(f.Verdict),
		Location: location,
		Padding:  strings.Repeat(" ", calculateMaxNumWidth(len(f.Steps))+1),
		Prev:     f.Prev,
		Next:     f.Next,
		Steps:    f.Steps,
		Mistakes: f.Mistakes,
		Error:    f.Error,
	}

	funcMap := template.FuncMap{
		"header":   header,
		"exprs":    exprs,
		"steps":    steps,
		"mistake":  mistake,
		"message":  message,
		"describe": describe,
	}

	tmpl := template.Must(template.New("finding").Funcs(funcMap).Parse(formatter.FindingTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting finding: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(verdict, location, padding string) string {
	var s string
	switch tt.Verdict(verdict) {
	case tt.VerdictValid:
		s = okStyle.Sprint("ok: ")
	case tt.VerdictInconclusive:
		s = warningStyle.Sprint("warning: ")
	default:
		s = errorStyle.Sprint("error: ")
	}
	s += ruleStyle.Sprintf("%s\n", verdict)
	s += lineStyle.Sprintf("%s--> ", padding[1:])
	s += fileStyle.Sprint(location)
	return s
}

func exprs(prev, next, padding string) string {
	s := lineStyle.Sprintf("%s|\n", padding)
	s += lineStyle.Sprintf("%s| ", padding) + prev + "\n"
	s += lineStyle.Sprintf("%s| ", padding) + "=> " + next + "\n"
	return s
}

func steps(list []tt.Step, padding string) string {
	width := len(padding) - 1
	var s string
	for i, step := range list {
		s += lineStyle.Sprintf("%*d | ", width, i+1) + suggestionStyle.Sprint(step.Message) + "\n"
		s += lineStyle.Sprintf("%s|   ", padding) + step.Before + " -> " + step.After + "\n"
		s += substeps(step.Substeps, padding, 2)
	}
	return s
}

func substeps(list []tt.Step, padding string, depth int) string {
	indent := strings.Repeat("  ", depth)
	var s string
	for _, step := range list {
		s += lineStyle.Sprintf("%s|", padding) + indent + step.Message + ": " + step.Before + " -> " + step.After + "\n"
		s += substeps(step.Substeps, padding, depth+1)
	}
	return s
}

func mistake(m tt.Mistake, padding string) string {
	s := lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprint(m.ID) + ": " + m.Description + "\n"
	if len(m.PrevNodes) > 0 {
		s += lineStyle.Sprintf("%s|   ", padding) + "in prev: " + strings.Join(m.PrevNodes, ", ") + "\n"
	}
	if len(m.NextNodes) > 0 {
		s += lineStyle.Sprintf("%s|   ", padding) + "in next: " + strings.Join(m.NextNodes, ", ") + "\n"
	}
	for _, c := range m.Corrections {
		s += suggestionStyle.Sprint("Suggestion: ") + c + "\n"
	}
	return s
}

func message(msg, padding string) string {
	return lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprintf("%s\n", msg)
}

// describe explains verdicts that carry no steps or mistakes.
func describe(verdict, errMsg string) string {
	switch tt.Verdict(verdict) {
	case tt.VerdictNoPath:
		return "no path found and no mistakes found"
	case tt.VerdictInconclusive:
		return "search limits reached before a path was found"
	default:
		if errMsg == "" {
			return verdict
		}
		return errMsg
	}
}

func calculateMaxNumWidth(n int) int {
	return len(fmt.Sprintf("%d", n))
}
