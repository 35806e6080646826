package formatter

// ValidFormatter lists the explanation steps of a valid step.
type ValidFormatter struct{}

func (f *ValidFormatter) FindingTemplate() string {
	return `{{header .Verdict .Location .Padding}}
{{exprs .Prev .Next .Padding}}{{steps .Steps .Padding}}
`
}
