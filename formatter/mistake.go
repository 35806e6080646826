package formatter

type MistakeFormatter struct{}

func (f *MistakeFormatter) FindingTemplate() string {
	return `{{header .Verdict .Location .Padding}}
{{exprs .Prev .Next .Padding}}
{{- range .Mistakes}}{{mistake . $.Padding}}{{end}}
`
}
