package formatter

// GeneralFormatter renders verdicts without steps or mistakes.
type GeneralFormatter struct{}

func (f *GeneralFormatter) FindingTemplate() string {
	return `{{header .Verdict .Location .Padding}}
{{exprs .Prev .Next .Padding}}{{message (describe .Verdict .Error) .Padding}}
`
}
