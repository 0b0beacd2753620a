package report

import (
	"html/template"
	"io"
)

const htmlReportTemplateConstant = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Repository report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
code { background: #f2f2f2; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>Repository report</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02T15:04:05Z07:00"}}</p>
<table>
<tr><th>Path</th><th>Branch</th><th>State</th><th>Remote</th></tr>
{{range .Repositories}}<tr><td>{{.Path}}</td><td>{{.Branch}}</td><td>{{stateLabel .}}</td><td>{{.RemoteURL}}</td></tr>
{{end}}</table>
{{range .Repositories}}{{if .Commits}}<h2>{{.Path}}</h2>
<ul>
{{range .Commits}}<li><code>{{.Hash}}</code> {{.Message}}</li>
{{end}}</ul>
{{end}}{{end}}</body>
</html>
`

var htmlReportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"stateLabel": describeSnapshotState,
}).Parse(htmlReportTemplateConstant))

// HTMLRenderer renders reports as standalone HTML documents.
type HTMLRenderer struct{}

// Render writes the report in HTML format.
func (renderer *HTMLRenderer) Render(writer io.Writer, exportReport *Report) error {
	return htmlReportTemplate.Execute(writer, exportReport)
}
