package rendering

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// PageElementID is the DOM id of the laid-out page in the HTML output
const PageElementID = "resume-page"

// PageSettings carries the page geometry and styling applied when a tree is
// written out as a standalone HTML document
type PageSettings struct {
	Title      string
	Format     types.PageFormat
	WidthPx    int
	HeightPx   int
	PaddingIn  float64
	FontSizePx float64
	LineHeight float64
	Colors     types.ResumeColors
	FontFamily string
}

type htmlPage struct {
	PageSettings
	Tree Node
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"attr": func(n Node, key string) string { return n.Attr(key) },
	"src":  imageSource,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.WidthPx}}px {{.HeightPx}}px; margin: 0; }
body { margin: 0; background: #ffffff; }
#resume-page { width: {{.WidthPx}}px; box-sizing: border-box; padding: {{.PaddingIn}}in; font-family: {{.FontFamily}}, sans-serif; font-size: {{.FontSizePx}}px; line-height: {{.LineHeight}}; color: {{.Colors.Text}}; background: {{.Colors.Background}}; }
.name, .section-heading { color: {{.Colors.Primary}}; margin: 0 0 4px 0; }
.job-title, .entry-org, .entry-dates { color: {{.Colors.Secondary}}; }
.tag { display: inline-block; margin: 0 4px 4px 0; padding: 1px 6px; border: 1px solid {{.Colors.Accent}}; color: {{.Colors.Accent}}; border-radius: 4px; }
.columns { display: flex; gap: 16px; }
.column-left { flex: 0 0 30%; }
.column-right { flex: 1 1 auto; }
.table { width: 100%; border-collapse: collapse; margin-bottom: 8px; }
.table td, .table th { border: 1px solid {{.Colors.Secondary}}; padding: 4px; text-align: left; vertical-align: top; }
.label { font-weight: 600; }
.profile-image { max-width: 120px; }
.text-10px { font-size: 10px; } .text-11px { font-size: 11px; } .text-xs { font-size: 12px; } .text-sm { font-size: 14px; } .text-base { font-size: 16px; }
p { margin: 0 0 4px 0; } ul { margin: 0 0 4px 0; padding-left: 16px; }
</style>
</head>
<body>
<div id="resume-page">{{template "node" .Tree}}</div>
</body>
</html>
{{define "node"}}{{if eq .Kind "page"}}<div class="{{.Class}}" data-template="{{attr . "template"}}">{{template "children" .}}</div>{{else if eq .Kind "header"}}<header class="{{.Class}}">{{template "children" .}}</header>{{else if eq .Kind "column"}}<div class="{{.Class}}">{{template "children" .}}</div>{{else if eq .Kind "section"}}<section class="{{.Class}}" data-section="{{attr . "section"}}"{{with attr . "column"}} data-column="{{.}}"{{end}}>{{template "children" .}}</section>{{else if eq .Kind "heading"}}{{if eq .Class "name"}}<h1 class="{{.Class}}">{{.Text}}</h1>{{else}}<h3 class="{{.Class}}">{{.Text}}</h3>{{end}}{{else if eq .Kind "text"}}<p class="{{.Class}}">{{.Text}}</p>{{else if eq .Kind "list"}}<ul class="{{.Class}}">{{template "children" .}}</ul>{{else if eq .Kind "item"}}<li class="{{.Class}}">{{.Text}}{{template "children" .}}</li>{{else if eq .Kind "tag"}}<span class="{{.Class}}">{{.Text}}</span>{{else if eq .Kind "table"}}<table class="{{.Class}}"><tbody>{{template "children" .}}</tbody></table>{{else if eq .Kind "row"}}<tr>{{template "children" .}}</tr>{{else if eq .Kind "cell"}}{{if eq (attr . "header") "true"}}<th class="{{.Class}}">{{.Text}}{{template "children" .}}</th>{{else}}<td class="{{.Class}}"{{with attr . "rowspan"}} rowspan="{{.}}"{{end}}>{{.Text}}{{template "children" .}}</td>{{end}}{{else if eq .Kind "image"}}<img class="{{.Class}}" src="{{src (attr . "src")}}" alt="Profile">{{else if eq .Kind "link"}}<a class="{{.Class}}" href="{{attr . "href"}}">{{.Text}}</a>{{else}}<div class="{{.Class}}">{{.Text}}{{template "children" .}}</div>{{end}}{{end}}
{{define "children"}}{{range .Children}}{{template "node" .}}{{end}}{{end}}`))

// imageSource lets inline image data through html/template's URL filter
func imageSource(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://") {
		return template.URL(src)
	}
	return template.URL("about:blank")
}

// WriteHTML writes tree as a standalone HTML document. Output is buffered so a
// template failure never leaves a partial document in w.
func WriteHTML(w io.Writer, tree Node, settings PageSettings) error {
	if settings.Title == "" {
		settings.Title = "Resume"
	}
	if settings.FontFamily == "" {
		settings.FontFamily = tree.Attr("font-family")
	}
	if settings.PaddingIn == 0 {
		settings.PaddingIn = 0.75
	}
	if settings.FontSizePx == 0 {
		settings.FontSizePx = 11
	}
	if settings.LineHeight == 0 {
		settings.LineHeight = 1.35
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, htmlPage{PageSettings: settings, Tree: tree}); err != nil {
		return &RenderError{Message: "failed to execute page template", Cause: err}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}

// HTML renders tree to a string
func HTML(tree Node, settings PageSettings) (string, error) {
	var sb strings.Builder
	if err := WriteHTML(&sb, tree, settings); err != nil {
		return "", err
	}
	return sb.String(), nil
}
