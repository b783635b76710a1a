package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/filter"
	"github.com/legacycrew/toolshub/internal/request"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the characters that carry meaning in HTML text and
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Chip is one division filter control on the page.
type Chip struct {
	Label  string
	Active bool
	Href   string
}

// PageOptions adjusts how a page links to itself.
type PageOptions struct {
	// Base prefixes every internal link; empty keeps links relative.
	Base string
	// Static marks a page with no server behind it: chips are plain labels
	// and the request form is omitted.
	Static      bool
	Draft       request.Draft
	RequestText string
}

// Page is everything the HTML template needs.
type Page struct {
	Title         string
	Search        string
	Division      string
	Chips         []Chip
	Result        Result
	EmptyMessage  string
	Static        bool
	ManageHref    string
	Source        string
	Home          string
	RequestAction string
	ClearHref     string
	Draft         request.Draft
	RequestText   string
}

// NewPage builds the page for the given filter state.
func NewPage(c *catalog.Catalog, state filter.State, opts PageOptions) Page {
	chips := make([]Chip, 0, len(c.Chips()))
	for _, label := range c.Chips() {
		chips = append(chips, Chip{
			Label:  label,
			Active: state.IsActive(label),
			Href:   opts.Base + Query(state.SetDivision(label)),
		})
	}
	return Page{
		Title:         c.Title(),
		Search:        state.Search,
		Division:      state.Division,
		Chips:         chips,
		Result:        Build(state.Apply(c.Records())),
		EmptyMessage:  EmptyMessage,
		Static:        opts.Static,
		ManageHref:    opts.Base + "catalog.yaml",
		Source:        c.Source(),
		Home:          opts.Base,
		RequestAction: opts.Base + "request",
		ClearHref:     opts.Base + Query(state),
		Draft:         opts.Draft,
		RequestText:   opts.RequestText,
	}
}

// Query encodes a filter state as a relative link.
func Query(s filter.State) string {
	v := url.Values{}
	if strings.TrimSpace(s.Search) != "" {
		v.Set("q", s.Search)
	}
	if s.Division != "" && s.Division != catalog.All {
		v.Set("division", s.Division)
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"text": func(s string) template.HTML { return template.HTML(EscapeHTML(s)) },
}).Parse(pageHTML))

// WritePage renders p as a complete HTML document.
func WritePage(w io.Writer, p Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{text .Title}}</title>
</head>
<body>
<header>
  <h1>{{text .Title}}</h1>
  {{- if not .Static}}
  <form class="search" method="get" action="{{.Home}}">
    <input id="search" type="search" name="q" value="{{.Search}}" placeholder="Search tools">
    {{if ne .Division "All"}}<input type="hidden" name="division" value="{{.Division}}">{{end}}
  </form>
  {{- end}}
  <nav class="chips">
  {{- range .Chips}}
  {{- if $.Static}}
    <span class="chip{{if .Active}} active{{end}}" aria-pressed="{{if .Active}}true{{else}}false{{end}}">{{text .Label}}</span>
  {{- else}}
    <a class="chip{{if .Active}} active{{end}}" href="{{.Href}}" aria-pressed="{{if .Active}}true{{else}}false{{end}}">{{text .Label}}</a>
  {{- end}}
  {{- end}}
  </nav>
  <p><span id="count">{{.Result.Count}}</span> tools</p>
</header>
<main id="grid">
{{- if .Result.Empty}}
  <div class="desc">{{text .EmptyMessage}}</div>
{{- else}}
{{- range .Result.Cards}}
  <div class="card">
    <div class="card-top">
      <h3>{{text .Name}}</h3>
      <span class="tag">{{text .Label}}</span>
    </div>
    <div class="desc">{{text .Description}}</div>
    <div class="card-actions">
      <a class="btn primary" href="{{.URL}}" target="_blank" rel="noreferrer">Open Tool</a>
      <a class="small" href="{{.Repo}}" target="_blank" rel="noreferrer">Repo</a>
    </div>
  </div>
{{- end}}
{{- end}}
</main>
{{- if not .Static}}
<section id="request">
  <h2>Request a tool</h2>
  <form method="get" action="{{.RequestAction}}">
    {{if .Search}}<input type="hidden" name="q" value="{{.Search}}">{{end}}
    {{if ne .Division "All"}}<input type="hidden" name="division" value="{{.Division}}">{{end}}
    <input id="reqName" name="name" value="{{.Draft.Name}}" placeholder="Tool name">
    <textarea id="reqDesc" name="description" placeholder="What should it do?">{{.Draft.Description}}</textarea>
    <input id="reqUsers" name="users" value="{{.Draft.Users}}" placeholder="Who will use it?">
    <button id="genRequest" type="submit">Generate</button>
    <a id="clearRequest" href="{{.ClearHref}}">Clear</a>
  </form>
  <pre id="requestOut">{{text .RequestText}}</pre>
</section>
<footer>
  <a id="manageLink" href="{{.ManageHref}}">Manage tools</a>
</footer>
{{- else}}
<footer>
  <span id="manageLink">Manage tools: {{text .Source}}</span>
</footer>
{{- end}}
</body>
</html>
`
