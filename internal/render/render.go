// Package render turns record counts into the HTML fragments shown on a
// display surface.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dvdk01/trove-counter/internal/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	countTemplate = template.Must(template.New("count").Parse(
		`<p style="line-height: 15rem;">Trove users have {{.Verb}} <span style="font-size: 10rem;">{{.Count}}</span> newspaper articles.</p>`))
	titleTemplate = template.Must(template.New("title").Parse(`<h1>{{.}}</h1>`))
	pageTemplate  = template.Must(template.New("page").Parse(`<iframe height="500" width="800" src="{{.}}"></iframe>`))
)

type Renderer struct {
	printer *message.Printer
	now     func() time.Time
}

func New() *Renderer {
	return &Renderer{
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// FormatCount groups digits the way the English locale does: 1234567 -> 1,234,567.
func (r *Renderer) FormatCount(count int64) string {
	return r.printer.Sprintf("%d", count)
}

func (r *Renderer) Count(variant schema.Variant, count int64) (schema.Display, error) {
	formatted := r.FormatCount(count)

	var buf bytes.Buffer
	err := countTemplate.Execute(&buf, struct {
		Verb  string
		Count string
	}{Verb: variant.Verb, Count: formatted})
	if err != nil {
		return schema.Display{}, fmt.Errorf("render %s: %w", variant.Name, err)
	}

	return schema.Display{
		Variant:    variant.Name,
		Count:      count,
		Formatted:  formatted,
		Text:       fmt.Sprintf("Trove users have %s %s newspaper articles.", variant.Verb, formatted),
		HTML:       buf.String(),
		RenderedAt: r.now(),
	}, nil
}

func (r *Renderer) Title(text string) (schema.Display, error) {
	return r.fragment(titleTemplate, text, text)
}

// Page embeds url in an 800x500 iframe.
func (r *Renderer) Page(url string) (schema.Display, error) {
	return r.fragment(pageTemplate, url, url)
}

func (r *Renderer) fragment(tmpl *template.Template, data any, text string) (schema.Display, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return schema.Display{}, fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return schema.Display{
		Text:       text,
		HTML:       buf.String(),
		RenderedAt: r.now(),
	}, nil
}
