package application

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/dvdk01/trove-counter/internal/schema"
	log "github.com/sirupsen/logrus"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.Refresh}}">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// htmlApplication keeps a single HTML file up to date, the way a notebook
// output cell is replaced in place.
type htmlApplication struct {
	path    string
	refresh int
}

func NewHTMLApplication(path string, refreshSeconds int) *htmlApplication {
	if refreshSeconds <= 0 {
		refreshSeconds = 5
	}
	return &htmlApplication{path: path, refresh: refreshSeconds}
}

// Clear leaves the previous page in place; Render swaps the new one in with
// a rename so a reload never sees an empty file.
func (ha *htmlApplication) Clear() error {
	return nil
}

func (ha *htmlApplication) Render(display schema.Display) error {
	tmp, err := os.CreateTemp(filepath.Dir(ha.path), ".trove-counter-*.html")
	if err != nil {
		return fmt.Errorf("render %s: %w", ha.path, err)
	}
	defer os.Remove(tmp.Name()) //nolint

	title := display.Variant
	if title == "" {
		title = "trove-counter"
	}
	err = pageTemplate.Execute(tmp, struct {
		Refresh int
		Title   string
		Body    template.HTML
	}{
		Refresh: ha.refresh,
		Title:   title,
		Body:    template.HTML(display.HTML), //nolint:gosec // produced by the render package
	})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", ha.path, err)
	}

	if err := os.Rename(tmp.Name(), ha.path); err != nil {
		return fmt.Errorf("render %s: %w", ha.path, err)
	}

	log.WithField("path", ha.path).Debug("html output replaced")
	return nil
}
