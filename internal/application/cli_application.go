package application

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dvdk01/trove-counter/internal/schema"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const clearScreen = "\033[H\033[2J"

type cliApplication struct {
	out io.Writer
}

func NewCLIApplication(out io.Writer) *cliApplication {
	return &cliApplication{out: out}
}

func (ca *cliApplication) Clear() error {
	_, err := fmt.Fprint(ca.out, clearScreen)
	return err
}

func (ca *cliApplication) Render(display schema.Display) error {
	message := display.Text
	if display.Formatted != "" {
		message = highlightCount(display)
	}
	if _, err := fmt.Fprintln(ca.out, message); err != nil {
		return err
	}
	if display.Variant == "" {
		return nil
	}
	dumpTable(ca.out, display)
	return nil
}

func highlightCount(display schema.Display) string {
	highlighted := text.Colors{text.FgGreen, text.Bold}.Sprint(display.Formatted)
	return strings.Replace(display.Text, display.Formatted, highlighted, 1)
}

func dumpTable(out io.Writer, display schema.Display) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Variant", "Total", "Message", "Updated"})
	t.AppendRow(table.Row{
		display.Variant,
		display.Formatted,
		display.Text,
		display.RenderedAt.Format(time.TimeOnly),
	})

	t.Render()
}
