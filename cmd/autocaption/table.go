package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/saltyorg/autocaption/internal/autocaption"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// displayName returns the English name of a language tag, or "" if unknown
func displayName(tag string) string {
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	return display.Tags(language.English).Name(parsed)
}

func renderSelection(preference string, tracks []*autocaption.Track, sel autocaption.Selection) string {
	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		marker := ""
		if t == sel.Track {
			marker = "*"
		}
		def := ""
		if t.Default {
			def = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			string(t.Kind),
			t.Language,
			displayName(t.Language),
			t.Label,
			def,
			string(t.Mode),
			marker,
		})
	}

	var b strings.Builder
	b.WriteString(renderTable(
		[]string{"#", "Kind", "Language", "Name", "Label", "Default", "Mode", "Selected"},
		rows,
		[]columnAlignment{alignRight},
	))
	b.WriteString("\n")
	if sel.Selected() {
		fmt.Fprintf(&b, "Preference %q matched %q (%s tier, %d candidates)", preference, sel.Track.Language, sel.Tier, sel.Candidates)
	} else {
		fmt.Fprintf(&b, "Preference %q matched no track (%d candidates); modes left unchanged", preference, sel.Candidates)
	}
	return b.String()
}
