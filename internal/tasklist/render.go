package tasklist

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JamesPrial/tasklist/internal/form"
)

// WriteTable writes rows as an aligned text table headed by the page's
// field labels. An empty list prints a single "(no tasks)" line.
func WriteTable(w io.Writer, page form.Page, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no tasks)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\t%s\t%s\n",
		page.Fields.Name1.Label, page.Fields.Name2.Label, page.Fields.Date.Label)
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Index, cell(r.Name1), cell(r.Name2), cell(r.Date))
	}
	return tw.Flush()
}

// cell flattens newlines and tabs so a value can't break the table.
func cell(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
}

// WritePages writes one line per page: slug, title, storage key and the kind
// of each field.
func WritePages(w io.Writer, pages []form.Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tSTORAGE\tFIELDS")
	for _, p := range pages {
		kinds := make([]string, 0, 3)
		for _, f := range p.Fields.All() {
			kinds = append(kinds, fmt.Sprintf("%s:%s", f.ID, f.Kind))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Title, p.StorageKey(), strings.Join(kinds, " "))
	}
	return tw.Flush()
}
