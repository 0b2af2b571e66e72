package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
)

// TextSink renders reports as aligned-column text documents under Dir.
type TextSink struct {
	Dir string
}

// compile-time assertion
var _ Sink = (*TextSink)(nil)

// Write renders rep to "<Dir>/<Filename>.txt".
func (s *TextSink) Write(rep Report) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, rep.Title)
	fmt.Fprintf(&buf, "Generado: %s\n\n", rep.GeneratedAt.Local().Format("2006-01-02 15:04:05"))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Producto\tKg\tBs/kg\tTotal (Bs)\tFecha")
	for _, r := range rep.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Kg, r.Unit, r.Total, r.Date)
	}
	w.Flush()

	fmt.Fprintln(&buf, "\nInventario actual (kg):")
	w = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Producto\tStock (kg)\tBs/kg")
	for _, r := range rep.Inventory {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Stock, r.Price)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\nTotal ventas: %s\n", rep.GrandTotal)

	path := filepath.Join(s.Dir, rep.Filename+".txt")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
