// Package report builds printable sale reports over a date window plus a
// current-inventory snapshot. It only reads ledger and catalog snapshots;
// it never mutates them.
package report

import (
	"strings"
	"time"

	"scalepos/domain"
)

// Row is one filtered sale, already formatted for display.
type Row struct {
	Name  string
	Kg    string
	Unit  string
	Total string
	Date  string
}

// InventoryRow is one catalog entry of the stock snapshot.
type InventoryRow struct {
	Name  string
	Stock string
	Price string
}

// Report is the finished document handed to a Sink.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Rows        []Row
	Inventory   []InventoryRow
	TotalBs     float64
	GrandTotal  string
	Filename    string
}

// Sink consumes a finished report and renders or saves a document.
type Sink interface {
	Write(rep Report) error
}

// Builder aggregates ledger and catalog snapshots into reports.
type Builder struct {
	Currency string           // money prefix, e.g. "Bs. "
	Now      func() time.Time // defaults to time.Now when nil
}

func (b Builder) clock() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Build filters sales to those with from <= date <= to (boundaries
// included), keeping the ledger's newest-first order, and pairs them with
// an inventory snapshot over all products in catalog order. The grand
// total is the sum of TotalBs over the filtered set.
func (b Builder) Build(title string, from, to time.Time, products []domain.Product, sales []domain.Sale) Report {
	now := b.clock()

	var rows []Row
	var totals []float64
	for _, s := range sales {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		rows = append(rows, Row{
			Name:  s.Name,
			Kg:    domain.FormatKg(s.Kg),
			Unit:  domain.FormatMoney(b.Currency, s.UnitBsPerKg),
			Total: domain.FormatMoney(b.Currency, s.TotalBs),
			Date:  s.Date.Local().Format("2006-01-02 15:04:05"),
		})
		totals = append(totals, s.TotalBs)
	}

	inventory := make([]InventoryRow, 0, len(products))
	for _, p := range products {
		inventory = append(inventory, InventoryRow{
			Name:  p.Name,
			Stock: domain.FormatKg(p.StockKg),
			Price: domain.FormatMoney(b.Currency, p.PriceKg),
		})
	}

	total := domain.SumMoney(totals)
	return Report{
		Title:       title,
		GeneratedAt: now,
		Rows:        rows,
		Inventory:   inventory,
		TotalBs:     total,
		GrandTotal:  domain.FormatMoney(b.Currency, total),
		Filename:    Filename(title, now),
	}
}

// Daily builds the canned midnight-to-midnight report for the current day.
func (b Builder) Daily(products []domain.Product, sales []domain.Sale) Report {
	now := b.clock()
	from, to := DailyWindow(now)
	title := "Reporte Diario " + now.Format("2006-01-02")
	return b.Build(title, from, to, products, sales)
}

// Monthly builds the canned report for the current calendar month.
func (b Builder) Monthly(products []domain.Product, sales []domain.Sale) Report {
	now := b.clock()
	from, to := MonthlyWindow(now)
	title := "Reporte Mensual " + now.Format("2006-01")
	return b.Build(title, from, to, products, sales)
}

// DailyWindow spans local midnight through the last instant of now's day.
func DailyWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to
}

// MonthlyWindow spans the first through last instant of now's calendar month.
func MonthlyWindow(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// Filename derives the deterministic document name: the title with
// whitespace collapsed to underscores, suffixed with the current date.
func Filename(title string, now time.Time) string {
	return strings.Join(strings.Fields(title), "_") + "_" + now.Format("2006-01-02")
}
