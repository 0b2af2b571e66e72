package report

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"scalepos/domain"
)

var testNow = time.Date(2026, time.September, 1, 14, 30, 0, 0, time.Local)

func testBuilder() Builder {
	return Builder{
		Currency: "Bs. ",
		Now:      func() time.Time { return testNow },
	}
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Carne Molida", PriceKg: 25.00, StockKg: 36.000},
		{ID: "p2", Name: "Bife", PriceKg: 60.00, StockKg: 20.000},
	}
}

// ledger newest-first, like the register keeps it
func testLedger() []domain.Sale {
	return []domain.Sale{
		{ID: "s3", ProductID: "p2", Name: "Bife", Kg: 0.500, UnitBsPerKg: 60.00, TotalBs: 30.00,
			Date: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)},
		{ID: "s2", ProductID: "p1", Name: "Carne Molida", Kg: 4.000, UnitBsPerKg: 25.00, TotalBs: 100.00,
			Date: time.Date(2026, time.September, 1, 9, 15, 0, 0, time.Local)},
		{ID: "s1", ProductID: "p1", Name: "Carne Molida", Kg: 2.000, UnitBsPerKg: 25.00, TotalBs: 50.00,
			Date: time.Date(2026, time.August, 31, 18, 45, 0, 0, time.Local)},
	}
}

func TestBuild(t *testing.T) {
	b := testBuilder()
	from, to := DailyWindow(testNow)

	rep := b.Build("Reporte Diario 2026-09-01", from, to, testCatalog(), testLedger())

	t.Run("filters to the window", func(t *testing.T) {
		if len(rep.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rep.Rows))
		}
	})

	t.Run("keeps newest-first order", func(t *testing.T) {
		if rep.Rows[0].Name != "Bife" || rep.Rows[1].Name != "Carne Molida" {
			t.Errorf("row order wrong: %+v", rep.Rows)
		}
	})

	t.Run("rows carry formatted display strings", func(t *testing.T) {
		r := rep.Rows[1]
		if r.Kg != "4.000 kg" {
			t.Errorf("kg = %q", r.Kg)
		}
		if r.Unit != "Bs. 25.00" {
			t.Errorf("unit = %q", r.Unit)
		}
		if r.Total != "Bs. 100.00" {
			t.Errorf("total = %q", r.Total)
		}
		if !strings.HasPrefix(r.Date, "2026-09-01") {
			t.Errorf("date = %q", r.Date)
		}
	})

	t.Run("grand total covers only filtered sales", func(t *testing.T) {
		if rep.TotalBs != 130.00 {
			t.Errorf("TotalBs = %v, want 130.00", rep.TotalBs)
		}
		if rep.GrandTotal != "Bs. 130.00" {
			t.Errorf("GrandTotal = %q", rep.GrandTotal)
		}
	})

	t.Run("inventory snapshot ignores the window", func(t *testing.T) {
		if len(rep.Inventory) != 2 {
			t.Fatalf("expected 2 inventory rows, got %d", len(rep.Inventory))
		}
		if rep.Inventory[0].Name != "Carne Molida" || rep.Inventory[0].Stock != "36.000 kg" || rep.Inventory[0].Price != "Bs. 25.00" {
			t.Errorf("inventory row wrong: %+v", rep.Inventory[0])
		}
	})

	t.Run("deterministic filename", func(t *testing.T) {
		if rep.Filename != "Reporte_Diario_2026-09-01_2026-09-01" {
			t.Errorf("filename = %q", rep.Filename)
		}
	})
}

func TestBuildBoundariesInclusive(t *testing.T) {
	b := testBuilder()
	from := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local)
	to := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

	sales := []domain.Sale{
		{ID: "after", Name: "X", TotalBs: 1, Date: to.Add(time.Nanosecond)},
		{ID: "at-to", Name: "X", TotalBs: 2, Date: to},
		{ID: "inside", Name: "X", TotalBs: 4, Date: from.Add(time.Hour)},
		{ID: "at-from", Name: "X", TotalBs: 8, Date: from},
		{ID: "before", Name: "X", TotalBs: 16, Date: from.Add(-time.Nanosecond)},
	}

	rep := b.Build("t", from, to, nil, sales)
	if len(rep.Rows) != 3 {
		t.Fatalf("expected 3 rows (boundaries inclusive), got %d", len(rep.Rows))
	}
	if rep.TotalBs != 14 {
		t.Fatalf("TotalBs = %v, want 14 (at-to + inside + at-from)", rep.TotalBs)
	}
}

func TestBuildIdempotent(t *testing.T) {
	b := testBuilder()
	from, to := MonthlyWindow(testNow)
	products, sales := testCatalog(), testLedger()

	first := b.Build("t", from, to, products, sales)
	second := b.Build("t", from, to, products, sales)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different reports")
	}
}

func TestBuildEmptyWindow(t *testing.T) {
	b := testBuilder()
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)

	rep := b.Build("t", from, to, testCatalog(), testLedger())
	if len(rep.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rep.Rows))
	}
	if rep.TotalBs != 0 || rep.GrandTotal != "Bs. 0.00" {
		t.Errorf("empty window total: %v / %q", rep.TotalBs, rep.GrandTotal)
	}
	if len(rep.Inventory) != 2 {
		t.Errorf("inventory snapshot should not depend on the window")
	}
}

func TestDailyWindow(t *testing.T) {
	from, to := DailyWindow(testNow)

	if from != time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local) {
		t.Errorf("from = %v", from)
	}
	if !to.After(testNow) {
		t.Errorf("to %v should cover the current instant", to)
	}
	if !to.Before(time.Date(2026, time.September, 2, 0, 0, 0, 0, time.Local)) {
		t.Errorf("to %v leaks into the next day", to)
	}
}

func TestMonthlyWindow(t *testing.T) {
	from, to := MonthlyWindow(testNow)

	if from != time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local) {
		t.Errorf("from = %v", from)
	}
	if !to.After(time.Date(2026, time.September, 30, 23, 59, 59, 0, time.Local)) {
		t.Errorf("to %v misses the end of the month", to)
	}
	if !to.Before(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("to %v leaks into the next month", to)
	}

	t.Run("december rolls into the next year", func(t *testing.T) {
		dec := time.Date(2026, time.December, 15, 12, 0, 0, 0, time.Local)
		from, to := MonthlyWindow(dec)
		if from.Month() != time.December {
			t.Errorf("from = %v", from)
		}
		if !to.Before(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)) {
			t.Errorf("to %v leaks into January", to)
		}
	})
}

func TestCannedReports(t *testing.T) {
	b := testBuilder()

	t.Run("daily", func(t *testing.T) {
		rep := b.Daily(testCatalog(), testLedger())
		if rep.Title != "Reporte Diario 2026-09-01" {
			t.Errorf("title = %q", rep.Title)
		}
		if len(rep.Rows) != 2 {
			t.Errorf("expected 2 rows for today, got %d", len(rep.Rows))
		}
	})

	t.Run("monthly", func(t *testing.T) {
		rep := b.Monthly(testCatalog(), testLedger())
		if rep.Title != "Reporte Mensual 2026-09" {
			t.Errorf("title = %q", rep.Title)
		}
		if len(rep.Rows) != 2 {
			t.Errorf("expected 2 rows for September, got %d", len(rep.Rows))
		}
	})
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"spaces become underscores", "Reporte Diario 2026-09-01", "Reporte_Diario_2026-09-01_2026-09-01"},
		{"runs of whitespace collapse", "Reporte   Mensual\t2026-09", "Reporte_Mensual_2026-09_2026-09-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.title, testNow); got != tt.want {
				t.Fatalf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTextSink(t *testing.T) {
	dir := t.TempDir()
	sink := &TextSink{Dir: filepath.Join(dir, "reports")}

	b := testBuilder()
	rep := b.Daily(testCatalog(), testLedger())
	if err := sink.Write(rep); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "reports", rep.Filename+".txt"))
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	doc := string(raw)

	for _, want := range []string{
		rep.Title,
		"Carne Molida",
		"4.000 kg",
		"Bs. 100.00",
		"Inventario actual (kg):",
		"36.000 kg",
		"Total ventas: Bs. 130.00",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
