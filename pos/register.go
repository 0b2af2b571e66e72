// Package pos owns the in-memory catalog and sale ledger and enforces
// their invariants: all writes go through the Register so stock never
// goes negative and every committed sale is backed by a stock debit.
package pos

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"scalepos/domain"
)

// Blob keys (versioned to avoid conflicts with older data layouts)
const (
	productsKey = "scalepos_products_v1"
	salesKey    = "scalepos_sales_v1"
)

// Register holds the authoritative in-memory state: the catalog ordered
// newest-first and the append-only ledger ordered newest-first. Every
// mutation runs under the mutex and is immediately serialized through the
// blob store; a persistence failure is logged as a warning and does not
// roll back the in-memory change, which stays authoritative for the
// lifetime of the process.
type Register struct {
	mu       sync.Mutex
	blobs    domain.BlobStore
	products []domain.Product
	sales    []domain.Sale
	now      func() time.Time
}

// Open loads the catalog and ledger from the blob store. Absent or
// unparseable data falls back to the built-in seed catalog and an empty
// ledger; Open never fails.
func Open(ctx context.Context, blobs domain.BlobStore) *Register {
	r := &Register{
		blobs: blobs,
		now:   time.Now,
	}
	r.products = loadBlob[domain.Product](ctx, blobs, productsKey, seedProducts)
	r.sales = loadBlob[domain.Sale](ctx, blobs, salesKey, func() []domain.Sale { return nil })
	return r
}

func seedProducts() []domain.Product {
	seed := domain.SeedCatalog()
	for i := range seed {
		seed[i].ID = uuid.NewString()
	}
	return seed
}

func loadBlob[T any](ctx context.Context, blobs domain.BlobStore, key string, fallback func() []T) []T {
	b, ok, err := blobs.Get(ctx, key)
	if err != nil {
		slog.Warn("blob read failed, using defaults", "key", key, "error", err)
		return fallback()
	}
	if !ok || len(b) == 0 {
		return fallback()
	}
	var list []T
	if err := json.Unmarshal(b, &list); err != nil {
		slog.Warn("blob unparseable, using defaults", "key", key, "error", err)
		return fallback()
	}
	return list
}

// persist serializes both collections through the blob store. Callers hold
// the mutex. Failures are warnings: in-memory state remains valid for the
// session.
func (r *Register) persist(ctx context.Context) {
	pb, err := json.Marshal(r.products)
	if err == nil {
		err = r.blobs.Set(ctx, productsKey, pb)
	}
	if err != nil {
		slog.Warn("catalog persist failed", "error", err)
	}

	sb, err := json.Marshal(r.sales)
	if err == nil {
		err = r.blobs.Set(ctx, salesKey, sb)
	}
	if err != nil {
		slog.Warn("ledger persist failed", "error", err)
	}
}

// Products returns a copy of the catalog in its current order.
func (r *Register) Products() []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

// Sales returns a copy of the ledger, newest-first.
func (r *Register) Sales() []domain.Sale {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Sale, len(r.sales))
	copy(out, r.sales)
	return out
}

// Product looks up a catalog entry by id.
func (r *Register) Product(id string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewNotFoundError(id)
}

// LedgerTotal returns the sum of TotalBs over the whole ledger.
func (r *Register) LedgerTotal() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make([]float64, len(r.sales))
	for i, s := range r.sales {
		totals[i] = s.TotalBs
	}
	return domain.SumMoney(totals)
}

// AddProduct validates and creates a product, price rounded to 2 decimals
// and stock to 3, inserted at the front of the catalog, and persists.
func (r *Register) AddProduct(ctx context.Context, name string, priceKg, stockKg float64) (domain.Product, error) {
	p := domain.Product{Name: name, PriceKg: priceKg, StockKg: stockKg}
	if err := domain.ValidateProduct(p); err != nil {
		return domain.Product{}, err
	}
	p.ID = uuid.NewString()
	p.PriceKg = domain.Round2(priceKg)
	p.StockKg = domain.Round3(stockKg)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]domain.Product{p}, r.products...)
	r.persist(ctx)
	return p, nil
}

// EditProduct overwrites a product's fields in place. Historical sales are
// unaffected because they carry denormalized snapshots.
func (r *Register) EditProduct(ctx context.Context, id, name string, priceKg, stockKg float64) (domain.Product, error) {
	if err := domain.ValidateProduct(domain.Product{Name: name, PriceKg: priceKg, StockKg: stockKg}); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i].Name = name
			r.products[i].PriceKg = domain.Round2(priceKg)
			r.products[i].StockKg = domain.Round3(stockKg)
			r.persist(ctx)
			return r.products[i], nil
		}
	}
	return domain.Product{}, domain.NewNotFoundError(id)
}

// DeleteProduct removes a product from the catalog. Sales referencing it
// remain valid through their snapshots.
func (r *Register) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return domain.NewNotFoundError(id)
}

// RegisterSale converts a tendered money amount into a weight at the
// product's current price, validates it against stock, and commits the
// stock debit and ledger append as one unit. On any failure the state is
// left untouched.
func (r *Register) RegisterSale(ctx context.Context, productID string, tenderedBs float64) (domain.Sale, error) {
	if productID == "" {
		return domain.Sale{}, domain.NewValidationError("productId", "must be selected", productID)
	}
	if math.IsNaN(tenderedBs) || math.IsInf(tenderedBs, 0) || tenderedBs <= 0 {
		return domain.Sale{}, domain.NewValidationError("amount", "must be a finite value > 0", tenderedBs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.products {
		if r.products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Sale{}, domain.NewNotFoundError(productID)
	}
	p := &r.products[idx]

	// The single rounding point of the money-to-weight conversion.
	kg := domain.Round3(tenderedBs / p.PriceKg)
	if kg <= 0 {
		return domain.Sale{}, domain.NewInvalidAmountError(tenderedBs, p.PriceKg)
	}
	if p.StockKg+domain.Epsilon < kg {
		return domain.Sale{}, domain.NewInsufficientStockError(p.ID, kg, p.StockKg)
	}

	// Stock debit and ledger append commit together under the lock.
	p.StockKg = domain.Round3(p.StockKg - kg)
	sale := domain.Sale{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		Name:        p.Name,
		Kg:          kg,
		UnitBsPerKg: p.PriceKg,
		TotalBs:     domain.Round2(tenderedBs),
		Date:        r.now(),
	}
	r.sales = append([]domain.Sale{sale}, r.sales...)
	r.persist(ctx)
	return sale, nil
}

// Reset clears the catalog and ledger and persists the empty state.
func (r *Register) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.sales = nil
	r.persist(ctx)
}
