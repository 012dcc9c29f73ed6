package repository

import (
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/models"
)

func seedCatalog(t *testing.T, repo *GormProductRepository) []*models.Product {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.Product{
		{Slug: "air-jordan-1", Name: "Air Jordan 1 Retro High", Brand: "Jordan", Category: "Basketball", Price: money("170"), StockQuantity: 25, Featured: true, CreatedAt: base},
		{Slug: "stan-smith", Name: "Adidas Stan Smith", Description: "Minimalist tennis shoe", Brand: "Adidas", Category: "Lifestyle", Price: money("80"), StockQuantity: 40, CreatedAt: base.Add(2 * time.Hour)},
		{Slug: "dunk-low", Name: "Nike Dunk Low", Brand: "Nike", Category: "Lifestyle", Price: money("100"), StockQuantity: 20, CreatedAt: base.Add(time.Hour)},
	}
	out := make([]*models.Product, 0, len(items))
	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
		out = append(out, &items[i])
	}
	return out
}

func TestProductListOrdersFeaturedFirstThenNewest(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	seedCatalog(t, repo)

	rows, total, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	got := []string{rows[0].Slug, rows[1].Slug, rows[2].Slug}
	want := []string{"air-jordan-1", "stan-smith", "dunk-low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: want %v got %v", want, got)
		}
	}
}

func TestProductListSearchAndCategory(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	seedCatalog(t, repo)

	rows, total, err := repo.List(ProductListFilter{Search: "tennis"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "stan-smith" {
		t.Fatalf("search by description should match stan smith, got %+v", rows)
	}

	_, total, err = repo.List(ProductListFilter{Category: "Lifestyle"})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("category total want 2 got %d", total)
	}

	featured := true
	rows, _, err = repo.List(ProductListFilter{Featured: &featured})
	if err != nil || len(rows) != 1 || !rows[0].Featured {
		t.Fatalf("featured filter failed: rows=%+v err=%v", rows, err)
	}

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Basketball" || categories[1] != "Lifestyle" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestProductStoresSizesAndColors(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	p := &models.Product{Slug: "yeezy", Name: "Yeezy Boost 350 V2", Price: money("220"), Sizes: models.StringArray{"8", "9.5"}, Colors: models.StringArray{"Zebra"}}
	if err := repo.Create(p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err := repo.GetByID(p.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Sizes) != 2 || got.Sizes[1] != "9.5" || len(got.Colors) != 1 {
		t.Fatalf("unexpected sizes/colors: %v %v", got.Sizes, got.Colors)
	}
	if !got.Price.Equal(money("220").Decimal) {
		t.Fatalf("price want 220 got %s", got.Price)
	}
}

func TestProductDecrementStockIsConditional(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	products := seedCatalog(t, repo)
	target := products[2] // stock 20

	ok, err := repo.DecrementStock(target.ID, 15)
	if err != nil || !ok {
		t.Fatalf("first decrement should succeed, ok=%v err=%v", ok, err)
	}
	ok, err = repo.DecrementStock(target.ID, 6)
	if err != nil {
		t.Fatalf("second decrement errored: %v", err)
	}
	if ok {
		t.Fatalf("decrement beyond stock must fail")
	}
	if err := repo.IncrementStock(target.ID, 6); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	reloaded, _ := repo.GetByID(target.ID)
	if reloaded.StockQuantity != 11 {
		t.Fatalf("stock want 11 got %d", reloaded.StockQuantity)
	}
	if _, err := repo.DecrementStock(target.ID, 0); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
}

func TestProductDeleteAndSlugExists(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	products := seedCatalog(t, repo)

	exists, err := repo.ExistsBySlug("dunk-low", 0)
	if err != nil || !exists {
		t.Fatalf("slug should exist, exists=%v err=%v", exists, err)
	}
	exists, _ = repo.ExistsBySlug("dunk-low", products[2].ID)
	if exists {
		t.Fatalf("slug should be ignored for its own product")
	}

	deleted, err := repo.Delete(products[2].ID)
	if err != nil || !deleted {
		t.Fatalf("delete failed: deleted=%v err=%v", deleted, err)
	}
	deleted, _ = repo.Delete(products[2].ID)
	if deleted {
		t.Fatalf("second delete should report missing")
	}
	got, _ := repo.GetByID(products[2].ID)
	if got != nil {
		t.Fatalf("deleted product should not be returned")
	}
}
