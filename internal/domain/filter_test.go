package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FilterProducts Tests
// ============================================================================

func TestFilterProducts_PriceRange(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 1000},
		{ID: 2, Name: "B", Price: 5000},
		{ID: 3, Name: "C", Price: 9000},
	}

	out := FilterProducts(products, ProductFilter{PriceMin: 0, PriceMax: 6000, Sort: SortPriceDesc})

	require.Len(t, out, 2)
	assert.Equal(t, int64(5000), out[0].Price)
	assert.Equal(t, int64(1000), out[1].Price)
}

func TestFilterProducts_SearchMatchesBrand(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Premium суха храна за кучета", Brand: "Royal Canin"},
		{ID: 2, Name: "Котешка тоалетна", Brand: "Trixie"},
	}

	out := FilterProducts(products, ProductFilter{Search: "royal"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestFilterProducts_SearchMatchesDescription(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Гранули", Description: "Подходящи за малки породи"},
		{ID: 2, Name: "Консерва", Description: "За котки"},
	}

	out := FilterProducts(products, ProductFilter{Search: "ПОРОДИ"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestFilterProducts_BrandExactMatch(t *testing.T) {
	products := []Product{
		{ID: 1, Brand: "Royal Canin"},
		{ID: 2, Brand: "Trixie"},
	}

	out := FilterProducts(products, ProductFilter{Brand: "Trixie"})

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestFilterProducts_BrandAllMatchesEverything(t *testing.T) {
	products := []Product{
		{ID: 1, Brand: "Royal Canin"},
		{ID: 2, Brand: "Trixie"},
	}

	out := FilterProducts(products, ProductFilter{Brand: "all"})

	assert.Len(t, out, 2)
}

func TestFilterProducts_CategoryGroup(t *testing.T) {
	products := []Product{
		{ID: 1, CategoryID: 1},
		{ID: 2, CategoryID: 2},
		{ID: 3, CategoryID: 3},
	}

	out := FilterProducts(products, ProductFilter{CategoryIDs: []int64{1, 2}})

	assert.Len(t, out, 2)
}

func TestFilterProducts_CombinedCriteria(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Храна за кучета", Brand: "Royal Canin", Price: 8999, CategoryID: 1},
		{ID: 2, Name: "Храна за кучета", Brand: "Royal Canin", Price: 15000, CategoryID: 1},
		{ID: 3, Name: "Храна за котки", Brand: "Royal Canin", Price: 8999, CategoryID: 2},
	}

	out := FilterProducts(products, ProductFilter{
		CategoryIDs: []int64{1},
		Brand:       "Royal Canin",
		PriceMax:    10000,
		Search:      "кучета",
	})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestFilterProducts_DoesNotModifyInput(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Б", Price: 2000},
		{ID: 2, Name: "А", Price: 1000},
	}

	_ = FilterProducts(products, ProductFilter{Sort: SortPriceAsc})

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(2), products[1].ID)
}

// ============================================================================
// Sorting Tests
// ============================================================================

func TestFilterProducts_SortByNameDefault(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Храна"},
		{ID: 2, Name: "Аксесоари"},
		{ID: 3, Name: "Играчки"},
	}

	out := FilterProducts(products, ProductFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, "Аксесоари", out[0].Name)
	assert.Equal(t, "Играчки", out[1].Name)
	assert.Equal(t, "Храна", out[2].Name)
}

func TestFilterProducts_SortPriceAsc(t *testing.T) {
	products := []Product{
		{ID: 1, Price: 3000},
		{ID: 2, Price: 1000},
		{ID: 3, Price: 2000},
	}

	out := FilterProducts(products, ProductFilter{Sort: SortPriceAsc})

	assert.Equal(t, []int64{1000, 2000, 3000}, []int64{out[0].Price, out[1].Price, out[2].Price})
}

func TestFilterProducts_StableSortPreservesInputOrderOnTies(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "X", Price: 1000},
		{ID: 2, Name: "X", Price: 1000},
		{ID: 3, Name: "X", Price: 1000},
	}

	out := FilterProducts(products, ProductFilter{Sort: SortPriceAsc})

	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(2), out[1].ID)
	assert.Equal(t, int64(3), out[2].ID)
}

// ============================================================================
// Brands Tests
// ============================================================================

func TestBrands_DistinctAndSorted(t *testing.T) {
	products := []Product{
		{Brand: "Trixie"},
		{Brand: "Royal Canin"},
		{Brand: "Trixie"},
		{Brand: ""},
	}

	brands := Brands(products)

	assert.Equal(t, []string{"Royal Canin", "Trixie"}, brands)
}
