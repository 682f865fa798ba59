package shopservice

import (
	"context"
	"errors"
	"testing"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
	"github.com/ArpanNarula/Shop-Assesment/internal/cart"
	"github.com/ArpanNarula/Shop-Assesment/internal/catalog"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	catalogStore := catalog.NewStoreWithProducts(testutil.Products())
	cartStore := cart.NewStore(ctx, testutil.NewMemory(), "test-cart", testutil.DiscardLogger())
	return NewService(catalogStore, cartStore)
}

func TestViewAppliesFilters(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.SetFilters(models.FilterState{Category: "smartphones"}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	view := svc.View(ctx)
	if len(view.Products) != 1 || view.Products[0].ID != 1 {
		t.Errorf("filtered view = %v", view.Products)
	}

	svc.ClearFilters()
	view = svc.View(ctx)
	if len(view.Products) != len(testutil.Products()) {
		t.Errorf("cleared view has %d products", len(view.Products))
	}
	if len(view.Categories) != 4 {
		t.Errorf("categories = %v", view.Categories)
	}
}

func TestSetFiltersRejectsUnknownSort(t *testing.T) {
	svc := testService(t)
	if err := svc.SetFilters(models.FilterState{Sort: "cheapest"}); err == nil {
		t.Error("unknown sort order should be rejected")
	}
}

func TestClearFiltersDoesNotTouchCart(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_ = svc.AddToCart(ctx, 2)
	_ = svc.SetFilters(models.FilterState{Search: "mac"})
	svc.ClearFilters()

	if got := svc.CartView(ctx); len(got.Items) != 1 {
		t.Errorf("cart = %v", got.Items)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := testService(t)
	err := svc.AddToCart(context.Background(), 99)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCartViewTotals(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_ = svc.AddToCart(ctx, 1) // 549
	_ = svc.AddToCart(ctx, 1) // 549
	_ = svc.AddToCart(ctx, 2) // 13

	view := svc.CartView(ctx)
	if view.TotalItems != 3 {
		t.Errorf("TotalItems = %d", view.TotalItems)
	}
	if want := 549.0*2 + 13; view.TotalPrice != want {
		t.Errorf("TotalPrice = %v, want %v", view.TotalPrice, want)
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_ = svc.AddToCart(ctx, 1)
	svc.SetQuantity(ctx, 1, 10) // catalog stock for id 1 is 3
	if got := svc.CartView(ctx).Items[0].Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3", got)
	}

	svc.RemoveFromCart(ctx, 1)
	if got := svc.CartView(ctx).Items; len(got) != 0 {
		t.Errorf("items = %v", got)
	}
}
