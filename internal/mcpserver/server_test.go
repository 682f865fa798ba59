package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ArpanNarula/Shop-Assesment/internal/cart"
	"github.com/ArpanNarula/Shop-Assesment/internal/catalog"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/shopservice"
	"github.com/ArpanNarula/Shop-Assesment/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	catalogStore := catalog.NewStoreWithProducts(testutil.Products())
	cartStore := cart.NewStore(context.Background(), testutil.NewMemory(), "mcp-test-cart", testutil.DiscardLogger())
	svc := shopservice.NewService(catalogStore, cartStore)
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we test
	// through the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_products":
		result, err = srv.searchProducts(ctx, req)
	case "view_cart":
		result, err = srv.viewCart(ctx, req)
	case "add_to_cart":
		result, err = srv.addToCart(ctx, req)
	case "set_quantity":
		result, err = srv.setQuantity(ctx, req)
	case "remove_from_cart":
		result, err = srv.removeFromCart(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchProducts(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_products", map[string]interface{}{"query": "iphone"})
	var products []models.Product
	if err := json.Unmarshal([]byte(resultText(r)), &products); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(products) != 1 || products[0].ID != 1 {
		t.Errorf("products = %v", products)
	}
}

func TestSearchProductsBadSort(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "search_products", map[string]interface{}{"sort": "alphabetical"})
	if !r.IsError {
		t.Error("expected error for unknown sort order")
	}
}

func TestAddAndViewCart(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "add_to_cart", map[string]interface{}{"id": float64(2)})
	var view shopservice.CartView
	if err := json.Unmarshal([]byte(resultText(r)), &view); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if view.TotalItems != 1 || len(view.Items) != 1 {
		t.Errorf("cart = %+v", view)
	}

	r = callTool(t, srv, "view_cart", map[string]interface{}{})
	if err := json.Unmarshal([]byte(resultText(r)), &view); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if view.Items[0].ID != 2 {
		t.Errorf("cart line = %+v", view.Items[0])
	}
}

func TestAddUnknownProduct(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_to_cart", map[string]interface{}{"id": float64(99)})
	if !r.IsError {
		t.Error("expected error for unknown product")
	}
}

func TestSetQuantityClampsAndRemove(t *testing.T) {
	srv := testServer(t)

	_ = callTool(t, srv, "add_to_cart", map[string]interface{}{"id": float64(1)})
	r := callTool(t, srv, "set_quantity", map[string]interface{}{"id": float64(1), "quantity": float64(10)})

	var view shopservice.CartView
	if err := json.Unmarshal([]byte(resultText(r)), &view); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	// Stock for id 1 is 3.
	if view.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", view.Items[0].Quantity)
	}

	r = callTool(t, srv, "remove_from_cart", map[string]interface{}{"id": float64(1)})
	if err := json.Unmarshal([]byte(resultText(r)), &view); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("items = %v", view.Items)
	}
}

func TestCatalogResource(t *testing.T) {
	srv := testServer(t)

	contents, err := srv.readCatalogResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(text.Text), &products); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(products) != 4 {
		t.Errorf("catalog = %d products", len(products))
	}
}
