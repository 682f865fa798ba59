// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the shop's catalog and cart to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/shopservice"
)

// Server wraps the MCP server with shop tools.
type Server struct {
	mcp *server.MCPServer
	svc *shopservice.Service
}

// New creates a new MCP server with all shop tools registered.
func New(svc *shopservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"MiniShop",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_products",
		mcp.WithDescription("Search the product catalog. All arguments are optional; "+
			"omitting them lists the whole catalog."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring match on the product title")),
		mcp.WithString("category", mcp.Description("Exact category name")),
		mcp.WithString("sort", mcp.Description("Price sort order: low-high or high-low")),
	), s.searchProducts)

	s.mcp.AddTool(mcp.NewTool("view_cart",
		mcp.WithDescription("Show the cart lines and derived totals."),
	), s.viewCart)

	s.mcp.AddTool(mcp.NewTool("add_to_cart",
		mcp.WithDescription("Add one unit of a product to the cart. Adding past the "+
			"product's stock is silently ignored."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id from the catalog")),
	), s.addToCart)

	s.mcp.AddTool(mcp.NewTool("set_quantity",
		mcp.WithDescription("Set a cart line's quantity. Values above the product's "+
			"stock are clamped; values below 1 are ignored."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id of the cart line")),
		mcp.WithNumber("quantity", mcp.Required(), mcp.Description("Desired quantity")),
	), s.setQuantity)

	s.mcp.AddTool(mcp.NewTool("remove_from_cart",
		mcp.WithDescription("Remove a line from the cart. Unknown ids are ignored."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id of the cart line")),
	), s.removeFromCart)

	// Resource: the full catalog as JSON.
	s.mcp.AddResource(
		mcp.NewResource("minishop://catalog", "Product Catalog",
			mcp.WithResourceDescription("The fetched product catalog for this session."),
			mcp.WithMIMEType("application/json"),
		),
		s.readCatalogResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchProducts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := models.FilterState{
		Search:   req.GetString("query", ""),
		Category: req.GetString("category", ""),
		Sort:     models.SortOrder(req.GetString("sort", "")),
	}
	products, err := s.svc.Browse(f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(products, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) viewCart(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.CartView(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addToCart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.AddToCart(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("product not found: %d", id)), nil
	}
	return s.viewCart(ctx, req)
}

func (s *Server) setQuantity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	quantity, err := req.RequireInt("quantity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.svc.SetQuantity(ctx, id, quantity)
	return s.viewCart(ctx, req)
}

func (s *Server) removeFromCart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.svc.RemoveFromCart(ctx, id)
	return s.viewCart(ctx, req)
}

func (s *Server) readCatalogResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := s.svc.View(ctx)
	out, err := json.MarshalIndent(view.Products, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "minishop://catalog",
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
