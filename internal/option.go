package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	mcp    bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStdioMCP switches the application into MCP stdio mode: the catalog
// is fetched synchronously and shop tools are served on stdin/stdout
// instead of starting the HTTP server.
func WithStdioMCP() Option {
	return func(a *application) {
		a.mcp = true
	}
}
