// Package testserver runs a fully wired dashboard for tests, reachable
// through an MCP client session and an HTTP test server.
package testserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/reworkdesk/internal/app"
	"github.com/rpggio/reworkdesk/internal/config"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	App     *app.App
	Server  *httptest.Server
	Session *sdkmcp.ClientSession
}

// Option adjusts the configuration before the app is built.
type Option func(*config.Config)

// WithBackend selects the store backend.
func WithBackend(backend string) Option {
	return func(cfg *config.Config) { cfg.Store.Backend = backend }
}

// WithoutSeed starts from an empty store.
func WithoutSeed() Option {
	return func(cfg *config.Config) { cfg.Seed.Enabled = false }
}

func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := app.New(ctx, cfg, nil)
	require.NoError(t, err)

	server := httptest.NewServer(a.Handler())

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := a.MCPServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "reworkdesk-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
		server.Close()
		_ = a.Close()
	})

	return &TestServer{App: a, Server: server, Session: session}
}

// Call invokes a tool and decodes its structured output into out.
// It fails the test when the tool reports an error.
func (ts *TestServer) Call(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	res := ts.CallRaw(t, name, args)
	require.False(t, res.IsError, "tool %s failed: %s", name, ToolText(res))
	if out == nil {
		return
	}
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// CallRaw invokes a tool and returns the raw result.
func (ts *TestServer) CallRaw(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

// ToolText joins the text content blocks of a result.
func ToolText(res *sdkmcp.CallToolResult) string {
	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			text += tc.Text
		}
	}
	return text
}
