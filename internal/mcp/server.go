// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/rusq/slack"

	"github.com/rusq/slackinsight/internal/action"
	"github.com/rusq/slackinsight/internal/cache"
	"github.com/rusq/slackinsight/internal/sentiment"
	"github.com/rusq/slackinsight/types"
)

const (
	serverName    = "slackinsight-mcp"
	serverVersion = "1.0.0"
)

//go:generate mockgen -destination=mock_api/mock_api.go . API

// API is the subset of the Slack client that the MCP tools require.
type API interface {
	AuthTest(ctx context.Context) (*slack.AuthTestResponse, error)
	Channels(ctx context.Context) ([]slack.Channel, error)
	History(ctx context.Context, channelID string, limit int, oldest, latest string) ([]types.Message, error)
	Replies(ctx context.Context, channelID, threadTS string) ([]types.Message, error)
	Users(ctx context.Context) (types.Users, error)
	PostMessage(ctx context.Context, channelID, text string) (string, error)
	AddReaction(ctx context.Context, channelID, timestamp, name string) error
}

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Server wraps an MCP server and the Slack API client it operates on.
type Server struct {
	mcp       *mcpsrv.MCPServer
	api       API
	users     *cache.UserCache
	sentiment sentiment.Config
	action    action.Config
	logger    *slog.Logger
}

// Option is a functional option for New.
type Option func(*Server)

// WithLogger sets the logger.  The default is slog.Default.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithUserCache sets the persistent user cache used to resolve user IDs to
// display names without hitting the API on every call.
func WithUserCache(uc *cache.UserCache) Option {
	return func(s *Server) {
		s.users = uc
	}
}

// WithSentimentConfig overrides the default sentiment lexicon.
func WithSentimentConfig(cfg sentiment.Config) Option {
	return func(s *Server) {
		s.sentiment = cfg
	}
}

// WithActionConfig overrides the default action item extraction configuration.
func WithActionConfig(cfg action.Config) Option {
	return func(s *Server) {
		s.action = cfg
	}
}

// New creates a new MCP server backed by the given Slack API client.  The
// server is populated with all available tools but does not start listening
// until one of the Serve* methods is called.
func New(api API, opts ...Option) *Server {
	s := &Server{
		api:       api,
		sentiment: sentiment.DefaultConfig(),
		action:    action.DefaultConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the server's
// capabilities to the connecting agent.
func instructions() string {
	return `You are connected to a Slack Insight MCP server.

The server is connected to a live Slack workspace via the Slack Web API.

Available tools allow you to:
- List channels and users in the workspace
- Read messages from a channel and replies in a thread
- Post messages and add emoji reactions
- Analyse message sentiment (English and Japanese)
- Extract decisions and action items from conversations
- Run a combined analysis of an entire thread

The analysis tools process both English and Japanese text, including messages
that mix the two languages.  Timestamps use Slack's format (Unix epoch as
decimal string, e.g. "1609459200.000001").
`
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as "127.0.0.1:8483".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolListChannels(),
		s.toolListUsers(),
		s.toolGetMessages(),
		s.toolGetThread(),
		s.toolPostMessage(),
		s.toolAddReaction(),
		s.toolAnalyzeSentiment(),
		s.toolExtractDecisions(),
		s.toolExtractActionItems(),
		s.toolAnalyzeThread(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called after
// New but before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// userIndex returns an index of workspace users, preferring the local cache
// and falling back to the API.  A fresh API result is written back to the
// cache.  Failure to load users is not fatal for display purposes, so the
// caller receives an empty index on error.
func (s *Server) userIndex(ctx context.Context) types.UserIndex {
	if s.users != nil {
		if uu, err := s.users.Load(); err == nil {
			return uu.IndexByID()
		}
	}
	uu, err := s.api.Users(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "user lookup failed, IDs will not be resolved", "error", err)
		return types.UserIndex{}
	}
	if s.users != nil {
		if err := s.users.Save(uu); err != nil {
			s.logger.DebugContext(ctx, "failed to save user cache", "error", err)
		}
	}
	return uu.IndexByID()
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// boolArg extracts a named bool argument from a tool call request.
func boolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}
