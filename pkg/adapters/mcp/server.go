// Package mcp exposes the pattern registry as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/internal/presentation/graph"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/nfa"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PatternsURI is the resource listing every stored pattern.
const PatternsURI = "regula://patterns"

// marshalJSON encodes pattern listings. Tests replace it to exercise encode failures.
var marshalJSON = json.Marshal

// Registry defines what the MCP server needs from the pattern registry.
type Registry interface {
	Match(ctx context.Context, name, input string) (domain.MatchResult, error)
	MatchExpr(expr, input string) (domain.MatchResult, error)
	MatchAll(ctx context.Context, input string) ([]domain.MatchResult, error)
	Automaton(ctx context.Context, name string) (domain.Pattern, *nfa.Automaton, error)
	List(ctx context.Context) ([]domain.Pattern, error)
}

// MatchAllResult is the structured output of match_all.
type MatchAllResult struct {
	Input   string               `json:"input" jsonschema_description:"The evaluated input"`
	Results []domain.MatchResult `json:"results" jsonschema_description:"One verdict per stored pattern, sorted by name"`
}

// Server wraps the registry and exposes it as an MCP Server.
type Server struct {
	registry  Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		registry:  reg,
		logger:    logger,
		mcpServer: server.NewMCPServer("regula-mcp", strings.TrimSpace(regula.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on addr using SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: match_pattern
	matchPattern := mcp.NewTool("match_pattern",
		mcp.WithDescription("Test whether an input is accepted by an ad-hoc pattern. Syntax: literals, '.', '|', '*', '+', '?', '{m,n}', '(...)', '[a-z]'."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("The pattern expression")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The input to test; may be empty")),
		mcp.WithOutputSchema[domain.MatchResult](),
	)
	s.mcpServer.AddTool(matchPattern, mcp.NewStructuredToolHandler(s.handleMatchPattern))

	// TOOL: match_named
	matchNamed := mcp.NewTool("match_named",
		mcp.WithDescription("Test whether an input is accepted by a stored pattern."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The stored pattern name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The input to test; may be empty")),
		mcp.WithOutputSchema[domain.MatchResult](),
	)
	s.mcpServer.AddTool(matchNamed, mcp.NewStructuredToolHandler(s.handleMatchNamed))

	// TOOL: match_all
	matchAll := mcp.NewTool("match_all",
		mcp.WithDescription("Test an input against every stored pattern."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The input to test; may be empty")),
		mcp.WithOutputSchema[MatchAllResult](),
	)
	s.mcpServer.AddTool(matchAll, mcp.NewStructuredToolHandler(s.handleMatchAll))

	// TOOL: list_patterns
	s.mcpServer.AddTool(mcp.NewTool("list_patterns",
		mcp.WithDescription("List every stored pattern with its expression."),
	), s.handleListPatterns)

	// TOOL: graph_pattern
	s.mcpServer.AddTool(mcp.NewTool("graph_pattern",
		mcp.WithDescription("Render a stored pattern's automaton as a Mermaid flowchart."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The stored pattern name")),
	), s.handleGraphPattern)
}

func (s *Server) handleMatchPattern(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.MatchResult, error) {
	expr, _ := args["pattern"].(string)
	input, _ := args["input"].(string)

	res, err := s.registry.MatchExpr(expr, input)
	if err != nil {
		s.logger.Warn("MCP match_pattern: compile failed", "error", err)
		return domain.MatchResult{}, fmt.Errorf("compile failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleMatchNamed(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.MatchResult, error) {
	name, _ := args["name"].(string)
	input, _ := args["input"].(string)

	res, err := s.registry.Match(ctx, name, input)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("match failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleMatchAll(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MatchAllResult, error) {
	input, _ := args["input"].(string)

	results, err := s.registry.MatchAll(ctx, input)
	if err != nil {
		return MatchAllResult{}, fmt.Errorf("match failed: %w", err)
	}
	return MatchAllResult{Input: input, Results: results}, nil
}

func (s *Server) handleListPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patterns, err := s.registry.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, err := marshalJSON(patterns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraphPattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, a, err := s.registry.Automaton(ctx, name)
	if errors.Is(err, domain.ErrPatternNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("pattern %q not found", name)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(a, nil)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: regula://patterns
	s.mcpServer.AddResource(mcp.NewResource(PatternsURI, "Stored Patterns",
		mcp.WithMIMEType("application/json"),
	), s.readPatterns)
}

func (s *Server) readPatterns(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	patterns, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	jsonBytes, err := marshalJSON(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patterns: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PatternsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
