package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// BotURI is the resource holding the dialogue nodes.
const BotURI = "ecoguia://bot"

// Engine defines the interface required by the MCP server to interact with EcoGuía.
type Engine interface {
	StartConversation(ctx context.Context) (domain.NodePayload, error)
	Step(ctx context.Context, nodeID, optionID, userInput string) (domain.NodePayload, error)
	SearchReservations(ctx context.Context, query string) []domain.Record
	Inspect() []domain.Node
}

// StepArgs are the arguments of the step tool.
type StepArgs struct {
	NodeID    string `json:"node_id"`
	OptionID  string `json:"option_id,omitempty"`
	UserInput string `json:"user_input,omitempty"`
}

// SearchArgs are the arguments of the search_reservations tool.
type SearchArgs struct {
	Query string `json:"q"`
}

// SearchResponse wraps the matches so the tool output is an object.
type SearchResponse struct {
	Query   string          `json:"q" jsonschema_description:"The query as received"`
	Results []domain.Record `json:"results" jsonschema_description:"At most five matching reservations"`
}

// Server wraps the EcoGuía Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("ecoguia-mcp", strings.TrimSpace(ecoguia.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mostly for tests and custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_conversation",
		mcp.WithDescription("Return the first node of the EcoGuía dialogue."),
		mcp.WithOutputSchema[domain.NodePayload](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStart))

	stepTool := mcp.NewTool("step",
		mcp.WithDescription("Advance the dialogue. Menu and response nodes need option_id; input nodes take user_input."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Current node ID")),
		mcp.WithString("option_id", mcp.Description("Chosen option ID (menu and response nodes)")),
		mcp.WithString("user_input", mcp.Description("Free text answer (input nodes)")),
		mcp.WithOutputSchema[domain.NodePayload](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStep))

	searchTool := mcp.NewTool("search_reservations",
		mcp.WithDescription("Search natural reserves of the Province of Buenos Aires by name. Returns at most five matches."),
		mcp.WithString("q", mcp.Required(), mcp.Description("Reserve name, accents and case are ignored")),
		mcp.WithOutputSchema[SearchResponse](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearch))
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args struct{}) (domain.NodePayload, error) {
	payload, err := s.engine.StartConversation(ctx)
	if err != nil {
		s.logger.Error("MCP Start failed", "error", err)
		return domain.NodePayload{}, fmt.Errorf("start failed: %w", err)
	}
	return payload, nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args StepArgs) (domain.NodePayload, error) {
	if args.NodeID == "" {
		return domain.NodePayload{}, &domain.InputError{Field: "node_id", Reason: "current node is required"}
	}

	input, discarded := runner.SanitizeQuery(args.UserInput)
	if discarded {
		s.logger.Warn("MCP Step: Input discarded", "size", len(args.UserInput))
	}

	payload, err := s.engine.Step(ctx, args.NodeID, args.OptionID, input)
	if err != nil {
		s.logger.Warn("MCP Step rejected", "node_id", args.NodeID, "error", err)
		return domain.NodePayload{}, err
	}
	return payload, nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest, args SearchArgs) (SearchResponse, error) {
	clean, discarded := runner.SanitizeQuery(args.Query)
	if discarded {
		s.logger.Warn("MCP Search: Query discarded", "size", len(args.Query))
	}
	return SearchResponse{
		Query:   args.Query,
		Results: s.engine.SearchReservations(ctx, clean),
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(BotURI, "EcoGuía dialogue nodes",
		mcp.WithMIMEType("application/json"),
	), s.readBot)
}

func (s *Server) readBot(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.engine.Inspect())
	if err != nil {
		return nil, fmt.Errorf("failed to encode dialogue: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      BotURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
