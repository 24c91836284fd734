package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MenuURI identifies the menu resource.
const MenuURI = "menu://items"

// Agent is the part of compass.Agent exposed as MCP tools.
type Agent interface {
	Handle(ctx context.Context, sessionID, text string) (compass.Reply, error)
	Cart(ctx context.Context, sessionID string) (menu.Summary, error)
	Reset(ctx context.Context, sessionID string) error
	Menu() *menu.Repository
}

var _ Agent = (*compass.Agent)(nil)

// TurnArgs are the arguments of the process_turn tool.
type TurnArgs struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// TurnResult is the structured output of process_turn.
type TurnResult struct {
	SessionID   string                   `json:"session_id" jsonschema_description:"The conversation this turn belongs to"`
	Text        string                   `json:"text" jsonschema_description:"What the agent says back"`
	ResponseKey string                   `json:"response_key" jsonschema_description:"Stable identifier of the reply"`
	State       domain.ConversationState `json:"conversation_state" jsonschema_description:"Conversation state after the turn"`
	TurnCount   int                      `json:"turn_count"`
}

// MenuEntry is one line of the menu resource.
type MenuEntry struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Categories []string          `json:"categories,omitempty"`
	Price      string            `json:"price,omitempty"`
	Sizes      map[string]string `json:"sizes,omitempty"`
	Available  bool              `json:"available"`
}

// Server wraps the Agent and exposes it as an MCP Server.
type Server struct {
	agent     Agent
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(agent Agent, opts ...Option) *Server {
	s := &Server{
		agent:     agent,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("compass-mcp", strings.TrimSpace(compass.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down mcp server")
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
	// TOOL: process_turn
	turnTool := mcp.NewTool("process_turn",
		mcp.WithDescription("Send one customer utterance to the ordering agent and get its reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier, e.g. a call SID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the customer said")),
		mcp.WithOutputSchema[TurnResult](),
	)
	s.mcpServer.AddTool(turnTool, mcp.NewStructuredToolHandler(s.handleProcessTurn))

	// TOOL: show_cart
	cartTool := mcp.NewTool("show_cart",
		mcp.WithDescription("Show the priced cart of a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier")),
		mcp.WithOutputSchema[menu.Summary](),
	)
	s.mcpServer.AddTool(cartTool, mcp.NewStructuredToolHandler(s.handleShowCart))

	// TOOL: reset_session
	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Forget a conversation so the next turn starts fresh."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier")),
	), s.handleResetSession)
}

func (s *Server) handleProcessTurn(ctx context.Context, _ mcp.CallToolRequest, args TurnArgs) (TurnResult, error) {
	reply, err := s.agent.Handle(ctx, args.SessionID, args.Text)
	if err != nil {
		s.logger.Warn("process_turn failed", "session_id", args.SessionID, "err", err)
		return TurnResult{}, err
	}
	return TurnResult{
		SessionID:   reply.SessionID,
		Text:        reply.Text,
		ResponseKey: reply.ResponseKey,
		State:       reply.State,
		TurnCount:   reply.TurnCount,
	}, nil
}

func (s *Server) handleShowCart(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (menu.Summary, error) {
	summary, err := s.agent.Cart(ctx, args.SessionID)
	if err != nil {
		return menu.Summary{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return summary, nil
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.agent.Reset(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText("session " + id + " reset"), nil
}

func (s *Server) registerResources() {
	// EXPOSE: menu://items
	s.mcpServer.AddResource(mcp.NewResource(MenuURI, "Menu Items",
		mcp.WithResourceDescription("Every orderable item with its category and base price"),
		mcp.WithMIMEType("application/json"),
	), s.readMenu)
}

func (s *Server) readMenu(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(menuEntries(s.agent.Menu()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MenuURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func menuEntries(repo *menu.Repository) []MenuEntry {
	items := repo.Store().Items()
	entries := make([]MenuEntry, 0, len(items))
	for _, it := range items {
		e := MenuEntry{
			ID:         it.ItemID,
			Name:       it.Name,
			Categories: it.Categories,
			Available:  it.IsAvailable(),
		}
		if it.Pricing.IsVariant() {
			e.Sizes = make(map[string]string, len(it.Pricing.Variants))
			for _, v := range it.Pricing.Variants {
				e.Sizes[v.Label] = menu.FormatCents(v.PriceCents)
			}
		} else {
			e.Price = menu.FormatCents(it.Pricing.PriceCents)
		}
		entries = append(entries, e)
	}
	return entries
}
