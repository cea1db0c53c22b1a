// Package mcp exposes the orchestration operations as MCP tools over SSE
// for agent clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"engmarket/orchestrator/internal/intent"
	"engmarket/orchestrator/internal/orchestrator"
	"engmarket/orchestrator/internal/repository"
	"engmarket/orchestrator/pkg/models"
)

type Server struct {
	mcpServer *server.MCPServer
	orch      *orchestrator.Orchestrator
	store     repository.Store
}

func NewServer(orch *orchestrator.Orchestrator, store repository.Store) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Tool Orchestrator",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		orch:  orch,
		store: store,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"route_intent",
			mcp.WithDescription("Route a natural-language request to the best engineering tool"),
			mcp.WithString("message", mcp.Required(), mcp.Description("The user's request")),
			mcp.WithString("role", mcp.Description("Caller role: client, engineer, enterprise or admin (defaults to client)")),
			mcp.WithString("project_phase", mcp.Description("Current project phase, used both for permissions and scoring")),
		),
		s.handleRouteIntent,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_tools",
			mcp.WithDescription("List the engineering tool catalog"),
		),
		s.handleListTools,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"execute_template",
			mcp.WithDescription("Build a pipeline from a workflow template and execute it"),
			mcp.WithString("template_id", mcp.Required(), mcp.Description("The workflow template id")),
			mcp.WithString("initial_inputs", mcp.Description("JSON object of inputs for the first step")),
			mcp.WithString("session_id", mcp.Description("Session id for telemetry correlation")),
		),
		s.handleExecuteTemplate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"handoff_agent",
			mcp.WithDescription("Transfer carryable context from one tool to another"),
			mcp.WithString("from_tool_id", mcp.Required(), mcp.Description("The source tool id")),
			mcp.WithString("to_tool_id", mcp.Required(), mcp.Description("The destination tool id")),
			mcp.WithString("context", mcp.Description("JSON object of session context to transfer")),
			mcp.WithString("reason", mcp.Description("Why the handoff happens")),
		),
		s.handleHandoffAgent,
	)
}

func (s *Server) handleRouteIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	message, ok := args["message"].(string)
	if !ok || message == "" {
		return mcp.NewToolResultError("Missing required parameter: message"), nil
	}

	role := models.RoleClient
	if raw, ok := args["role"].(string); ok && raw != "" {
		role = models.Role(raw)
		if !role.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown role: %s", raw)), nil
		}
	}

	phase := models.ProjectPhase("")
	var sctx *intent.Context
	if raw, ok := args["project_phase"].(string); ok && raw != "" {
		phase = models.ProjectPhase(raw)
		sctx = &intent.Context{ProjectPhase: phase}
	}

	result := s.orch.RouteIntent(ctx, message, role, nil, phase, sctx)
	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListTools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(s.orch.Registry().List())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleExecuteTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	templateID, ok := args["template_id"].(string)
	if !ok || templateID == "" {
		return mcp.NewToolResultError("Missing required parameter: template_id"), nil
	}

	initialInputs := map[string]interface{}{}
	if raw, ok := args["initial_inputs"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &initialInputs); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("initial_inputs is not a JSON object: %v", err)), nil
		}
	}

	sessionID, _ := args["session_id"].(string)

	pipeline, found := orchestrator.BuildFromTemplate(templateID, initialInputs)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("Template not found: %s", templateID)), nil
	}

	pipeline = s.orch.ExecuteWorkflow(ctx, pipeline, sessionID, nil)
	if err := s.store.SavePipeline(ctx, pipeline); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save pipeline: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(pipeline)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleHandoffAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	fromToolID, ok := args["from_tool_id"].(string)
	if !ok || fromToolID == "" {
		return mcp.NewToolResultError("Missing required parameter: from_tool_id"), nil
	}
	toToolID, ok := args["to_tool_id"].(string)
	if !ok || toToolID == "" {
		return mcp.NewToolResultError("Missing required parameter: to_tool_id"), nil
	}

	handoffContext := map[string]interface{}{}
	if raw, ok := args["context"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &handoffContext); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("context is not a JSON object: %v", err)), nil
		}
	}

	reason, _ := args["reason"].(string)

	result := s.orch.HandoffToAgent(ctx, fromToolID, toToolID, handoffContext, reason, "mcp-client")
	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	// Use SSE server for /mcp/sse and /mcp/message endpoints
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		// Direct POST for tool calls
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// SSE endpoints
	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
