package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"engmarket/orchestrator/internal/auth"
	"engmarket/orchestrator/internal/intent"
	"engmarket/orchestrator/internal/logging"
	"engmarket/orchestrator/internal/orchestrator"
	"engmarket/orchestrator/internal/repository"
	"engmarket/orchestrator/pkg/models"
)

// Server holds the dependencies for the API server.
type Server struct {
	Orch   *orchestrator.Orchestrator
	Store  repository.Store
	Logger *logging.Logger
}

// NewServer creates a new Server.
func NewServer(orch *orchestrator.Orchestrator, store repository.Store, logger *logging.Logger) *Server {
	return &Server{Orch: orch, Store: store, Logger: logger}
}

// Register mounts the orchestration routes on the given (authenticated)
// group.
func (s *Server) Register(g *echo.Group) {
	g.GET("/tools", s.ListTools)
	g.GET("/tools/recommended", s.RecommendedTools)
	g.GET("/tools/:id", s.GetTool)
	g.POST("/intent/parse", s.ParseIntent)
	g.POST("/intent/route", s.RouteIntent)
	g.GET("/templates", s.ListTemplates)
	g.POST("/pipelines", s.CreatePipeline)
	g.GET("/pipelines/:id", s.GetPipeline)
	g.POST("/pipelines/:id/execute", s.ExecutePipeline)
	g.POST("/handoffs", s.CreateHandoff)
	g.GET("/sessions/:id/events", s.ListSessionEvents)
}

func principal(c echo.Context) (*auth.Principal, error) {
	p, ok := auth.PrincipalFrom(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated principal")
	}
	return p, nil
}

// sessionContext is the optional routing context callers may attach to
// intent requests.
type sessionContext struct {
	ProjectPhase string `json:"project_phase,omitempty"`
	Category     string `json:"category,omitempty"`
}

func (sc *sessionContext) toIntentContext() *intent.Context {
	if sc == nil {
		return nil
	}
	return &intent.Context{
		ProjectPhase: models.ProjectPhase(sc.ProjectPhase),
		Category:     models.ToolCategory(sc.Category),
	}
}

// ListTools returns the full tool catalog in catalog order.
// (GET /api/v1/tools)
func (s *Server) ListTools(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Orch.Registry().List())
}

// GetTool returns a single tool by id.
// (GET /api/v1/tools/:id)
func (s *Server) GetTool(c echo.Context) error {
	tool, ok := s.Orch.Registry().Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tool not found: "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, tool)
}

// RecommendedTools returns the tools the caller is permitted to use.
// (GET /api/v1/tools/recommended)
func (s *Server) RecommendedTools(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Orch.RecommendedTools(p.Role, p.Disciplines, p.Phase))
}

type intentRequest struct {
	Message string          `json:"message"`
	Context *sessionContext `json:"context,omitempty"`
}

type parseIntentResponse struct {
	Classification *models.IntentClassification `json:"classification"`
}

// ParseIntent classifies a message without routing it. A null classification
// means no tool pattern matched.
// (POST /api/v1/intent/parse)
func (s *Server) ParseIntent(c echo.Context) error {
	var req intentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	classification := s.Orch.ParseIntent(req.Message, req.Context.toIntentContext())
	return c.JSON(http.StatusOK, parseIntentResponse{Classification: classification})
}

// RouteIntent classifies a message, applies the caller's permissions and
// returns the full orchestration result. Routing failures are reported in
// the result body, not as HTTP errors.
// (POST /api/v1/intent/route)
func (s *Server) RouteIntent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req intentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	result := s.Orch.RouteIntent(c.Request().Context(), req.Message,
		p.Role, p.Disciplines, p.Phase, req.Context.toIntentContext())
	return c.JSON(http.StatusOK, result)
}

// ListTemplates returns the built-in workflow templates.
// (GET /api/v1/templates)
func (s *Server) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, orchestrator.Templates())
}

type createPipelineRequest struct {
	TemplateID    string                 `json:"template_id,omitempty"`
	ToolSequence  []string               `json:"tool_sequence,omitempty"`
	Name          string                 `json:"name,omitempty"`
	Description   string                 `json:"description,omitempty"`
	InitialInputs map[string]interface{} `json:"initial_inputs,omitempty"`
}

// CreatePipeline builds a pipeline from a template or an explicit tool
// sequence and persists it without executing any step.
// (POST /api/v1/pipelines)
func (s *Server) CreatePipeline(c echo.Context) error {
	var req createPipelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	var pipeline *models.WorkflowPipeline
	switch {
	case req.TemplateID != "":
		built, ok := orchestrator.BuildFromTemplate(req.TemplateID, req.InitialInputs)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "template not found: "+req.TemplateID)
		}
		pipeline = built
	case len(req.ToolSequence) > 0:
		for _, toolID := range req.ToolSequence {
			if _, ok := s.Orch.Registry().Get(toolID); !ok {
				return echo.NewHTTPError(http.StatusBadRequest, "unknown tool in sequence: "+toolID)
			}
		}
		pipeline = orchestrator.BuildPipeline(req.ToolSequence, req.InitialInputs, req.Name, req.Description)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "template_id or tool_sequence is required")
	}

	if err := s.Store.SavePipeline(c.Request().Context(), pipeline); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save pipeline: "+err.Error())
	}
	return c.JSON(http.StatusCreated, pipeline)
}

// GetPipeline returns a persisted pipeline run.
// (GET /api/v1/pipelines/:id)
func (s *Server) GetPipeline(c echo.Context) error {
	pipeline, err := s.Store.GetPipeline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, pipeline)
}

type executePipelineRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// ExecutePipeline runs a persisted pipeline from its current step. The
// pipeline state, including each step's outputs, is saved after every step
// so an interrupted run can be resumed by calling execute again.
// (POST /api/v1/pipelines/:id/execute)
func (s *Server) ExecutePipeline(c echo.Context) error {
	var req executePipelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	ctx := c.Request().Context()
	pipeline, err := s.Store.GetPipeline(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if pipeline.Status == models.PipelineCompleted {
		return echo.NewHTTPError(http.StatusConflict, "pipeline already completed")
	}

	pipeline = s.Orch.ExecuteWorkflow(ctx, pipeline, req.SessionID, func(_ *models.WorkflowStep) {
		if err := s.Store.SavePipeline(ctx, pipeline); err != nil {
			s.Logger.Error("failed to checkpoint pipeline", "pipeline_id", pipeline.ID, "error", err)
		}
	})

	if err := s.Store.SavePipeline(ctx, pipeline); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save pipeline: "+err.Error())
	}
	return c.JSON(http.StatusOK, pipeline)
}

type handoffRequest struct {
	FromToolID string                 `json:"from_tool_id"`
	ToToolID   string                 `json:"to_tool_id"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
}

// CreateHandoff transfers carryable context from one tool to another.
// (POST /api/v1/handoffs)
func (s *Server) CreateHandoff(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req handoffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.FromToolID == "" || req.ToToolID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from_tool_id and to_tool_id are required")
	}

	result := s.Orch.HandoffToAgent(c.Request().Context(),
		req.FromToolID, req.ToToolID, req.Context, req.Reason, p.Email)
	return c.JSON(http.StatusOK, result)
}

// ListSessionEvents returns the most recent telemetry events for a session,
// newest first.
// (GET /api/v1/sessions/:id/events)
func (s *Server) ListSessionEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := s.Store.ListEvents(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list events: "+err.Error())
	}
	return c.JSON(http.StatusOK, events)
}
