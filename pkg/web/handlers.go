// Package web provides the HTTP front end of a designer session.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/dukex/hrflow/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	session   *services.Session
	validator *validator.Validate
}

func NewAPIHandlers(session *services.Session, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		session:   session,
		validator: validator,
	}
}

// Register mounts every designer route on router.
func (h *APIHandlers) Register(router fiber.Router) {
	g := router.Group("/graph")
	g.Get("/", h.GetGraph)
	g.Delete("/", h.ClearGraph)
	g.Get("/export", h.ExportGraph)
	g.Post("/import", h.ImportGraph)
	g.Post("/validate", h.ValidateGraph)
	g.Post("/simulate", h.SimulateGraph)

	g.Post("/nodes", h.CreateNode)
	g.Get("/nodes/:id", h.GetNode)
	g.Patch("/nodes/:id", h.UpdateNode)
	g.Put("/nodes/:id/position", h.MoveNode)
	g.Delete("/nodes/:id", h.DeleteNode)

	g.Post("/edges", h.Connect)
	g.Delete("/edges/:id", h.DeleteEdge)

	router.Get("/automations", h.ListAutomations)
	router.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) GetGraph(c fiber.Ctx) error {
	graph, next := h.session.Snapshot(c.Context())

	return c.JSON(GraphResponse{
		Nodes:  graph.Nodes,
		Edges:  graph.Edges,
		NextID: next,
	})
}

func (h *APIHandlers) ClearGraph(c fiber.Ctx) error {
	if err := h.session.Clear(c.Context()); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ExportGraph(c fiber.Ctx) error {
	text, err := h.session.Export(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	return c.SendString(text)
}

func (h *APIHandlers) ImportGraph(c fiber.Ctx) error {
	if err := h.session.Import(c.Context(), string(c.Body())); err != nil {
		return handleServiceError(c, err)
	}

	return h.GetGraph(c)
}

func (h *APIHandlers) ValidateGraph(c fiber.Ctx) error {
	result, err := h.session.Validate(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) SimulateGraph(c fiber.Ctx) error {
	var seed *uint64

	if seedStr := c.Query("seed"); seedStr != "" {
		v, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid seed: "+err.Error())
		}

		seed = &v
	}

	return c.JSON(h.session.Simulate(c.Context(), seed))
}

func (h *APIHandlers) CreateNode(c fiber.Ctx) error {
	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.session.AddNode(c.Context(), req.Kind, req.Position)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) GetNode(c fiber.Ctx) error {
	node, err := h.session.Node(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(node)
}

// UpdateNode applies a partial payload. The body is decoded against the node's own kind,
// so fields of other kinds are rejected.
func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	id := c.Params("id")

	node, err := h.session.Node(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	patch, err := models.DecodePatch(node.Kind, c.Body())
	if err != nil {
		return badRequest(c, "Invalid node data: "+err.Error())
	}

	if err := h.validator.Struct(patch); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.session.UpdateNode(c.Context(), id, patch)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) MoveNode(c fiber.Ctx) error {
	var req MoveNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	moved, err := h.session.MoveNode(c.Context(), c.Params("id"), models.Position{X: *req.X, Y: *req.Y})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(moved)
}

func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	if err := h.session.DeleteNode(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) Connect(c fiber.Ctx) error {
	var req ConnectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	edge, err := h.session.Connect(c.Context(), req.Source, req.Target)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(edge)
}

func (h *APIHandlers) DeleteEdge(c fiber.Ctx) error {
	if err := h.session.DeleteEdge(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ListAutomations(c fiber.Ctx) error {
	actions, err := h.session.Automations(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(actions)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "hrflow designer is healthy"
	httpStatus := http.StatusOK

	if _, err := h.session.Automations(c.Context()); err != nil {
		status = "unhealthy"
		message = "Automation catalog is unavailable: " + err.Error()
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}
