package api

import (
	"context"
	"encoding/json"
	"net/http"

	"healthchat/internal/tools"

	"github.com/gin-gonic/gin"
)

// Executor runs one named tool call and returns its result text.
type Executor interface {
	Execute(ctx context.Context, name, arguments string) string
}

// Handler exposes the tool registry over HTTP: enumerate specs and execute a
// named tool. Execution goes through the same dispatcher the chat loop uses;
// this surface adds no logic of its own.
type Handler struct {
	executor Executor
}

func NewHandler(executor Executor) *Handler {
	return &Handler{executor: executor}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")
	apiGroup.GET("/tools", h.listTools)
	apiGroup.POST("/tools/execute", h.executeTool)
}

func (h *Handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tools.SpecList()})
}

func (h *Handler) executeTool(c *gin.Context) {
	var req struct {
		Name      string          `json:"name" binding:"required"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	arguments := string(req.Arguments)
	if arguments == "" {
		arguments = "{}"
	}
	result := h.executor.Execute(c.Request.Context(), req.Name, arguments)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
