package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"teamboard/internal/domain"
	"teamboard/internal/http/dto"
	"teamboard/internal/http/middleware"
	"teamboard/internal/http/resp"
	"teamboard/internal/model"
)

func (h *Handler) UpsertReport(c *gin.Context) {
	var req dto.UpsertReportRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := h.journal.UpsertReport(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("date"), req.Reflection, req.WakeUpTime)
	if err != nil {
		resp.Error(c, "failed to save report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.journal.ListReports(c.Request.Context(), middleware.CurrentIdentity(c).UserID)
	if err != nil {
		resp.Error(c, "failed to list reports", err)
		return
	}
	if reports == nil {
		reports = []model.DailyReport{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var req dto.CreateTodoRequest
	if !h.bind(c, &req) {
		return
	}
	todo, err := h.journal.CreateTodo(c.Request.Context(), middleware.CurrentIdentity(c), req.Title, req.TargetDate)
	if err != nil {
		resp.Error(c, "failed to create todo", err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.journal.ListTodos(c.Request.Context(), middleware.CurrentIdentity(c).UserID, c.Query("date"))
	if err != nil {
		resp.Error(c, "failed to list todos", err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	var req dto.UpdateTodoRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Title == nil && req.IsCompleted == nil {
		resp.Error(c, "invalid request", domain.Validationf("title or is_completed is required"))
		return
	}

	ctx := c.Request.Context()
	userID := middleware.CurrentIdentity(c).UserID
	id := c.Param("id")
	var (
		todo model.Todo
		err  error
	)
	if req.Title != nil {
		if todo, err = h.journal.RenameTodo(ctx, userID, id, *req.Title); err != nil {
			resp.Error(c, "failed to update todo", err)
			return
		}
	}
	if req.IsCompleted != nil {
		if todo, err = h.journal.SetTodoCompleted(ctx, userID, id, *req.IsCompleted); err != nil {
			resp.Error(c, "failed to update todo", err)
			return
		}
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.journal.DeleteTodo(c.Request.Context(), middleware.CurrentIdentity(c).UserID, c.Param("id")); err != nil {
		resp.Error(c, "failed to delete todo", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "deleted"})
}

func (h *Handler) CompleteAllTodos(c *gin.Context) {
	var req dto.CompleteAllRequest
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}
	updated, err := h.journal.CompleteAll(c.Request.Context(), middleware.CurrentIdentity(c).UserID, req.TargetDate)
	if err != nil {
		resp.Error(c, "failed to complete todos", err)
		return
	}
	c.JSON(http.StatusOK, dto.CompleteAllResponse{Updated: updated})
}
