package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"petfarm_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListTasks returns the social task board with per-user completion state.
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CheckTask completes a task and credits its reward once.
func (h *Handler) CheckTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad task id"})
		return
	}

	reward, newBalance, err := h.Tasks.Check(c.Request.Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, repository.ErrTaskAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "task already completed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "task check failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward, "balance": newBalance})
}
