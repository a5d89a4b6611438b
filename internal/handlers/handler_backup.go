package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/middleware"
)

// backupHandler handles snapshot and restore requests.
type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

// registerBackupRoutes registers routes related to backups.
func registerBackupRoutes(rg *gin.RouterGroup, backupService portssvc.BackupSvcFacade) {
	h := &backupHandler{backupService: backupService}

	backups := rg.Group("/backups")
	{
		backups.POST("", h.snapshot)
		backups.GET("", h.listBackups)
		backups.POST("/restore", h.restore)
	}
}

// snapshot godoc
// @Summary Snapshot the journal
// @Description Serializes the whole journal and stores it under today's date, replacing an earlier same-day snapshot.
// @Tags backups
// @Produce json
// @Success 201 {object} dto.BackupResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /backups [post]
func (h *backupHandler) snapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	backup, err := h.backupService.Snapshot(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to snapshot journal", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create backup"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBackupResponse(backup))
}

// listBackups godoc
// @Summary List backups
// @Description Retrieves snapshot metadata, newest first. Payloads are not included.
// @Tags backups
// @Produce json
// @Success 200 {array} dto.BackupResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /backups [get]
func (h *backupHandler) listBackups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	backups, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list backups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list backups"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBackupResponse(backups))
}

// restore godoc
// @Summary Restore the journal from a backup
// @Description Clears the journal, reloads it from the chosen snapshot in batches, then recomputes every balance. Requires the restore capability.
// @Tags backups
// @Accept json
// @Produce json
// @Param restore body dto.RestoreRequest true "Backup selection"
// @Success 200 {object} dto.RestoreResult
// @Failure 400 {object} ErrorResponse "Corrupt backup payload"
// @Failure 403 {object} ErrorResponse "Missing capability"
// @Failure 404 {object} ErrorResponse "Backup not found"
// @Failure 500 {object} ErrorResponse "Restore stopped part-way; inserted batches kept"
// @Security BearerAuth
// @Router /backups/restore [post]
func (h *backupHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.backupService.Restore(c.Request.Context(), req.BackupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not allowed to restore"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Backup not found"})
		} else if errors.Is(err, apperrors.ErrCorruptBackup) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Restore failed", slog.String("error", err.Error()))
			// Partial progress (if any) is reported alongside the error.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
