package backup

import (
	"fmt"
	"net/http"
	"time"

	"skillboard/internal/shared/apperror"
	"skillboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("backup.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("backup request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.service.Export(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("employees-%s.csv", nowStamp())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) Import(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http roster import")

	report, err := h.service.Import(ctx, c.Request.Body)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if report.Imported == 0 {
		status = http.StatusUnprocessableEntity
	}
	response.Success(c, status, report, nil)
}

func nowStamp() string {
	return time.Now().Format("2006-01-02")
}
