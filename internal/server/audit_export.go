package server

import (
	"net/http"
	"time"

	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ExportAuditLog(c *gin.Context) {
	var query struct {
		Start    string   `form:"start"`
		End      string   `form:"end"`
		Format   string   `form:"format"`
		Compress bool     `form:"compress"`
		Actions  []string `form:"action"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	start, err := time.Parse(time.RFC3339, query.Start)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	end, err := time.Parse(time.RFC3339, query.End)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	format := auditdomain.ExportFormat(query.Format)
	if format == "" {
		format = auditdomain.ExportFormatJSON
	}

	result, err := s.auditSvc.Export(c.Request.Context(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Actions:   query.Actions,
		Format:    format,
		Compress:  query.Compress,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.FileName)
	c.Header("X-Checksum-SHA256", result.Checksum)
	c.Data(http.StatusOK, "application/octet-stream", result.Data)
}
