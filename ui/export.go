package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/adapters/excel"
	"datalens/internal/analysis"
)

// handleExport streams the current session's column summaries as an xlsx
// workbook. The file is generated per request and never stored.
func (s *Server) handleExport(c *gin.Context) {
	sess := s.sessions.Current()
	if sess == nil || sess.Dataset == nil {
		c.String(http.StatusNotFound, "no dataset loaded")
		return
	}
	ds := sess.Dataset

	summaries := analysis.SummarizeAll(ds, s.cfg.Viz.TopN)
	workbook, err := excel.BuildWorkbook(ds, summaries)
	if err != nil {
		s.log.Error("[handleExport] workbook build failed: %v", err)
		c.String(http.StatusInternalServerError, "failed to build workbook")
		return
	}

	filename := fmt.Sprintf("%s-%s-summary.xlsx", sanitizeFilename(sess.Name), sess.Split)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		s.log.Error("[handleExport] write failed: %v", err)
	}
}

// sanitizeFilename keeps dataset names filesystem-friendly.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
