package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/domain/dataset"
	"datalens/internal/analysis"
	"datalens/internal/viz"
)

// sampleSize is how many values the column detail page previews.
const sampleSize = 20

// columnsView is the column analysis page view model.
type columnsView struct {
	HasData bool
	Name    string
	Split   string

	Columns  []string
	Selected string
	TopN     int

	Summary    *analysis.Summary
	ClassLabel string
	Samples    []string

	Histogram *viz.HistogramSpec
	Bar       *viz.BarSpec
	Timeline  *viz.TimelineSpec
}

// handleColumns renders the column analysis page: basic info, class
// statistics, a class-appropriate chart, and a sample of values. Every
// selected column yields either statistics or an explicit notice.
func (s *Server) handleColumns(c *gin.Context) {
	sess := s.sessions.Current()
	if sess == nil || sess.Dataset == nil {
		c.HTML(http.StatusOK, "columns.html", columnsView{})
		return
	}
	ds := sess.Dataset

	view := columnsView{
		HasData: true,
		Name:    sess.Name,
		Split:   sess.Split,
		Columns: ds.ColumnNames(),
		TopN:    analysis.ClampTopN(atoiOrDefault(c.Query("topn"), s.cfg.Viz.TopN)),
	}

	selected := c.Query("column")
	if selected == "" && len(view.Columns) > 0 {
		selected = view.Columns[0]
	}
	col := ds.Column(selected)
	if col == nil {
		s.log.Warn("[handleColumns] unknown column %q", selected)
		c.HTML(http.StatusOK, "columns.html", view)
		return
	}
	view.Selected = selected

	summary := analysis.Summarize(col, view.TopN)
	view.Summary = &summary
	view.ClassLabel = summary.Class.Label()

	switch summary.Class {
	case dataset.ClassNumeric:
		view.Histogram = viz.Histogram(col, s.cfg.Viz.HistogramBins)
	case dataset.ClassTextual:
		view.Bar = viz.RankedBar(col, view.TopN)
	case dataset.ClassTemporal:
		view.Timeline = viz.Timeline(col, nil)
	}

	n := sampleSize
	if n > col.Len() {
		n = col.Len()
	}
	for i := 0; i < n; i++ {
		view.Samples = append(view.Samples, col.DisplayValue(i))
	}

	c.HTML(http.StatusOK, "columns.html", view)
}
