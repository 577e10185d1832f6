package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/domain/dataset"
	"datalens/internal/analysis"
	"datalens/internal/viz"
)

// vizView is the visualizations page view model. One chart spec is set per
// render, matching the selected chart type.
type vizView struct {
	HasData bool
	Name    string
	Split   string

	ChartType    string
	NumericCols  []string
	TextualCols  []string
	TemporalCols []string

	Column   string
	XColumn  string
	YColumn  string
	DateCol  string
	ValueCol string
	GroupCol string
	Mode     string
	Bins     int
	TopN     int

	Notice string

	Histogram *viz.HistogramSpec
	Bar       *viz.BarSpec
	Timeline  *viz.TimelineSpec
	BoxPlot   *viz.BoxPlotSpec
	Heatmap   *viz.HeatmapSpec
	Scatter   *viz.ScatterSpec
}

// handleViz renders the visualization builder: chart type plus column and
// parameter selectors, then the chart implied by the selection.
func (s *Server) handleViz(c *gin.Context) {
	sess := s.sessions.Current()
	if sess == nil || sess.Dataset == nil {
		c.HTML(http.StatusOK, "viz.html", vizView{})
		return
	}
	ds := sess.Dataset

	view := vizView{
		HasData:      true,
		Name:         sess.Name,
		Split:        sess.Split,
		ChartType:    c.DefaultQuery("type", "histogram"),
		NumericCols:  ds.ColumnsOfClass(dataset.ClassNumeric),
		TextualCols:  ds.ColumnsOfClass(dataset.ClassTextual),
		TemporalCols: ds.ColumnsOfClass(dataset.ClassTemporal),
		Bins:         viz.ClampBins(atoiOrDefault(c.Query("bins"), s.cfg.Viz.HistogramBins)),
		TopN:         analysis.ClampTopN(atoiOrDefault(c.Query("topn"), s.cfg.Viz.TopN)),
		Mode:         c.DefaultQuery("mode", "count"),
	}

	switch view.ChartType {
	case "histogram":
		view.Column = pickColumn(c.Query("column"), view.NumericCols)
		if view.Column == "" {
			view.Notice = "No numeric columns available."
			break
		}
		view.Histogram = viz.Histogram(ds.Column(view.Column), view.Bins)
		if view.Histogram == nil {
			view.Notice = "All values are null."
		}

	case "bar":
		view.Column = pickColumn(c.Query("column"), view.TextualCols)
		if view.Column == "" {
			view.Notice = "No text columns available."
			break
		}
		view.Bar = viz.RankedBar(ds.Column(view.Column), view.TopN)
		if view.Bar == nil {
			view.Notice = "All values are null."
		}

	case "timeline":
		view.DateCol = pickColumn(c.Query("date"), view.TemporalCols)
		if view.DateCol == "" {
			view.Notice = "No date/time columns available."
			break
		}
		var valueCol *dataset.Column
		if view.Mode == "sum" {
			view.ValueCol = pickColumn(c.Query("value"), view.NumericCols)
			valueCol = ds.Column(view.ValueCol)
		}
		view.Timeline = viz.Timeline(ds.Column(view.DateCol), valueCol)
		if view.Timeline == nil {
			view.Notice = "No values left after removing nulls."
		}

	case "boxplot":
		view.Column = pickColumn(c.Query("column"), view.NumericCols)
		if view.Column == "" {
			view.Notice = "No numeric columns available."
			break
		}
		var groupCol *dataset.Column
		if g := c.Query("group"); g != "" && g != "none" {
			// The query string is untrusted; only textual columns group.
			view.GroupCol = pickColumn(g, view.TextualCols)
			groupCol = ds.Column(view.GroupCol)
		}
		view.BoxPlot = viz.BoxPlot(ds.Column(view.Column), groupCol)
		if view.BoxPlot == nil {
			view.Notice = "No values left after removing nulls."
		}

	case "heatmap":
		view.Heatmap = viz.CorrelationHeatmap(ds)
		if view.Heatmap == nil {
			view.Notice = "A correlation heatmap needs at least 2 numeric columns."
		}

	case "scatter":
		view.XColumn = pickColumn(c.Query("x"), view.NumericCols)
		view.YColumn = pickColumn(c.Query("y"), exclude(view.NumericCols, view.XColumn))
		if view.XColumn == "" || view.YColumn == "" {
			view.Notice = "A scatter plot needs at least 2 numeric columns."
			break
		}
		view.Scatter = viz.Scatter(ds.Column(view.XColumn), ds.Column(view.YColumn))
		if view.Scatter == nil {
			view.Notice = "No row has both values present."
		}

	default:
		view.Notice = "Unknown chart type."
	}

	c.HTML(http.StatusOK, "viz.html", view)
}

// pickColumn returns want if it is in options, otherwise the first option.
func pickColumn(want string, options []string) string {
	for _, o := range options {
		if o == want {
			return want
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func exclude(options []string, skip string) []string {
	var out []string
	for _, o := range options {
		if o != skip {
			out = append(out, o)
		}
	}
	return out
}
