package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"datalens/domain/dataset"
	"datalens/internal/config"
	"datalens/internal/errors"
	"datalens/internal/session"
)

// Preview row bounds for the overview table.
const (
	previewDefault = 100
	previewMin     = 5
	previewMax     = 500
)

// flash is a one-shot user message rendered at the top of a page.
type flash struct {
	Kind    string // "success", "info", "error"
	Message string
	Hint    string
}

// columnInfo is one row of the overview column table.
type columnInfo struct {
	Name    string
	Kind    string
	Class   string
	Unique  int
	Nulls   int
	NullPct float64
}

// overviewView is the index page view model.
type overviewView struct {
	Suggested []string
	Splits    []string
	Flash     *flash

	HasData      bool
	Name         string
	Split        string
	LoadedAt     string
	Rows         int
	Cols         int
	SizeMB       float64
	Completeness float64
	Columns      []columnInfo

	PreviewN    int
	PreviewCols []string
	PreviewRows [][]string

	CardHTML template.HTML
}

// handleIndex renders the overview page for the current session
func (s *Server) handleIndex(c *gin.Context) {
	previewN := clampPreview(atoiOrDefault(c.Query("rows"), previewDefault))
	c.HTML(http.StatusOK, "index.html", s.buildOverview(nil, previewN))
}

// handleLoad loads a dataset/split selection and re-renders the overview
func (s *Server) handleLoad(c *gin.Context) {
	name := c.PostForm("dataset")
	if custom := c.PostForm("custom_dataset"); custom != "" {
		name = custom
	}
	split := c.DefaultPostForm("split", "train")

	fl := s.loadDataset(c, name, split)
	c.HTML(http.StatusOK, "index.html", s.buildOverview(fl, previewDefault))
}

// loadDataset runs the cache/loader path and returns the outcome flash.
func (s *Server) loadDataset(c *gin.Context, name, split string) *flash {
	if name == "" {
		return &flash{Kind: "error", Message: "Choose a dataset before loading.",
			Hint: "Pick a suggested dataset or enter a name like user/dataset."}
	}
	if !config.ValidSplit(split) {
		return &flash{Kind: "error",
			Message: fmt.Sprintf("Split %q is not valid.", split),
			Hint:    "Use one of: train, test, validation."}
	}

	ds, cached := s.cache.Get(name, split)
	if cached {
		s.log.Info("[handleLoad] cache hit for %s@%s", name, split)
	} else {
		loaded, err := s.loader.Load(c.Request.Context(), name, split)
		if err != nil {
			s.log.Error("[handleLoad] load failed for %s@%s: %v", name, split, err)
			if errors.HasCode(err, errors.CodeValidationError) {
				return &flash{Kind: "error", Message: err.Error(),
					Hint: "Check the dataset name; browseable datasets are listed on the HuggingFace Hub."}
			}
			return &flash{Kind: "error",
				Message: fmt.Sprintf("Failed to load dataset: %v", err)}
		}
		ds = loaded
		s.cache.Put(name, split, ds)
	}

	sess := session.New(name, split, ds)
	if s.cards != nil {
		if card, err := s.cards.Card(c.Request.Context(), name); err == nil {
			sess.Card = card
		} else {
			s.log.Debug("[handleLoad] no card for %s: %v", name, err)
		}
	}
	s.sessions.Replace(sess)

	return &flash{Kind: "success", Message: fmt.Sprintf(
		"Dataset loaded: %d records, %d columns", ds.Rows, len(ds.Columns))}
}

// buildOverview assembles the index view model from the current session.
func (s *Server) buildOverview(fl *flash, previewN int) overviewView {
	view := overviewView{
		Suggested: s.cfg.Datasets.Suggested,
		Splits:    config.Splits,
		Flash:     fl,
		PreviewN:  previewN,
	}

	sess := s.sessions.Current()
	if sess == nil || sess.Dataset == nil {
		return view
	}
	ds := sess.Dataset

	view.HasData = true
	view.Name = sess.Name
	view.Split = sess.Split
	view.LoadedAt = sess.LoadedAt.Format("2006-01-02 15:04:05")
	view.Rows = ds.Rows
	view.Cols = len(ds.Columns)
	view.SizeMB = float64(ds.ApproxBytes()) / (1 << 20)
	view.Completeness = ds.Completeness()

	for i := range ds.Columns {
		col := &ds.Columns[i]
		view.Columns = append(view.Columns, columnInfo{
			Name:    col.Name,
			Kind:    string(col.Kind),
			Class:   dataset.Classify(col.Kind).Label(),
			Unique:  col.UniqueCount(),
			Nulls:   col.NullCount(),
			NullPct: col.NullPct(),
		})
	}

	if previewN > ds.Rows {
		previewN = ds.Rows
	}
	view.PreviewN = previewN
	view.PreviewCols = ds.ColumnNames()
	for r := 0; r < previewN; r++ {
		row := make([]string, 0, len(ds.Columns))
		for i := range ds.Columns {
			row = append(row, ds.Columns[i].DisplayValue(r))
		}
		view.PreviewRows = append(view.PreviewRows, row)
	}

	if sess.Card != "" {
		rendered := markdown.ToHTML([]byte(sess.Card), nil, nil)
		view.CardHTML = template.HTML(rendered)
	}
	return view
}

func clampPreview(n int) int {
	if n < previewMin {
		return previewMin
	}
	if n > previewMax {
		return previewMax
	}
	return n
}

func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
