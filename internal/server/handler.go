package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/html"

	"github.com/drew/planview/internal/config"
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/planfile"
	"github.com/drew/planview/internal/report"
	"github.com/drew/planview/internal/view"
)

// Selection kinds recorded by the viewer
const (
	SelectionReveal  = "reveal"
	SelectionHelpful = "helpful"
)

// Selection is one action picked in the page
type Selection struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Handler serves one plan file. The file is re-read on every request so
// edits show up on reload.
type Handler struct {
	planPath string
	cfg      config.Config
	pred     *config.Visibility
	logger   *logging.Logger

	mu         sync.Mutex
	selections []Selection
}

// NewHandler creates a handler for the plan file at planPath
func NewHandler(planPath string, cfg config.Config, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	pred, err := cfg.Predicate()
	if err != nil {
		return nil, err
	}
	return &Handler{
		planPath: planPath,
		cfg:      cfg,
		pred:     pred,
		logger:   logger,
	}, nil
}

// RegisterRoutes registers the viewer routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/plan.svg", h.SVG)
	e.GET("/actions", h.ListSelections)
	e.POST("/actions/reveal", h.Reveal)
	e.POST("/actions/helpful", h.Helpful)
	e.GET("/health", h.Health)
}

// callbacks records selections; when out is non-nil it receives the
// selection made through this set of callbacks
func (h *Handler) callbacks(out *Selection) view.Callbacks {
	keep := func(sel Selection) {
		if out != nil {
			*out = sel
		}
	}
	return view.Callbacks{
		OnRevealAction: func(name string) {
			keep(h.record(SelectionReveal, name))
		},
		OnHelpfulActionSelected: func(name string) {
			keep(h.record(SelectionHelpful, name))
		},
	}
}

func (h *Handler) record(kind, action string) Selection {
	h.mu.Lock()
	defer h.mu.Unlock()
	sel := Selection{
		ID:     "sel_" + uuid.New().String()[:8],
		Kind:   kind,
		Action: action,
		At:     time.Now(),
	}
	h.selections = append(h.selections, sel)
	h.logger.Info("action selected", "id", sel.ID, "kind", kind, "action", action)
	return sel
}

// Selections returns a copy of the selections recorded so far
func (h *Handler) Selections() []Selection {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Selection(nil), h.selections...)
}

func (h *Handler) options() report.Options {
	return report.Options{
		Title:       h.cfg.Output.Title,
		View:        h.cfg.ViewOptions(),
		Predicate:   h.pred,
		Interactive: true,
		Callbacks:   h.callbacks(nil),
		Logger:      h.logger,
	}
}

func (h *Handler) loadPlans(c echo.Context) ([]*model.Plan, error) {
	plans, err := planfile.Load(h.planPath)
	if err != nil {
		h.logger.Error("failed to load plan", "path", h.planPath, "error", err)
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return plans, nil
}

// Page renders every plan in the file as an interactive page.
// GET /
func (h *Handler) Page(c echo.Context) error {
	plans, err := h.loadPlans(c)
	if plans == nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, plans, h.options()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// SVG renders one plan as an image, selected with ?plan=N.
// GET /plan.svg
func (h *Handler) SVG(c echo.Context) error {
	plans, err := h.loadPlans(c)
	if plans == nil {
		return err
	}

	index := 0
	if p := c.QueryParam("plan"); p != "" {
		index, err = strconv.Atoi(p)
		if err != nil || index < 0 || index >= len(plans) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid plan index"})
		}
	}

	var buf bytes.Buffer
	if err := report.WriteSVG(&buf, plans[index], index, h.options()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// Reveal records an action label selection and returns the ids of the
// matching step bars.
// POST /actions/reveal
func (h *Handler) Reveal(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("action"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "action is required"})
	}

	plans, err := h.loadPlans(c)
	if plans == nil {
		return err
	}

	var steps []string
	for i, plan := range plans {
		plan.Capitalize()
		for j, step := range plan.Steps {
			if strings.EqualFold(step.ActionName, name) {
				steps = append(steps, view.StepID(i, j))
			}
		}
	}
	if len(steps) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "action not in plan"})
	}

	var sel Selection
	pv, err := h.planView(&sel)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	pv.RevealAction(name)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"selection": sel.ID,
		"action":    name,
		"steps":     steps,
	})
}

// Helpful records the selection of a suggested next action.
// POST /actions/helpful
func (h *Handler) Helpful(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("action"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "action is required"})
	}

	plans, err := h.loadPlans(c)
	if plans == nil {
		return err
	}

	found := false
	for _, plan := range plans {
		for _, action := range plan.HelpfulActions {
			if strings.EqualFold(action.ActionName, name) {
				found = true
			}
		}
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not a helpful action"})
	}

	var sel Selection
	pv, err := h.planView(&sel)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	pv.SelectHelpfulAction(name)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"selection": sel.ID,
		"action":    name,
	})
}

// ListSelections returns the selections recorded since start.
// GET /actions
func (h *Handler) ListSelections(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"selections": h.Selections(),
	})
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// planView builds a detached view whose callbacks feed the selection log
func (h *Handler) planView(out *Selection) (*view.PlanView, error) {
	host := &html.Node{Type: html.ElementNode, Data: "div"}
	return view.NewPlanView(host, h.cfg.ViewOptions(), h.callbacks(out), h.logger)
}
