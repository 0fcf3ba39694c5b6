// Package api exposes the duel simulator over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"duelsim/internal/combat"
	"duelsim/internal/config"
)

const DefaultMaxTrials = 1_000_000

// DefaultMaxTrackedSamples bounds trials x tick ceiling for requests that
// track health. Every tracked tick keeps one sample per side.
const DefaultMaxTrackedSamples = 10_000_000

// Handler handles HTTP requests.
type Handler struct {
	sim        *combat.Simulator
	catalog    *config.Catalog
	log        *zap.Logger
	trials     int
	maxTrials  int
	maxSamples int
}

// NewHandler creates a new handler. defaultTrials is used when a request
// leaves trials unset.
func NewHandler(sim *combat.Simulator, catalog *config.Catalog, log *zap.Logger, defaultTrials int) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if catalog == nil {
		catalog, _ = config.NewCatalog(nil)
	}
	return &Handler{
		sim:        sim,
		catalog:    catalog,
		log:        log,
		trials:     defaultTrials,
		maxTrials:  DefaultMaxTrials,
		maxSamples: DefaultMaxTrackedSamples,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/simulate", h.Simulate)
	e.GET("/v1/archetypes", h.ListArchetypes)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

type archetypeView struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Note string `json:"note,omitempty"`
	config.ArchetypeParams
}

// ListArchetypes lists the loaded catalog.
// GET /v1/archetypes
func (h *Handler) ListArchetypes(c echo.Context) error {
	ids := h.catalog.IDs()
	out := make([]archetypeView, 0, len(ids))
	for _, id := range ids {
		d, _ := h.catalog.Def(id)
		out = append(out, archetypeView{ID: d.ID, Name: d.Name, Note: d.Note, ArchetypeParams: d.ArchetypeParams})
	}
	return c.JSON(http.StatusOK, map[string]any{"archetypes": out})
}

// SimulateRequest names each side either by catalog id or by explicit
// parameters; explicit parameters win.
type SimulateRequest struct {
	ArchetypeA  string                  `json:"archetype_a,omitempty"`
	ArchetypeB  string                  `json:"archetype_b,omitempty"`
	A           *config.ArchetypeParams `json:"a,omitempty"`
	B           *config.ArchetypeParams `json:"b,omitempty"`
	Trials      int                     `json:"trials"`
	TrackHealth bool                    `json:"track_health"`
	IncludeRaw  bool                    `json:"include_raw_history"`
	Seed        int64                   `json:"seed"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Simulate runs one matchup.
// POST /v1/simulate
func (h *Handler) Simulate(c echo.Context) error {
	var req SimulateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	a, labelA, err := h.resolve("a", req.A, req.ArchetypeA)
	if err != nil {
		return h.fail(c, err)
	}
	b, labelB, err := h.resolve("b", req.B, req.ArchetypeB)
	if err != nil {
		return h.fail(c, err)
	}

	trials := req.Trials
	if trials == 0 {
		trials = h.trials
	}
	if trials > h.maxTrials {
		return h.fail(c, &config.ValidationError{Field: "trials", Value: trials, Constraint: "<= max trials per request"})
	}
	if req.TrackHealth && int64(trials)*int64(h.sim.MaxTicks()) > int64(h.maxSamples) {
		return h.fail(c, &config.ValidationError{
			Field:      "trials",
			Value:      trials,
			Constraint: fmt.Sprintf("<= %d when tracking health with a %d tick ceiling", h.maxSamples/h.sim.MaxTicks(), h.sim.MaxTicks()),
		})
	}
	seed := req.Seed
	if seed == 0 {
		seed = newSeed()
	}

	res, err := h.sim.Run(c.Request().Context(), combat.Request{
		A: a, B: b, Trials: trials, TrackHealth: req.TrackHealth, Seed: seed,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, combat.NewReport(labelA, labelB, res, req.IncludeRaw))
}

func (h *Handler) resolve(side string, params *config.ArchetypeParams, id string) (config.ArchetypeParams, string, error) {
	if params != nil {
		label := id
		if label == "" {
			label = side
		}
		return *params, label, nil
	}
	if id == "" {
		return config.ArchetypeParams{}, "", &config.ValidationError{Field: side, Value: "none", Constraint: "archetype id or parameters required"}
	}
	p, err := h.catalog.Get(id)
	if err != nil {
		return config.ArchetypeParams{}, "", err
	}
	return p, id, nil
}

func (h *Handler) fail(c echo.Context, err error) error {
	var ve *config.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: ve.Field})
	case errors.Is(err, config.ErrUnknownArchetype):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.log.Error("simulation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "simulation failed"})
	}
}
