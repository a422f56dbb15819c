package handler

import (
	"log/slog"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"tax-engine/internal/deadlines"
	"tax-engine/internal/engine"
	"tax-engine/internal/metrics"
	"tax-engine/internal/model"
	"tax-engine/internal/reference"
)

type Options struct {
	Engine       *engine.Engine
	Content      *reference.Content
	Tracker      *deadlines.Tracker
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	MaxBodyBytes int
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	engine  atomic.Pointer[engine.Engine]
	content *reference.Content
	tracker *deadlines.Tracker
	metrics *metrics.Metrics
	log     *slog.Logger
	maxBody int
	now     func() time.Time

	serveMetrics fasthttp.RequestHandler
}

func New(opts Options) *Handler {
	h := &Handler{
		content: opts.Content,
		tracker: opts.Tracker,
		metrics: opts.Metrics,
		log:     opts.Logger,
		maxBody: opts.MaxBodyBytes,
		now:     opts.Now,
	}
	h.engine.Store(opts.Engine)
	if h.now == nil {
		h.now = time.Now
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.metrics != nil {
		h.serveMetrics = fasthttpadaptor.NewFastHTTPHandler(h.metrics.Handler())
	}
	return h
}

// SetEngine swaps the engine used by subsequent requests. In-flight
// requests finish on the engine they started with.
func (h *Handler) SetEngine(e *engine.Engine) { h.engine.Store(e) }

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	route := h.route(ctx)

	status := ctx.Response.StatusCode()
	if h.metrics != nil {
		h.metrics.ObserveRequest(route, status)
	}
	h.log.Info("http.request",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())
	switch path {
	case "/calculate":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleCalculate(ctx)
		}
	case "/compare":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleCompare(ctx)
		}
	case "/regime":
		if h.allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, h.engine.Load().Regime())
		}
	case "/reference/deductions":
		if h.allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]any{
				"deductions":          h.content.Deductions,
				"new_regime_benefits": h.content.NewRegimeBenefits,
			})
		}
	case "/reference/filing":
		if h.allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]any{"filing_steps": h.content.FilingSteps})
		}
	case "/reference/gst":
		if h.allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, h.content.GST)
		}
	case "/deadlines":
		if h.allow(ctx, fasthttp.MethodGet) {
			h.handleDeadlines(ctx)
		}
	case "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/metrics":
		if h.serveMetrics == nil {
			writeError(ctx, fasthttp.StatusNotFound, "Metrics are disabled")
			break
		}
		h.serveMetrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return "other"
	}
	return path
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if h.maxBody > 0 && len(body) > h.maxBody {
		writeError(ctx, fasthttp.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	resp := h.engine.Load().Process(&req)
	if h.metrics != nil {
		h.metrics.ObserveCalculation(&req, resp, time.Since(start))
	}
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		h.log.Debug("calculation.rejected",
			"calculation_id", resp.CalculationMetadata.CalculationID,
			"income_type", req.IncomeType,
			"messages", len(resp.Messages),
		)
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if h.maxBody > 0 && len(body) > h.maxBody {
		writeError(ctx, fasthttp.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var req model.ComparisonRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	resp, err := h.engine.Load().Compare(&req)
	if err != nil {
		h.log.Error("compare.failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Comparison failed")
		return
	}
	if h.metrics != nil {
		took := time.Since(start)
		h.metrics.ObserveCalculation(&req.Baseline, resp.Baseline, took)
		h.metrics.ObserveCalculation(&req.Scenario, resp.Scenario, took)
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

type deadlinesResponse struct {
	Audience       deadlines.Audience   `json:"audience"`
	Today          string               `json:"today"`
	Reminders      []deadlines.Reminder `json:"reminders"`
	NextAdvanceTax *deadlines.Reminder  `json:"next_advance_tax,omitempty"`
	Penalties      []string             `json:"penalties"`
}

func (h *Handler) handleDeadlines(ctx *fasthttp.RequestCtx) {
	audience, err := deadlines.ParseAudience(string(ctx.QueryArgs().Peek("audience")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	now := h.now()
	resp := deadlinesResponse{
		Audience:  audience,
		Today:     deadlines.Day(now, h.tracker.Location()).Format("2006-01-02"),
		Reminders: h.tracker.Upcoming(now, audience),
		Penalties: h.content.Penalties[string(audience)],
	}
	if audience == deadlines.Freelancer {
		if next, ok := h.tracker.NextInCategory(now, "advance_tax"); ok {
			resp.NextAdvanceTax = &next
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
