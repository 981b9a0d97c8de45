package api

import (
	"context"

	"RugGuard/internal/domain/models"
	domrepo "RugGuard/internal/domain/repository"
	"RugGuard/internal/usecase"
	"RugGuard/internal/web"
	xhttp "RugGuard/pkg/http"
	xlogger "RugGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the dashboard data and actions as JSON.
type DashboardHandler struct {
	logger    *xlogger.Logger
	board     *usecase.PoolBoard
	queue     *usecase.TxQueue
	analytics *usecase.Analytics
	actions   *usecase.RowActions
	forms     *usecase.Forms
	history   domrepo.History
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	board *usecase.PoolBoard,
	queue *usecase.TxQueue,
	analytics *usecase.Analytics,
	actions *usecase.RowActions,
	forms *usecase.Forms,
	history domrepo.History,
) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		board:     board,
		queue:     queue,
		analytics: analytics,
		actions:   actions,
		forms:     forms,
		history:   history,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/routes", h.Routes)
	g.GET("/pools", h.Pools)
	g.POST("/pools/:id/view", h.poolAction(h.actions.ViewPool))
	g.POST("/pools/:id/manage", h.poolAction(h.actions.ManagePool))
	g.GET("/transactions", h.Transactions)
	g.POST("/transactions/:id/approve", h.poolAction(h.actions.ApproveTx))
	g.POST("/transactions/:id/reject", h.poolAction(h.actions.RejectTx))
	g.GET("/analytics", h.Analytics)
	g.POST("/swap", h.Swap)
	g.POST("/liquidity", h.Liquidity)
	g.POST("/earn", h.Earn)
	g.GET("/diagnostics", h.Diagnostics)
}

// FormResult is returned by the form endpoints.
type FormResult struct {
	Form       interface{}       `json:"form"`
	Diagnostic models.Diagnostic `json:"diagnostic"`
}

// DiagnosticsRequest pages through stored diagnostics.
type DiagnosticsRequest struct {
	Limit int64 `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

func (h *DashboardHandler) Routes(c echo.Context) error {
	nav := web.Navigation()
	return xhttp.ListResponse(c, nav, len(nav))
}

func (h *DashboardHandler) Pools(c echo.Context) error {
	pools, err := h.board.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("pools usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load pools").WithError(err))
	}
	return xhttp.ListResponse(c, pools, len(pools))
}

func (h *DashboardHandler) Transactions(c echo.Context) error {
	txs, err := h.queue.Pending(c.Request().Context())
	if err != nil {
		h.logger.Error("tx queue usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load transactions").WithError(err))
	}
	return xhttp.ListResponse(c, txs, len(txs))
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	snap, err := h.analytics.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("analytics usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load analytics").WithError(err))
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *DashboardHandler) poolAction(fn func(ctx context.Context, id int) models.Diagnostic) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := xhttp.PathInt(c, "id")
		if err != nil {
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.SuccessResponse(c, fn(c.Request().Context(), id))
	}
}

func (h *DashboardHandler) Swap(c echo.Context) error {
	req := models.SwapForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	form, d := h.forms.SubmitSwap(c.Request().Context(), req)
	return xhttp.SuccessResponse(c, FormResult{Form: form, Diagnostic: d})
}

func (h *DashboardHandler) Liquidity(c echo.Context) error {
	req := models.LiquidityForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	form, d := h.forms.SubmitLiquidity(c.Request().Context(), req)
	return xhttp.SuccessResponse(c, FormResult{Form: form, Diagnostic: d})
}

func (h *DashboardHandler) Earn(c echo.Context) error {
	req := models.StakeForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	form, d := h.forms.SubmitStake(c.Request().Context(), req)
	return xhttp.SuccessResponse(c, FormResult{Form: form, Diagnostic: d})
}

// Diagnostics lists recent diagnostics from the first sink that keeps them.
func (h *DashboardHandler) Diagnostics(c echo.Context) error {
	if h.history == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no diagnostic sink with history is configured"))
	}
	req := &DiagnosticsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	items, err := h.history.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("diagnostics history error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to read diagnostics").WithError(err))
	}
	if items == nil {
		items = []models.Diagnostic{}
	}
	return xhttp.ListResponse(c, items, len(items))
}
