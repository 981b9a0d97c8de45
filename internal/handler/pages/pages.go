package pages

import (
	"net/http"

	"RugGuard/internal/domain/models"
	drepo "RugGuard/internal/domain/repository"
	"RugGuard/internal/usecase"
	"RugGuard/internal/web"
	xhttp "RugGuard/pkg/http"
	xlogger "RugGuard/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/labstack/echo/v4"
)

// Handler serves the server-rendered dashboard pages. Each request builds its
// own view state; nothing is kept between requests.
type Handler struct {
	logger    *xlogger.Logger
	board     *usecase.PoolBoard
	queue     *usecase.TxQueue
	analytics *usecase.Analytics
	actions   *usecase.RowActions
	forms     *usecase.Forms
	metrics   drepo.Metrics
}

func NewHandler(
	logger *xlogger.Logger,
	board *usecase.PoolBoard,
	queue *usecase.TxQueue,
	analytics *usecase.Analytics,
	actions *usecase.RowActions,
	forms *usecase.Forms,
	metrics drepo.Metrics,
) *Handler {
	return &Handler{
		logger:    logger,
		board:     board,
		queue:     queue,
		analytics: analytics,
		actions:   actions,
		forms:     forms,
		metrics:   metrics,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Pools)
	e.POST("/pools/:id/view", h.ViewPool)
	e.POST("/pools/:id/manage", h.ManagePool)

	e.GET("/pool-tx-queue", h.TxQueue)
	e.POST("/pool-tx-queue/:id/approve", h.ApproveTx)
	e.POST("/pool-tx-queue/:id/reject", h.RejectTx)

	e.GET("/analytics", h.Analytics)

	e.GET("/swap", h.Swap)
	e.POST("/swap", h.SubmitSwap)
	e.GET("/liquidity", h.Liquidity)
	e.POST("/liquidity", h.SubmitLiquidity)
	e.GET("/earn", h.Earn)
	e.POST("/earn", h.SubmitStake)

	e.GET("/about", h.About)
}

func (h *Handler) Pools(c echo.Context) error {
	pools, err := h.board.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("pool overview error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load pools").WithError(err))
	}
	return h.render(c, http.StatusOK, web.PagePools, web.Page{Title: "Pools", Path: "/", Data: pools})
}

func (h *Handler) ViewPool(c echo.Context) error {
	id, err := xhttp.PathInt(c, "id")
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	h.actions.ViewPool(c.Request().Context(), id)
	return h.Pools(c)
}

func (h *Handler) ManagePool(c echo.Context) error {
	id, err := xhttp.PathInt(c, "id")
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	h.actions.ManagePool(c.Request().Context(), id)
	return h.Pools(c)
}

func (h *Handler) TxQueue(c echo.Context) error {
	txs, err := h.queue.Pending(c.Request().Context())
	if err != nil {
		h.logger.Error("tx queue error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load transactions").WithError(err))
	}
	return h.render(c, http.StatusOK, web.PageTxQueue, web.Page{Title: "Pool TX Queue", Path: "/pool-tx-queue", Data: txs})
}

func (h *Handler) ApproveTx(c echo.Context) error {
	id, err := xhttp.PathInt(c, "id")
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	h.actions.ApproveTx(c.Request().Context(), id)
	return h.TxQueue(c)
}

func (h *Handler) RejectTx(c echo.Context) error {
	id, err := xhttp.PathInt(c, "id")
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	h.actions.RejectTx(c.Request().Context(), id)
	return h.TxQueue(c)
}

func (h *Handler) Analytics(c echo.Context) error {
	snap, err := h.analytics.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("analytics error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load analytics").WithError(err))
	}
	return h.render(c, http.StatusOK, web.PageAnalytics, web.Page{Title: "Analytics", Path: "/analytics", Data: snap})
}

func (h *Handler) Swap(c echo.Context) error {
	form := models.SwapForm{}
	_ = defaults.Set(&form)
	return h.render(c, http.StatusOK, web.PageSwap, swapPage(form, nil))
}

func (h *Handler) SubmitSwap(c echo.Context) error {
	form := models.SwapForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &form); verr != nil {
		return h.render(c, http.StatusBadRequest, web.PageSwap, swapPage(form, verr))
	}
	form, _ = h.forms.SubmitSwap(c.Request().Context(), form)
	return h.render(c, http.StatusOK, web.PageSwap, swapPage(form, nil))
}

func (h *Handler) Liquidity(c echo.Context) error {
	form := models.LiquidityForm{}
	_ = defaults.Set(&form)
	return h.render(c, http.StatusOK, web.PageLiquidity, liquidityPage(form, nil))
}

func (h *Handler) SubmitLiquidity(c echo.Context) error {
	form := models.LiquidityForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &form); verr != nil {
		return h.render(c, http.StatusBadRequest, web.PageLiquidity, liquidityPage(form, verr))
	}
	form, _ = h.forms.SubmitLiquidity(c.Request().Context(), form)
	return h.render(c, http.StatusOK, web.PageLiquidity, liquidityPage(form, nil))
}

func (h *Handler) Earn(c echo.Context) error {
	form := models.StakeForm{}
	_ = defaults.Set(&form)
	return h.render(c, http.StatusOK, web.PageEarn, earnPage(form, nil))
}

func (h *Handler) SubmitStake(c echo.Context) error {
	form := models.StakeForm{}
	if verr := xhttp.ReadAndValidateRequest(c, &form); verr != nil {
		return h.render(c, http.StatusBadRequest, web.PageEarn, earnPage(form, verr))
	}
	form, _ = h.forms.SubmitStake(c.Request().Context(), form)
	return h.render(c, http.StatusOK, web.PageEarn, earnPage(form, nil))
}

func (h *Handler) About(c echo.Context) error {
	return h.render(c, http.StatusOK, web.PageAbout, web.Page{Title: "About", Path: "/about"})
}

func (h *Handler) render(c echo.Context, status int, page string, p web.Page) error {
	if err := c.Render(status, page, p); err != nil {
		h.logger.Error("render error", xlogger.String("page", page), xlogger.Error(err))
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordPageRender(page)
	}
	return nil
}

func swapPage(f models.SwapForm, verr []xhttp.ValidationError) web.Page {
	return web.Page{Title: "Swap", Path: "/swap", Data: f, Errors: xhttp.Messages(verr)}
}

func liquidityPage(f models.LiquidityForm, verr []xhttp.ValidationError) web.Page {
	return web.Page{Title: "Liquidity", Path: "/liquidity", Data: f, Errors: xhttp.Messages(verr)}
}

func earnPage(f models.StakeForm, verr []xhttp.ValidationError) web.Page {
	return web.Page{Title: "Earn", Path: "/earn", Data: f, Errors: xhttp.Messages(verr)}
}
