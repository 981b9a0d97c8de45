package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RugGuard/internal/domain/models"
	domrepo "RugGuard/internal/domain/repository"
	"RugGuard/internal/repository"
	"RugGuard/internal/usecase"
	xlogger "RugGuard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type list struct {
	Rows  json.RawMessage `json:"rows"`
	Total int64           `json:"total"`
}

type stubHistory struct {
	items []models.Diagnostic
	err   error
	asked int64
}

func (s *stubHistory) Recent(_ context.Context, n int64) ([]models.Diagnostic, error) {
	s.asked = n
	return s.items, s.err
}

func newEcho(t *testing.T, pools []models.Pool, history domrepo.History) *echo.Echo {
	t.Helper()
	diag := usecase.NewDiagnostics(nil, nil, xlogger.Nop())
	h := NewDashboardHandler(
		xlogger.Nop(),
		usecase.NewPoolBoard(repository.NewOverviewPools()),
		usecase.NewTxQueue(repository.NewPendingQueue()),
		usecase.NewAnalytics(repository.NewStaticPoolSource(pools), nil),
		usecase.NewRowActions(diag),
		usecase.NewForms(diag),
		history,
	)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func call(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func analyticsPools() []models.Pool {
	return []models.Pool{
		{ID: 1, Name: "ETH/USDT", RiskScore: 20, Liquidity: 100_000},
		{ID: 2, Name: "BTC/ETH", RiskScore: 35, Liquidity: 500_000},
	}
}

func TestRoutesListsNavigation(t *testing.T) {
	rec, env := call(t, newEcho(t, nil, nil), http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var l list
	require.NoError(t, json.Unmarshal(env.Data, &l))
	assert.EqualValues(t, 7, l.Total)
	assert.Contains(t, string(l.Rows), `"path":"/pool-tx-queue"`)
}

func TestPoolsAndTransactions(t *testing.T) {
	e := newEcho(t, nil, nil)

	_, env := call(t, e, http.MethodGet, "/api/pools", "")
	var l list
	require.NoError(t, json.Unmarshal(env.Data, &l))
	var pools []models.Pool
	require.NoError(t, json.Unmarshal(l.Rows, &pools))
	require.Len(t, pools, 2)
	assert.Equal(t, "ETH/USDC", pools[0].Name)

	_, env = call(t, e, http.MethodGet, "/api/transactions", "")
	require.NoError(t, json.Unmarshal(env.Data, &l))
	var txs []models.PendingTx
	require.NoError(t, json.Unmarshal(l.Rows, &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, "0.5", txs[1].Amount)
}

func TestAnalyticsJSON(t *testing.T) {
	_, env := call(t, newEcho(t, analyticsPools(), nil), http.MethodGet, "/api/analytics", "")
	var snap struct {
		Metrics struct {
			TotalPools       int      `json:"total_pools"`
			TotalLiquidity   float64  `json:"total_liquidity"`
			AverageRiskScore *float64 `json:"average_risk_score"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, 2, snap.Metrics.TotalPools)
	assert.Equal(t, 600000.0, snap.Metrics.TotalLiquidity)
	require.NotNil(t, snap.Metrics.AverageRiskScore)
	assert.Equal(t, 27.5, *snap.Metrics.AverageRiskScore)
}

func TestAnalyticsEmptyAverageIsNull(t *testing.T) {
	rec, env := call(t, newEcho(t, nil, nil), http.MethodGet, "/api/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"average_risk_score":null`)
}

func TestActionEndpoints(t *testing.T) {
	e := newEcho(t, nil, nil)
	cases := map[string]string{
		"/api/pools/1/view":           "Viewing pool with ID: 1",
		"/api/pools/2/manage":         "Managing pool with ID: 2",
		"/api/transactions/1/approve": "Approved transaction with ID: 1",
		"/api/transactions/7/reject":  "Rejected transaction with ID: 7",
	}
	for path, msg := range cases {
		rec, env := call(t, e, http.MethodPost, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		var d models.Diagnostic
		require.NoError(t, json.Unmarshal(env.Data, &d))
		assert.Equal(t, msg, d.Message)
	}

	rec, _ := call(t, e, http.MethodPost, "/api/pools/x/view", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormEndpoints(t *testing.T) {
	e := newEcho(t, nil, nil)

	_, env := call(t, e, http.MethodPost, "/api/swap", `{"fromAmount":"2","toAmount":"1"}`)
	var res struct {
		Form       models.SwapForm   `json:"form"`
		Diagnostic models.Diagnostic `json:"diagnostic"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "ETH", res.Form.FromToken)
	assert.Equal(t, "USDC", res.Form.ToToken)
	assert.Equal(t, "Swap 2 ETH for 1 USDC", res.Diagnostic.Message)

	rec, env := call(t, e, http.MethodPost, "/api/liquidity", `{"operation":"drain","amount":"5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_ONEOF")

	rec, env = call(t, e, http.MethodPost, "/api/earn", `{"action":"unstake","amount":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "unstake amount: abc")
}

func TestDiagnosticsHistory(t *testing.T) {
	rec, _ := call(t, newEcho(t, nil, nil), http.MethodGet, "/api/diagnostics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h := &stubHistory{items: []models.Diagnostic{{ID: "d2"}, {ID: "d1"}}}
	e := newEcho(t, nil, h)

	rec, env := call(t, e, http.MethodGet, "/api/diagnostics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 50, h.asked)
	var l list
	require.NoError(t, json.Unmarshal(env.Data, &l))
	assert.EqualValues(t, 2, l.Total)

	call(t, e, http.MethodGet, "/api/diagnostics?limit=5", "")
	assert.EqualValues(t, 5, h.asked)

	rec, _ = call(t, e, http.MethodGet, "/api/diagnostics?limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h.err = errors.New("db gone")
	rec, _ = call(t, e, http.MethodGet, "/api/diagnostics", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
