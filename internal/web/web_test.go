package web

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"RugGuard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, p Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, p, nil))
	return buf.String()
}

func TestNavigationOrder(t *testing.T) {
	want := []string{"/", "/liquidity", "/swap", "/earn", "/pool-tx-queue", "/analytics", "/about"}
	nav := Navigation()
	require.Len(t, nav, len(want))
	for i, l := range nav {
		assert.Equal(t, want[i], l.Path)
		assert.True(t, IsDeclaredRoute(l.Path))
	}
	assert.False(t, IsDeclaredRoute("/pitchdeck.pdf"))
	assert.False(t, IsDeclaredRoute("/ws/diagnostics"))

	nav[0].Path = "/changed"
	assert.Equal(t, "/", Navigation()[0].Path)
}

func TestEveryPageRendersNavigation(t *testing.T) {
	pages := map[string]any{
		PagePools:     []models.Pool{},
		PageTxQueue:   []models.PendingTx{},
		PageAnalytics: models.AnalyticsSnapshot{},
		PageSwap:      models.SwapForm{FromToken: "ETH", ToToken: "USDC"},
		PageLiquidity: models.LiquidityForm{Operation: "add"},
		PageEarn:      models.StakeForm{Action: "stake"},
		PageAbout:     nil,
	}
	for name, data := range pages {
		html := render(t, name, Page{Title: name, Path: "/", Data: data})
		for _, l := range Navigation() {
			assert.Contains(t, html, `href="`+l.Path+`"`, name)
			assert.Contains(t, html, ">"+l.Label+"</a>", name)
		}
		assert.Contains(t, html, "Connect Wallet", name)
		assert.Contains(t, html, `href="/pitchdeck.pdf"`, name)
		assert.Contains(t, html, `href="/pitchvideo.mp4"`, name)
	}
}

func TestPoolsOneRowPerRecord(t *testing.T) {
	pools := []models.Pool{
		{ID: 1, Name: "ETH/USDC", RiskScore: 20, Liquidity: 1_000_000},
		{ID: 2, Name: "BTC/ETH", RiskScore: 35, Liquidity: 500_000},
	}
	html := render(t, PagePools, Page{Data: pools})
	assert.Equal(t, 3, strings.Count(html, "<tr>"))
	assert.Contains(t, html, "$1,000,000")
	assert.Contains(t, html, `action="/pools/2/manage"`)
	assert.Less(t, strings.Index(html, "ETH/USDC"), strings.Index(html, "BTC/ETH"))
}

func TestEmptyTablesRenderHeaderOnly(t *testing.T) {
	html := render(t, PagePools, Page{Data: []models.Pool(nil)})
	assert.Equal(t, 1, strings.Count(html, "<tr>"))
	assert.Contains(t, html, "Risk Score")

	html = render(t, PageTxQueue, Page{Data: []models.PendingTx{}})
	assert.Equal(t, 1, strings.Count(html, "<tr>"))
	assert.Contains(t, html, "Status")
}

func TestAnalyticsFormatting(t *testing.T) {
	snap := models.AnalyticsSnapshot{
		Pools:   []models.Pool{{ID: 1, Name: "ETH/USDT", RiskScore: 20, Liquidity: 100_000}},
		Metrics: models.PoolMetrics{TotalPools: 2, TotalLiquidity: 600_000, AverageRiskScore: 27.5},
	}
	html := render(t, PageAnalytics, Page{Data: snap})
	assert.Contains(t, html, "Total Pools: 2")
	assert.Contains(t, html, "Total Liquidity: $600,000")
	assert.Contains(t, html, "Average Risk Score: 27.50")

	empty := models.AnalyticsSnapshot{Metrics: models.PoolMetrics{AverageRiskScore: math.NaN()}}
	html = render(t, PageAnalytics, Page{Data: empty})
	assert.Contains(t, html, "Total Pools: 0")
	assert.Contains(t, html, "Average Risk Score: NaN")
}

func TestFormSelectionRendersSelected(t *testing.T) {
	html := render(t, PageSwap, Page{Data: models.SwapForm{FromAmount: "1.5", FromToken: "USDC", ToToken: "ETH"}})
	assert.Contains(t, html, `<option value="USDC" selected>USDC</option>`)
	assert.Contains(t, html, `<option value="ETH" selected>ETH</option>`)
	assert.Contains(t, html, `value="1.5"`)

	html = render(t, PageLiquidity, Page{Data: models.LiquidityForm{Operation: "remove"}})
	assert.Contains(t, html, `<option value="remove" selected>Remove Liquidity</option>`)
	assert.Contains(t, html, ">Remove Liquidity</button>")

	html = render(t, PageEarn, Page{Data: models.StakeForm{Action: "unstake"}})
	assert.Contains(t, html, `<option value="unstake" selected>Unstake</option>`)
	assert.Contains(t, html, ">Unstake Tokens</button>")
	assert.Contains(t, html, "Staking Rewards: 10% APY")
}

func TestRenderErrorsAndUnknownPage(t *testing.T) {
	html := render(t, PageSwap, Page{Data: models.SwapForm{}, Errors: []string{"fromToken must be one of [ETH USDC]"}})
	assert.Contains(t, html, `role="alert"`)

	r, err := NewRenderer()
	require.NoError(t, err)
	require.Error(t, r.Render(&bytes.Buffer{}, "missing", Page{}, nil))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1,000,000", FormatLiquidity(1_000_000))
	assert.Equal(t, "500,000", FormatLiquidity(500_000))
	assert.Equal(t, "27.50", FormatAverage(27.5))
	assert.Equal(t, "NaN", FormatAverage(math.NaN()))
}
