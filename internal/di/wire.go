//go:build wireinject
// +build wireinject

package di

import (
	"RugGuard/internal/handler/api"
	"RugGuard/internal/handler/pages"
	"RugGuard/internal/usecase"
	"RugGuard/pkg/config"
	"RugGuard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Diagnostics
		ProvideHub,
		ProvideDiagnosticSink,
		ProvideHistory,
		ProvideDiagnostics,

		// Use cases
		ProvidePoolBoard,
		ProvideTxQueue,
		ProvideAnalytics,
		usecase.NewRowActions,
		usecase.NewForms,

		// HTTP
		ProvideRenderer,
		ProvideTrustedProxies,
		pages.NewHandler,
		api.NewDashboardHandler,
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
