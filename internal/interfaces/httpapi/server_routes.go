package httpapi

import (
	"net/http"

	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if m == nil {
		return
	}

	mux.Handle("GET /metrics", m.Handler())
}

func registerMarketRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports", handler.ListSports)
	mux.HandleFunc("GET /v1/sports/{sportKey}/boards", handler.ListBoards)
	mux.HandleFunc("GET /v1/sports/{sportKey}/sections", handler.ListSections)
	mux.HandleFunc("GET /v1/sports/{sportKey}/matches/{matchID}", handler.GetBoard)
	mux.HandleFunc("POST /v1/markets/normalize", handler.NormalizeMarkets)
	mux.HandleFunc("GET /v1/markets/title", handler.GetMarketTitle)
	mux.HandleFunc("GET /v1/leagues/title", handler.GetLeagueTitle)
	mux.HandleFunc("POST /v1/betslip/entries", handler.CreateSlipEntry)
}
