package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/usecase"
)

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	includeInactive := false
	if raw := strings.TrimSpace(r.URL.Query().Get("all")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: all must be a boolean", usecase.ErrInvalidInput))
			return
		}
		includeInactive = parsed
	}

	sports, err := h.leagueService.ListLeagues(ctx, includeInactive)
	if err != nil {
		h.logger.WarnContext(ctx, "list sports failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sportDTO, 0, len(sports))
	for _, item := range sports {
		items = append(items, sportToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueTitle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTitle")
	defer span.End()

	query := r.URL.Query()
	title, err := h.leagueService.ComposeTitle(ctx, league.TitleInput{
		SportKeyOrName:     query.Get("sport"),
		Country:            query.Get("country"),
		LeagueName:         query.Get("league"),
		FallbackSportTitle: query.Get("fallback"),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueTitleDTO{Title: title})
}

func (h *Handler) GetMarketTitle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarketTitle")
	defer span.End()

	item, err := h.leagueService.MarketTitle(ctx, r.URL.Query().Get("key"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, marketTitleDTO{
		Key:          item.Key,
		CanonicalKey: item.CanonicalKey,
		Title:        item.Title,
	})
}
