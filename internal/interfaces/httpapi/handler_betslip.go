package httpapi

import "net/http"

func (h *Handler) CreateSlipEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSlipEntry")
	defer span.End()

	var req createSlipEntryRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.marketService.BuildSlipEntry(ctx, req.SportKey, req.MatchID, req.MarketKey, req.Selection)
	if err != nil {
		h.logger.InfoContext(ctx, "build slip entry rejected",
			"sport_key", req.SportKey,
			"match_id", req.MatchID,
			"market_key", req.MarketKey,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, slipEntryToDTO(entry))
}
