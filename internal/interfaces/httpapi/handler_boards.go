package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/riskibarqy/oddsboard/internal/usecase"
)

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoards")
	defer span.End()

	sportKey := r.PathValue("sportKey")
	boards, err := h.marketService.ListBoards(ctx, sportKey)
	if err != nil {
		h.logger.WarnContext(ctx, "list boards failed", "sport_key", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardsToDTO(boards))
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSections")
	defer span.End()

	sportKey := r.PathValue("sportKey")
	sections, err := h.marketService.ListSections(ctx, sportKey)
	if err != nil {
		h.logger.WarnContext(ctx, "list sections failed", "sport_key", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sectionsToDTO(sections))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	sportKey := r.PathValue("sportKey")
	matchID := r.PathValue("matchID")
	board, err := h.marketService.GetBoard(ctx, sportKey, matchID)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) {
			h.logger.WarnContext(ctx, "get board failed", "sport_key", sportKey, "match_id", matchID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}

// NormalizeMarkets accepts one snapshot object or an array of them.
func (h *Handler) NormalizeMarkets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NormalizeMarkets")
	defer span.End()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
		}
		writeError(ctx, w, err)
		return
	}

	boards, err := h.marketService.NormalizeSnapshots(ctx, payload)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardsToDTO(boards))
}
