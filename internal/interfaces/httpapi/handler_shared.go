package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/oddsboard/internal/domain/betslip"
	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/domain/market"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/usecase"
)

const defaultMaxBodyBytes int64 = 4 << 20

type Handler struct {
	marketService *usecase.MarketService
	leagueService *usecase.LeagueService
	logger        *logging.Logger
	validator     *validator.Validate
	maxBodyBytes  int64
}

func NewHandler(
	marketService *usecase.MarketService,
	leagueService *usecase.LeagueService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		marketService: marketService,
		leagueService: leagueService,
		logger:        logger,
		validator:     validator.New(),
		maxBodyBytes:  defaultMaxBodyBytes,
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type createSlipEntryRequest struct {
	SportKey  string `json:"sport_key" validate:"required,max=100"`
	MatchID   string `json:"match_id" validate:"required,max=200"`
	MarketKey string `json:"market_key" validate:"required,max=200"`
	Selection string `json:"selection" validate:"required,max=200"`
}

type sportDTO struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	DisplayTitle string `json:"display_title"`
	Description  string `json:"description,omitempty"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

type boardDTO struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title,omitempty"`
	LeagueTitle  string      `json:"league_title"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime string      `json:"commence_time,omitempty"`
	Bookmakers   int         `json:"bookmakers"`
	Markets      []marketDTO `json:"markets"`
}

type marketDTO struct {
	Key      string       `json:"key"`
	Title    string       `json:"title"`
	Outcomes []outcomeDTO `json:"outcomes"`
}

type outcomeDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Point       *float64 `json:"point,omitempty"`
}

type sectionDTO struct {
	Title   string     `json:"title"`
	Matches []boardDTO `json:"matches"`
}

type marketTitleDTO struct {
	Key          string `json:"key"`
	CanonicalKey string `json:"canonical_key"`
	Title        string `json:"title"`
}

type leagueTitleDTO struct {
	Title string `json:"title"`
}

type slipEntryDTO struct {
	MatchID            string  `json:"match_id"`
	MarketKey          string  `json:"market_key"`
	MarketTitle        string  `json:"market_title"`
	Selection          string  `json:"selection"`
	Description        string  `json:"description,omitempty"`
	Odds               float64 `json:"odds"`
	OddsDisplay        string  `json:"odds_display"`
	ImpliedProbability string  `json:"implied_probability"`
	HomeTeam           string  `json:"home_team"`
	AwayTeam           string  `json:"away_team"`
	CommenceTime       string  `json:"commence_time,omitempty"`
}

func sportToDTO(v league.League) sportDTO {
	return sportDTO{
		Key:          v.Key,
		Group:        v.Group,
		Title:        v.Title,
		DisplayTitle: v.DisplayTitle(),
		Description:  v.Description,
		Active:       v.Active,
		HasOutrights: v.HasOutrights,
	}
}

func boardToDTO(v match.Board) boardDTO {
	markets := make([]marketDTO, 0, len(v.Markets))
	for _, item := range v.Markets {
		markets = append(markets, marketToDTO(item))
	}

	return boardDTO{
		ID:           v.ID,
		SportKey:     v.SportKey,
		SportTitle:   v.SportTitle,
		LeagueTitle:  v.LeagueTitle,
		HomeTeam:     v.HomeTeam,
		AwayTeam:     v.AwayTeam,
		CommenceTime: formatOptionalTime(v.CommenceTime),
		Bookmakers:   v.Bookmakers,
		Markets:      markets,
	}
}

func boardsToDTO(items []match.Board) []boardDTO {
	out := make([]boardDTO, 0, len(items))
	for _, item := range items {
		out = append(out, boardToDTO(item))
	}
	return out
}

func marketToDTO(v market.CanonicalMarket) marketDTO {
	outcomes := make([]outcomeDTO, 0, len(v.Outcomes))
	for _, item := range v.Outcomes {
		outcomes = append(outcomes, outcomeDTO{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Point:       item.Point,
		})
	}
	return marketDTO{Key: v.Key, Title: v.Title, Outcomes: outcomes}
}

func sectionsToDTO(items []match.Section) []sectionDTO {
	out := make([]sectionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, sectionDTO{Title: item.Title, Matches: boardsToDTO(item.Matches)})
	}
	return out
}

func slipEntryToDTO(v betslip.Entry) slipEntryDTO {
	odds := decimal.NewFromFloat(v.Odds)
	implied := decimal.Zero
	if odds.IsPositive() {
		implied = decimal.NewFromInt(1).DivRound(odds, 4)
	}

	return slipEntryDTO{
		MatchID:            v.MatchID,
		MarketKey:          v.MarketKey,
		MarketTitle:        v.MarketTitle,
		Selection:          v.Selection,
		Description:        v.Description,
		Odds:               v.Odds,
		OddsDisplay:        odds.StringFixed(2),
		ImpliedProbability: implied.StringFixed(4),
		HomeTeam:           v.HomeTeam,
		AwayTeam:           v.AwayTeam,
		CommenceTime:       formatOptionalTime(v.CommenceTime),
	}
}

func formatOptionalTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
