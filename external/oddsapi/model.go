package oddsapi

import (
	"strings"

	"github.com/riskibarqy/oddsboard/internal/domain/league"
)

type sportItem struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

func (s sportItem) toLeague() league.League {
	return league.League{
		Key:          strings.TrimSpace(s.Key),
		Group:        strings.TrimSpace(s.Group),
		Title:        strings.TrimSpace(s.Title),
		Description:  strings.TrimSpace(s.Description),
		Active:       s.Active,
		HasOutrights: s.HasOutrights,
	}
}
