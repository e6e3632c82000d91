package market

import "github.com/riskibarqy/oddsboard/internal/platform/textcase"

var marketTitles = buildMarketTitles()

var coreTitles = map[string]string{
	string(KeyWinner):    "Match Winner",
	string(KeyTotals):    "Over/Under",
	string(KeySpreads):   "Handicap",
	string(KeyOutrights): "Outright Winner",
}

// Markets that are also quoted per period ("totals_h1", "alternate_spreads_q3").
var periodBaseTitles = []struct {
	key   string
	title string
}{
	{key: "h2h", title: "Moneyline"},
	{key: "h2h_3_way", title: "3-Way Moneyline"},
	{key: "spreads", title: "Handicap"},
	{key: "totals", title: "Over/Under"},
	{key: "team_totals", title: "Team Totals"},
	{key: "alternate_spreads", title: "Alternate Handicap"},
	{key: "alternate_totals", title: "Alternate Over/Under"},
	{key: "alternate_team_totals", title: "Alternate Team Totals"},
}

var periodTitles = []struct {
	suffix string
	title  string
}{
	{suffix: "h1", title: "1st Half"},
	{suffix: "h2", title: "2nd Half"},
	{suffix: "q1", title: "1st Quarter"},
	{suffix: "q2", title: "2nd Quarter"},
	{suffix: "q3", title: "3rd Quarter"},
	{suffix: "q4", title: "4th Quarter"},
	{suffix: "p1", title: "1st Period"},
	{suffix: "p2", title: "2nd Period"},
	{suffix: "p3", title: "3rd Period"},
	{suffix: "1st_1_innings", title: "1st Inning"},
	{suffix: "1st_3_innings", title: "1st 3 Innings"},
	{suffix: "1st_5_innings", title: "1st 5 Innings"},
	{suffix: "1st_7_innings", title: "1st 7 Innings"},
}

var extraTitles = map[string]string{
	"h2h_3_way":                 "3-Way Moneyline",
	"team_totals":               "Team Totals",
	"alternate_spreads":         "Alternate Handicap",
	"alternate_totals":          "Alternate Over/Under",
	"alternate_team_totals":     "Alternate Team Totals",
	"btts":                      "Both Teams To Score",
	"draw_no_bet":               "Draw No Bet",
	"double_chance":             "Double Chance",
	"alternate_spreads_corners": "Alternate Handicap Corners",
	"alternate_totals_corners":  "Alternate Over/Under Corners",
	"alternate_spreads_cards":   "Alternate Handicap Cards",
	"alternate_totals_cards":    "Alternate Over/Under Cards",
}

// Player props, grouped by the competitions that quote them. Keys shared
// between sports ("player_assists") carry a sport-neutral title.
var playerPropTitles = map[string]string{
	// american football
	"player_pass_tds":                "Player Pass Touchdowns",
	"player_pass_yds":                "Player Pass Yards",
	"player_pass_completions":        "Player Pass Completions",
	"player_pass_attempts":           "Player Pass Attempts",
	"player_pass_interceptions":      "Player Pass Interceptions",
	"player_pass_longest_completion": "Player Longest Pass Completion",
	"player_rush_yds":                "Player Rush Yards",
	"player_rush_attempts":           "Player Rush Attempts",
	"player_rush_longest":            "Player Longest Rush",
	"player_receptions":              "Player Receptions",
	"player_reception_yds":           "Player Reception Yards",
	"player_reception_longest":       "Player Longest Reception",
	"player_kicking_points":          "Player Kicking Points",
	"player_field_goals":             "Player Field Goals",
	"player_tackles_assists":         "Player Tackles + Assists",
	"player_solo_tackles":            "Player Solo Tackles",
	"player_sacks":                   "Player Sacks",
	"player_pats":                    "Player Points After Touchdown",
	"player_1st_td":                  "1st Touchdown Scorer",
	"player_last_td":                 "Last Touchdown Scorer",
	"player_anytime_td":              "Anytime Touchdown Scorer",
	"player_pass_rush_reception_yds": "Player Pass + Rush + Reception Yards",
	"player_rush_reception_yds":      "Player Rush + Reception Yards",
	"player_defensive_interceptions": "Player Defensive Interceptions",

	// basketball
	"player_points":                  "Player Points",
	"player_rebounds":                "Player Rebounds",
	"player_assists":                 "Player Assists",
	"player_threes":                  "Player Threes",
	"player_blocks":                  "Player Blocks",
	"player_steals":                  "Player Steals",
	"player_turnovers":               "Player Turnovers",
	"player_blocks_steals":           "Player Blocks + Steals",
	"player_points_rebounds_assists": "Player Points + Rebounds + Assists",
	"player_points_rebounds":         "Player Points + Rebounds",
	"player_points_assists":          "Player Points + Assists",
	"player_rebounds_assists":        "Player Rebounds + Assists",
	"player_double_double":           "Player Double Double",
	"player_triple_double":           "Player Triple Double",
	"player_first_basket":            "First Basket Scorer",

	// baseball
	"batter_home_runs":      "Batter Home Runs",
	"batter_first_home_run": "Batter First Home Run",
	"batter_hits":           "Batter Hits",
	"batter_total_bases":    "Batter Total Bases",
	"batter_rbis":           "Batter RBIs",
	"batter_runs_scored":    "Batter Runs Scored",
	"batter_hits_runs_rbis": "Batter Hits + Runs + RBIs",
	"batter_singles":        "Batter Singles",
	"batter_doubles":        "Batter Doubles",
	"batter_triples":        "Batter Triples",
	"batter_walks":          "Batter Walks",
	"batter_strikeouts":     "Batter Strikeouts",
	"batter_stolen_bases":   "Batter Stolen Bases",
	"pitcher_strikeouts":    "Pitcher Strikeouts",
	"pitcher_record_a_win":  "Pitcher To Record A Win",
	"pitcher_hits_allowed":  "Pitcher Hits Allowed",
	"pitcher_walks":         "Pitcher Walks",
	"pitcher_earned_runs":   "Pitcher Earned Runs",
	"pitcher_outs":          "Pitcher Outs",

	// ice hockey
	"player_goals":             "Player Goals",
	"player_shots_on_goal":     "Player Shots On Goal",
	"player_blocked_shots":     "Player Blocked Shots",
	"player_power_play_points": "Player Power Play Points",
	"player_total_saves":       "Player Total Saves",

	// soccer and ice hockey scorer markets
	"player_goal_scorer_anytime": "Anytime Goal Scorer",
	"player_goal_scorer_first":   "First Goal Scorer",
	"player_goal_scorer_last":    "Last Goal Scorer",
	"player_shots":               "Player Shots",
	"player_shots_on_target":     "Player Shots On Target",
	"player_to_receive_card":     "Player To Receive A Card",
	"player_to_receive_red_card": "Player To Receive A Red Card",

	// australian rules
	"player_disposals":          "Player Disposals",
	"player_disposals_over":     "Player Disposals Over",
	"player_goals_scored_over":  "Player Goals Scored Over",
	"player_marks_over":         "Player Marks Over",
	"player_marks_most":         "Player Most Marks",
	"player_tackles_over":       "Player Tackles Over",
	"player_tackles_most":       "Player Most Tackles",
	"player_afl_fantasy_points": "Player AFL Fantasy Points",

	// rugby league
	"player_try_scorer_first":   "First Try Scorer",
	"player_try_scorer_last":    "Last Try Scorer",
	"player_try_scorer_anytime": "Anytime Try Scorer",
	"player_try_scorer_over":    "Player Tries Over",
}

// Props that providers also quote as ladders under "<key>_alternate".
var alternatePropKeys = []string{
	"player_pass_tds",
	"player_pass_yds",
	"player_rush_yds",
	"player_receptions",
	"player_reception_yds",
	"player_points",
	"player_rebounds",
	"player_assists",
	"player_threes",
	"player_points_rebounds_assists",
	"batter_hits",
	"batter_total_bases",
	"batter_home_runs",
	"pitcher_strikeouts",
	"player_goals",
	"player_shots_on_goal",
	"player_total_saves",
}

func buildMarketTitles() map[string]string {
	titles := make(map[string]string, 256)
	for key, title := range extraTitles {
		titles[key] = title
	}
	for key, title := range playerPropTitles {
		titles[key] = title
	}
	for _, key := range alternatePropKeys {
		titles[key+"_alternate"] = "Alternate " + playerPropTitles[key]
	}
	for _, base := range periodBaseTitles {
		for _, period := range periodTitles {
			titles[base.key+"_"+period.suffix] = base.title + " " + period.title
		}
	}
	for key, title := range coreTitles {
		titles[key] = title
	}
	return titles
}

// Title resolves a raw or canonical market key to its display title.
// Unknown keys are humanized ("player_hat_trick" becomes "Player Hat Trick").
func Title(key string) string {
	canonical := NormalizeKey(key)
	if canonical == "" {
		return ""
	}
	if title, ok := marketTitles[canonical]; ok {
		return title
	}
	if title := textcase.Title(canonical); title != "" {
		return title
	}
	return canonical
}
