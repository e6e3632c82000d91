package league

import (
	"strings"

	"github.com/riskibarqy/oddsboard/internal/platform/textcase"
)

const segmentSeparator = "."

type canonicalTitle struct {
	sport   string
	country string
	league  string
}

// Provider keys whose titles are known exactly, acronyms included.
var canonicalTitles = map[string]canonicalTitle{
	"soccer_epl":                           {sport: "Soccer", country: "England", league: "Premier League"},
	"soccer_efl_champ":                     {sport: "Soccer", country: "England", league: "Championship"},
	"soccer_england_league1":               {sport: "Soccer", country: "England", league: "League One"},
	"soccer_england_league2":               {sport: "Soccer", country: "England", league: "League Two"},
	"soccer_fa_cup":                        {sport: "Soccer", country: "England", league: "FA Cup"},
	"soccer_england_efl_cup":               {sport: "Soccer", country: "England", league: "EFL Cup"},
	"soccer_spl":                           {sport: "Soccer", country: "Scotland", league: "Premiership"},
	"soccer_spain_la_liga":                 {sport: "Soccer", country: "Spain", league: "La Liga"},
	"soccer_spain_segunda_division":        {sport: "Soccer", country: "Spain", league: "La Liga 2"},
	"soccer_germany_bundesliga":            {sport: "Soccer", country: "Germany", league: "Bundesliga"},
	"soccer_germany_bundesliga2":           {sport: "Soccer", country: "Germany", league: "Bundesliga 2"},
	"soccer_italy_serie_a":                 {sport: "Soccer", country: "Italy", league: "Serie A"},
	"soccer_italy_serie_b":                 {sport: "Soccer", country: "Italy", league: "Serie B"},
	"soccer_france_ligue_one":              {sport: "Soccer", country: "France", league: "Ligue 1"},
	"soccer_france_ligue_two":              {sport: "Soccer", country: "France", league: "Ligue 2"},
	"soccer_netherlands_eredivisie":        {sport: "Soccer", country: "Netherlands", league: "Eredivisie"},
	"soccer_portugal_primeira_liga":        {sport: "Soccer", country: "Portugal", league: "Primeira Liga"},
	"soccer_belgium_first_div":             {sport: "Soccer", country: "Belgium", league: "First Division A"},
	"soccer_turkey_super_league":           {sport: "Soccer", country: "Turkey", league: "Super Lig"},
	"soccer_usa_mls":                       {sport: "Soccer", country: "USA", league: "MLS"},
	"soccer_mexico_ligamx":                 {sport: "Soccer", country: "Mexico", league: "Liga MX"},
	"soccer_brazil_campeonato":             {sport: "Soccer", country: "Brazil", league: "Série A"},
	"soccer_argentina_primera_division":    {sport: "Soccer", country: "Argentina", league: "Primera División"},
	"soccer_japan_j_league":                {sport: "Soccer", country: "Japan", league: "J1 League"},
	"soccer_korea_kleague1":                {sport: "Soccer", country: "South Korea", league: "K League 1"},
	"soccer_australia_aleague":             {sport: "Soccer", country: "Australia", league: "A-League"},
	"soccer_uefa_champs_league":            {sport: "Soccer", country: "Europe", league: "UEFA Champions League"},
	"soccer_uefa_europa_league":            {sport: "Soccer", country: "Europe", league: "UEFA Europa League"},
	"soccer_uefa_europa_conference_league": {sport: "Soccer", country: "Europe", league: "UEFA Conference League"},
	"soccer_uefa_european_championship":    {sport: "Soccer", country: "Europe", league: "UEFA Euro"},
	"soccer_uefa_nations_league":           {sport: "Soccer", country: "Europe", league: "UEFA Nations League"},
	"soccer_conmebol_copa_libertadores":    {sport: "Soccer", country: "South America", league: "Copa Libertadores"},
	"soccer_conmebol_copa_sudamericana":    {sport: "Soccer", country: "South America", league: "Copa Sudamericana"},
	"soccer_conmebol_copa_america":         {sport: "Soccer", country: "South America", league: "Copa América"},
	"soccer_fifa_world_cup":                {sport: "Soccer", country: "World", league: "FIFA World Cup"},
	"soccer_fifa_world_cup_womens":         {sport: "Soccer", country: "World", league: "FIFA Women's World Cup"},

	"basketball_nba":        {sport: "Basketball", country: "USA", league: "NBA"},
	"basketball_wnba":       {sport: "Basketball", country: "USA", league: "WNBA"},
	"basketball_ncaab":      {sport: "Basketball", country: "USA", league: "NCAAB"},
	"basketball_euroleague": {sport: "Basketball", country: "Europe", league: "EuroLeague"},
	"basketball_nbl":        {sport: "Basketball", country: "Australia", league: "NBL"},

	"americanfootball_nfl":   {sport: "American Football", country: "USA", league: "NFL"},
	"americanfootball_ncaaf": {sport: "American Football", country: "USA", league: "NCAAF"},
	"americanfootball_cfl":   {sport: "American Football", country: "Canada", league: "CFL"},
	"americanfootball_ufl":   {sport: "American Football", country: "USA", league: "UFL"},

	"baseball_mlb": {sport: "Baseball", country: "USA", league: "MLB"},
	"baseball_npb": {sport: "Baseball", country: "Japan", league: "NPB"},
	"baseball_kbo": {sport: "Baseball", country: "South Korea", league: "KBO"},

	"icehockey_nhl":                  {sport: "Ice Hockey", country: "USA", league: "NHL"},
	"icehockey_ahl":                  {sport: "Ice Hockey", country: "USA", league: "AHL"},
	"icehockey_sweden_hockey_league": {sport: "Ice Hockey", country: "Sweden", league: "SHL"},
	"icehockey_liiga":                {sport: "Ice Hockey", country: "Finland", league: "Liiga"},

	"tennis_atp_aus_open_singles": {sport: "Tennis", league: "ATP Australian Open"},
	"tennis_atp_french_open":      {sport: "Tennis", league: "ATP French Open"},
	"tennis_atp_wimbledon":        {sport: "Tennis", league: "ATP Wimbledon"},
	"tennis_atp_us_open":          {sport: "Tennis", league: "ATP US Open"},
	"tennis_wta_aus_open_singles": {sport: "Tennis", league: "WTA Australian Open"},
	"tennis_wta_french_open":      {sport: "Tennis", league: "WTA French Open"},
	"tennis_wta_wimbledon":        {sport: "Tennis", league: "WTA Wimbledon"},
	"tennis_wta_us_open":          {sport: "Tennis", league: "WTA US Open"},
	"tennis_atp_indian_wells":     {sport: "Tennis", league: "ATP Indian Wells"},
	"tennis_wta_indian_wells":     {sport: "Tennis", league: "WTA Indian Wells"},

	"aussierules_afl":        {sport: "Aussie Rules", country: "Australia", league: "AFL"},
	"rugbyleague_nrl":        {sport: "Rugby League", country: "Australia", league: "NRL"},
	"mma_mixed_martial_arts": {sport: "MMA", league: "Mixed Martial Arts"},
}

var sportDisplayNames = map[string]string{
	"soccer":           "Soccer",
	"football":         "Soccer",
	"americanfootball": "American Football",
	"basketball":       "Basketball",
	"baseball":         "Baseball",
	"icehockey":        "Ice Hockey",
	"tennis":           "Tennis",
	"golf":             "Golf",
	"mma":              "MMA",
	"boxing":           "Boxing",
	"cricket":          "Cricket",
	"rugbyleague":      "Rugby League",
	"rugbyunion":       "Rugby Union",
	"aussierules":      "Aussie Rules",
	"handball":         "Handball",
	"volleyball":       "Volleyball",
	"lacrosse":         "Lacrosse",
	"tabletennis":      "Table Tennis",
	"darts":            "Darts",
	"snooker":          "Snooker",
	"esports":          "Esports",
	"politics":         "Politics",
}

// ComposeTitle builds the "Sport.Country.League" header for a competition.
// Known provider keys map straight to their curated title. Otherwise the key
// is split on "_" into sport, country and league, explicit fields win over
// parsed ones, and repeated segments are dropped.
func ComposeTitle(in TitleInput) string {
	sportKeyOrName := strings.TrimSpace(in.SportKeyOrName)
	if canonical, ok := canonicalTitles[strings.ToLower(sportKeyOrName)]; ok {
		return joinSegments(canonical.sport, canonical.country, canonical.league)
	}

	var sportToken, countryToken, leagueToken string
	if sportKeyOrName != "" {
		tokens := strings.Split(sportKeyOrName, "_")
		sportToken = tokens[0]
		if len(tokens) > 1 {
			countryToken = tokens[1]
		}
		if len(tokens) > 2 {
			leagueToken = strings.Join(tokens[2:], " ")
		}
	}

	fallback := strings.TrimSpace(in.FallbackSportTitle)
	sport := sportDisplayName(firstNonEmpty(sportToken, sportKeyOrName, fallback))
	country := textcase.Title(firstNonEmpty(strings.TrimSpace(in.Country), countryToken))
	league := textcase.Title(firstNonEmpty(strings.TrimSpace(in.LeagueName), leagueToken, fallback))

	if country != "" && textcase.ContainsFold(league, country) {
		country = ""
	}
	if textcase.EqualFold(sport, country) {
		country = ""
	}
	if textcase.EqualFold(sport, league) {
		league = ""
	}

	return joinSegments(sport, country, league)
}

func sportDisplayName(raw string) string {
	compact := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	if name, ok := sportDisplayNames[compact]; ok {
		return name
	}
	return textcase.Title(raw)
}

// joinSegments drops empty and case-insensitively repeated segments, keeping
// the first spelling seen.
func joinSegments(segments ...string) string {
	kept := make([]string, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		folded := textcase.Fold(segment)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		kept = append(kept, segment)
	}
	return strings.Join(kept, segmentSeparator)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
