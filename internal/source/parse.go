package source

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gridstats/internal"
)

var (
	reParen       = regexp.MustCompile(`^(.*?)\s*\((.*?)\)\s*$`)
	reVegasLine   = regexp.MustCompile(`^(.*?)\s*(-?\d+(?:\.\d+)?)$`)
	reTemperature = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*degrees`)
	reHumidity    = regexp.MustCompile(`humidity\s*(\d+(?:\.\d+)?)%`)
	reWind        = regexp.MustCompile(`wind\s*(\d+(?:\.\d+)?)\s*mph`)
	reNumber      = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// parseSchedule reads the season schedule table. Rows are in the winner's
// frame: winner is the primary team, "@" in the location cell means the
// winner played away, "N" a neutral site.
func parseSchedule(doc *goquery.Document) []internal.GameRow {
	var games []internal.GameRow

	doc.Find("table#games tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if strings.Contains(tr.AttrOr("class", ""), "thead") {
			return
		}

		week, err := strconv.Atoi(cellText(tr, "week_num"))
		if err != nil {
			return
		}
		date, err := time.Parse("2006-01-02", cellText(tr, "game_date"))
		if err != nil {
			return
		}

		winner := cellText(tr, "winner")
		loser := cellText(tr, "loser")
		box, ok := tr.Find(`td[data-stat="boxscore_word"] a`).Attr("href")
		if winner == "" || loser == "" || !ok {
			return
		}

		tmLoc, oppLoc := "H", "A"
		switch cellText(tr, "game_location") {
		case "@":
			tmLoc, oppLoc = "A", "H"
		case "N":
			tmLoc, oppLoc = "N", "N"
		}

		ptsWin, _ := strconv.ParseFloat(cellText(tr, "pts_win"), 64)
		ptsLose, _ := strconv.ParseFloat(cellText(tr, "pts_lose"), 64)

		games = append(games, internal.GameRow{
			EventDate:         date,
			Week:              week,
			TmName:            winner,
			OppName:           loser,
			TmLocation:        tmLoc,
			OppLocation:       oppLoc,
			TmScore:           ptsWin,
			OppScore:          ptsLose,
			BoxscoreStatsLink: box,
		})
	})

	return games
}

// parseTeamStatistics reads the per-team stat table: one row per team, cells
// keyed by data-stat, the market cell naming the team. Visitor row first,
// home row second. Order relative to the schedule's roles is not guaranteed;
// the resolver sorts that out.
func parseTeamStatistics(doc *goquery.Document) []internal.RawRow {
	var rows []internal.RawRow

	doc.Find("table#gamelog_stats tbody tr").Each(func(_ int, tr *goquery.Selection) {
		row := internal.RawRow{}
		tr.Find("[data-stat]").Each(func(_ int, cell *goquery.Selection) {
			key := strings.TrimSpace(cell.AttrOr("data-stat", ""))
			if key == "" {
				return
			}
			row[key] = strings.TrimSpace(cell.Text())
		})
		if row.Text("market") != "" {
			rows = append(rows, row)
		}
	})

	return rows
}

// parseGameInfo reads the game-context table into the canonical metadata
// keys. A table exposing data-stat cells is taken as-is; otherwise the
// labeled game-info rows are mapped, with the spread, over/under and weather
// lines broken into their numeric fields.
func parseGameInfo(doc *goquery.Document) internal.RawRow {
	direct := internal.RawRow{}
	doc.Find("table#gamelog_meta tbody tr").First().Find("[data-stat]").Each(func(_ int, cell *goquery.Selection) {
		key := strings.TrimSpace(cell.AttrOr("data-stat", ""))
		if key != "" {
			direct[key] = strings.TrimSpace(cell.Text())
		}
	})
	if len(direct) > 0 {
		return direct
	}

	out := internal.RawRow{}
	doc.Find("table#game_info tbody tr").Each(func(_ int, tr *goquery.Selection) {
		label := strings.TrimSpace(tr.Find("th").First().Text())
		value := strings.TrimSpace(tr.Find("td").First().Text())
		if label == "" || value == "" {
			return
		}

		switch label {
		case "Won Toss":
			name, decision := splitParen(value)
			out["won_toss"] = name
			if decision != "" {
				out["won_toss_decision"] = decision
			}
		case "Won OT Toss":
			name, decision := splitParen(value)
			out["won_toss_overtime"] = name
			if decision != "" {
				out["won_toss_overtime_decision"] = decision
			}
		case "Roof":
			out["roof_type"] = value
		case "Surface":
			out["surface_type"] = value
		case "Duration", "Time of Game":
			out["duration"] = value
		case "Attendance":
			out["attendance"] = strings.ReplaceAll(value, ",", "")
		case "Over/Under":
			if n := reNumber.FindString(value); n != "" {
				out["total"] = n
			}
		case "Weather":
			if m := reTemperature.FindStringSubmatch(value); m != nil {
				out["temperature"] = m[1]
			}
			if m := reHumidity.FindStringSubmatch(value); m != nil {
				out["humidity_pct"] = m[1]
			}
			if m := reWind.FindStringSubmatch(value); m != nil {
				out["wind_speed"] = m[1]
			}
		case "Vegas Line":
			applyVegasLine(out, value, homeMarket(doc))
		}
	})

	return out
}

// applyVegasLine attributes the favorite's line to the box score's home/away
// frame: tm_spread is always the home team's number.
func applyVegasLine(out internal.RawRow, line, home string) {
	if strings.HasPrefix(strings.ToLower(line), "pick") {
		out["tm_spread"] = "0"
		out["opp_spread"] = "0"
		return
	}
	m := reVegasLine.FindStringSubmatch(line)
	if m == nil {
		return
	}
	favorite := strings.TrimSpace(m[1])
	spread, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return
	}

	homeSpread := spread
	if home != "" && !teamContains(favorite, home) {
		homeSpread = -spread
	}
	out["tm_spread"] = strconv.FormatFloat(homeSpread, 'f', -1, 64)
	out["opp_spread"] = strconv.FormatFloat(-homeSpread, 'f', -1, 64)
}

// homeMarket is the market of the stat table's second row; the source lists
// the visitor first and the home team second.
func homeMarket(doc *goquery.Document) string {
	rows := parseTeamStatistics(doc)
	if len(rows) != 2 {
		return ""
	}
	return rows[1].Text("market")
}

func splitParen(value string) (string, string) {
	if m := reParen.FindStringSubmatch(value); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return value, ""
}

func teamContains(a, b string) bool {
	al, bl := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if al == "" || bl == "" {
		return false
	}
	return strings.Contains(al, bl) || strings.Contains(bl, al)
}

func cellText(tr *goquery.Selection, stat string) string {
	return strings.TrimSpace(tr.Find(`th[data-stat="` + stat + `"], td[data-stat="` + stat + `"]`).First().Text())
}
