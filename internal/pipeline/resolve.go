package pipeline

import (
	"fmt"
	"strings"

	"gridstats/internal"
)

// ResolveTeams maps the unordered raw stat pair onto the schedule's team and
// opponent roles. The source keys each stat row by a market field ("Ravens"
// against a schedule name "Baltimore Ravens"), so matching is a normalized
// containment check. A pair with no team-identifying field at all is an
// extraction failure, never a silent guess.
func ResolveTeams(pair []internal.RawRow, tmName, oppName string) (internal.RawRow, internal.RawRow, error) {
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("expected 2 stat rows, got %d", len(pair))
	}

	market := pair[0].Text("market")
	if market == "" {
		market = pair[1].Text("market")
		if market == "" {
			return nil, nil, internal.ErrTeamOrder
		}
		// Only the second row is identifiable; resolve against it.
		if sameTeam(market, tmName) {
			return pair[1], pair[0], nil
		}
		if sameTeam(market, oppName) {
			return pair[0], pair[1], nil
		}
		return nil, nil, fmt.Errorf("stat row market %q matches neither %q nor %q: %w", market, tmName, oppName, internal.ErrTeamOrder)
	}

	if sameTeam(market, tmName) {
		return pair[0], pair[1], nil
	}
	if sameTeam(market, oppName) {
		return pair[1], pair[0], nil
	}
	return nil, nil, fmt.Errorf("stat row market %q matches neither %q nor %q: %w", market, tmName, oppName, internal.ErrTeamOrder)
}

func sameTeam(market, name string) bool {
	m := strings.ToLower(strings.TrimSpace(market))
	n := strings.ToLower(strings.TrimSpace(name))
	if m == "" || n == "" {
		return false
	}
	return m == n || strings.Contains(n, m) || strings.Contains(m, n)
}
