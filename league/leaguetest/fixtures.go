// Package leaguetest holds a small, hand-checked slice of the 2016 batting
// table shared by tests across packages.
package leaguetest

import (
	"testing"

	"github.com/spektr-org/batstats/league"
)

// Header is the batting table header in loader column order.
const Header = "PLAYER,Team,POS,G,AB,R,H,2B,3B,HR,RBI,BB,K,SB,CS,AVG,SLG,OBP,OPS"

// CSV is Players() in loader format.
const CSV = Header + `
"Bryant, Kris",CHC,3B,155,603,121,176,35,3,39,102,75,154,8,5,.292,.554,.385,.939
"Rizzo, Anthony",CHC,1B,155,583,94,170,43,4,32,109,74,108,3,5,.292,.544,.385,.928
"Russell, Addison",CHC,SS,151,525,67,125,25,3,21,95,55,135,5,2,.238,.417,.321,.738
"Beltre, Adrian",TEX,3B,153,583,89,175,31,1,32,104,48,66,1,1,.300,.521,.358,.879
"Odor, Rougned",TEX,2B,150,605,89,164,33,4,33,88,19,135,14,7,.271,.502,.296,.798
"Murphy, Daniel",WSH,2B,142,531,88,184,47,5,25,104,35,57,5,3,.347,.595,.390,.985
"Harper, Bryce",WSH,RF,147,506,84,123,24,2,24,86,108,117,21,10,.243,.441,.373,.814
"Ortiz, David",BOS,DH,151,537,79,169,48,1,38,127,80,86,2,0,.315,.620,.401,1.021
"Betts, Mookie",BOS,RF,158,672,122,214,42,5,31,113,49,80,26,4,.318,.534,.363,.897
"Trumbo, Mark",BAL,RF,159,613,94,157,27,1,47,108,51,170,2,0,.256,.533,.316,.850
"Carter, Chris",FA,1B,160,549,84,122,27,1,41,94,76,206,1,0,.222,.499,.321,.821
"Davis, Chris",FA,1B,157,566,99,125,21,0,38,84,88,219,1,0,.221,.459,.332,.791
`

// Players returns 12 records: five teams, two free agents, with ties at
// HR=32 (Rizzo, Beltre), HR=38 (Ortiz, Davis) and 3B=5 (Murphy, Betts).
func Players() []league.PlayerRecord {
	return []league.PlayerRecord{
		player("Bryant, Kris", "CHC", "3B", 155, 603, 121, 176, 35, 3, 39, 102, 75, 154, 8, 5, .292, .554, .385, .939),
		player("Rizzo, Anthony", "CHC", "1B", 155, 583, 94, 170, 43, 4, 32, 109, 74, 108, 3, 5, .292, .544, .385, .928),
		player("Russell, Addison", "CHC", "SS", 151, 525, 67, 125, 25, 3, 21, 95, 55, 135, 5, 2, .238, .417, .321, .738),
		player("Beltre, Adrian", "TEX", "3B", 153, 583, 89, 175, 31, 1, 32, 104, 48, 66, 1, 1, .300, .521, .358, .879),
		player("Odor, Rougned", "TEX", "2B", 150, 605, 89, 164, 33, 4, 33, 88, 19, 135, 14, 7, .271, .502, .296, .798),
		player("Murphy, Daniel", "WSH", "2B", 142, 531, 88, 184, 47, 5, 25, 104, 35, 57, 5, 3, .347, .595, .390, .985),
		player("Harper, Bryce", "WSH", "RF", 147, 506, 84, 123, 24, 2, 24, 86, 108, 117, 21, 10, .243, .441, .373, .814),
		player("Ortiz, David", "BOS", "DH", 151, 537, 79, 169, 48, 1, 38, 127, 80, 86, 2, 0, .315, .620, .401, 1.021),
		player("Betts, Mookie", "BOS", "RF", 158, 672, 122, 214, 42, 5, 31, 113, 49, 80, 26, 4, .318, .534, .363, .897),
		player("Trumbo, Mark", "BAL", "RF", 159, 613, 94, 157, 27, 1, 47, 108, 51, 170, 2, 0, .256, .533, .316, .850),
		player("Carter, Chris", "FA", "1B", 160, 549, 84, 122, 27, 1, 41, 94, 76, 206, 1, 0, .222, .499, .321, .821),
		player("Davis, Chris", "FA", "1B", 157, 566, 99, 125, 21, 0, 38, 84, 88, 219, 1, 0, .221, .459, .332, .791),
	}
}

// Store builds a league.Store from Players, failing the test on error.
func Store(t testing.TB) *league.Store {
	t.Helper()
	s, err := league.NewStore(Players())
	if err != nil {
		t.Fatalf("leaguetest: build store: %v", err)
	}
	return s
}

func player(name, team, pos string, stats ...float64) league.PlayerRecord {
	r := league.PlayerRecord{Name: name, Team: team, Position: pos}
	copy(r.Stats[:], stats)
	return r
}
