package contest

import (
	"reflect"
	"testing"

	"github.com/ryankeefer-alt/SurvivorPool-website/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Teams:       []string{"duke", "gonzaga", "houston", "purdue", "auburn", "florida", "uconn", "baylor"},
		BuybackDays: []string{models.DayRound1Day2, models.DayRound2Day1},
		CurrentDay:  models.DayRound1Day1,
	}
}

func testPlayer() models.Player {
	return models.Player{
		ID:          1,
		Name:        "Ryan",
		Status:      models.PlayerStatusAlive,
		AmountSpent: BuyInAmount,
		Picks:       map[string][]string{},
		Results:     map[string]models.PickResult{},
	}
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	re, ok := AsRuleError(err)
	if !ok {
		t.Fatalf("want rule error %s, got %v", kind, err)
	}
	if re.Kind != kind {
		t.Fatalf("want kind %s, got %s (%s)", kind, re.Kind, re.Message)
	}
}

func TestRequiredPickCount(t *testing.T) {
	cases := []struct {
		name         string
		day          string
		needsBuyback bool
		want         int
	}{
		{"first opening day, no buyback", models.DayRound1Day1, false, 2},
		{"second opening day, no buyback", models.DayRound1Day2, false, 2},
		{"later day, no buyback", models.DaySweet16Day1, false, 1},
		{"championship, no buyback", models.DayChampionship, false, 1},
		{"second opening day, buyback owed", models.DayRound1Day2, true, 4},
		{"first opening day, buyback owed", models.DayRound1Day1, true, 3},
		{"later day, buyback owed", models.DayElite8Day2, true, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer()
			p.NeedsBuyback = tc.needsBuyback
			if got := RequiredPickCount(&p, tc.day); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSubmitPickValidationOrder(t *testing.T) {
	cfg := testConfig()

	cases := []struct {
		name    string
		setup   func(p *models.Player)
		day     string
		picks   []string
		buyback bool
		want    ErrorKind
	}{
		{
			name: "already submitted wins over everything",
			setup: func(p *models.Player) {
				p.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
				p.Results[models.DayRound1Day1] = models.ResultPending
			},
			day:   models.DayRound1Day1,
			picks: []string{"duke", "duke"}, // would also be a duplicate
			want:  ErrAlreadySubmitted,
		},
		{
			name:  "duplicate within the submission",
			day:   models.DayRound1Day1,
			picks: []string{"duke", "duke"},
			want:  ErrDuplicatePick,
		},
		{
			name: "team reused from a prior day",
			setup: func(p *models.Player) {
				p.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
				p.Results[models.DayRound1Day1] = models.ResultWin
			},
			day:   models.DayRound1Day2,
			picks: []string{"duke", "houston"},
			want:  ErrTeamReused,
		},
		{
			name:  "duplicate reported before roster check",
			day:   models.DayRound1Day1,
			picks: []string{"not-a-team", "not-a-team"},
			want:  ErrDuplicatePick,
		},
		{
			name:  "unknown team",
			day:   models.DayRound1Day1,
			picks: []string{"duke", "not-a-team"},
			want:  ErrInvalidTeam,
		},
		{
			name:  "too few picks on an opening day",
			day:   models.DayRound1Day1,
			picks: []string{"duke"},
			want:  ErrWrongPickCount,
		},
		{
			name:  "too many picks on a later day",
			day:   models.DaySweet16Day1,
			picks: []string{"duke", "gonzaga"},
			want:  ErrWrongPickCount,
		},
		{
			name: "buyback limit reached regardless of day eligibility",
			setup: func(p *models.Player) {
				p.Status = models.PlayerStatusEliminated
				p.NeedsBuyback = true
				p.Buybacks = MaxBuybacks
			},
			day:     models.DayRound2Day1, // an eligible day
			picks:   []string{"duke", "gonzaga", "houston"},
			buyback: true,
			want:    ErrBuybackLimitReached,
		},
		{
			name: "buyback on an ineligible day",
			setup: func(p *models.Player) {
				p.Status = models.PlayerStatusEliminated
				p.NeedsBuyback = true
				p.Buybacks = 1
			},
			day:     models.DaySweet16Day1,
			picks:   []string{"duke", "gonzaga", "houston"},
			buyback: true,
			want:    ErrBuybackNotAllowed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer()
			if tc.setup != nil {
				tc.setup(&p)
			}
			before := clonePlayer(p)

			_, err := SubmitPick(cfg, p, tc.day, tc.picks, tc.buyback)
			wantKind(t, err, tc.want)

			// A rejected submission must leave the player untouched.
			if !reflect.DeepEqual(p, before) {
				t.Fatalf("player mutated by rejected submission: %+v", p)
			}
		})
	}
}

func TestSubmitPickRecordsPendingResult(t *testing.T) {
	cfg := testConfig()
	p := testPlayer()

	updated, err := SubmitPick(cfg, p, models.DayRound1Day1, []string{"duke", "gonzaga"}, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got := updated.Picks[models.DayRound1Day1]; !reflect.DeepEqual(got, []string{"duke", "gonzaga"}) {
		t.Fatalf("picks not recorded: %v", got)
	}
	if updated.Results[models.DayRound1Day1] != models.ResultPending {
		t.Fatalf("result should be pending, got %s", updated.Results[models.DayRound1Day1])
	}
	if updated.Status != models.PlayerStatusAlive {
		t.Fatalf("status changed on a plain submission: %s", updated.Status)
	}

	// The engine returns a copy; the caller's record must be unchanged.
	if len(p.Picks) != 0 || len(p.Results) != 0 {
		t.Fatalf("input player was mutated: %+v", p)
	}
}

func TestSubmitPickBuybackTransition(t *testing.T) {
	cfg := testConfig()
	p := testPlayer()
	p.Status = models.PlayerStatusEliminated
	p.NeedsBuyback = true
	p.Buybacks = 1
	p.AmountSpent = 2 * BuyInAmount
	p.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
	p.Results[models.DayRound1Day1] = models.ResultLoss

	// Buying back on round2-day1 (an eligible, non-opening day) takes 3 picks.
	updated, err := SubmitPick(cfg, p, models.DayRound2Day1, []string{"houston", "purdue", "auburn"}, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if updated.Status != models.PlayerStatusAlive {
		t.Fatalf("buyback should revive the player, got %s", updated.Status)
	}
	if updated.Buybacks != 2 {
		t.Fatalf("buybacks: got %d, want 2", updated.Buybacks)
	}
	if updated.NeedsBuyback {
		t.Fatal("needs-buyback flag should be cleared")
	}
	if updated.AmountSpent != 3*BuyInAmount {
		t.Fatalf("amount spent: got %d, want %d", updated.AmountSpent, 3*BuyInAmount)
	}
	if updated.Results[models.DayRound2Day1] != models.ResultPending {
		t.Fatal("buyback submission should still record a pending result")
	}
}

func TestSubmitPickBuybackNeverExceedsLimit(t *testing.T) {
	// Exhaust buybacks through the engine only and confirm the cap holds.
	cfg := testConfig()
	cfg.Teams = append(cfg.Teams, "tennessee", "arizona", "kansas", "michigan")
	cfg.BuybackDays = []string{models.DayRound2Day1, models.DayRound2Day2, models.DaySweet16Day1, models.DaySweet16Day2}

	p := testPlayer()
	days := []string{models.DayRound2Day1, models.DayRound2Day2, models.DaySweet16Day1}
	picksPerDay := [][]string{
		{"duke", "gonzaga", "houston"},
		{"purdue", "auburn", "florida"},
		{"uconn", "baylor", "tennessee"},
	}

	for i, day := range days {
		p.Status = models.PlayerStatusEliminated
		p.NeedsBuyback = true
		var err error
		p, err = SubmitPick(cfg, p, day, picksPerDay[i], true)
		if err != nil {
			t.Fatalf("buyback %d: unexpected err: %v", i+1, err)
		}
		if p.Buybacks < 0 || p.Buybacks > MaxBuybacks {
			t.Fatalf("buyback count out of range: %d", p.Buybacks)
		}
	}

	p.Status = models.PlayerStatusEliminated
	p.NeedsBuyback = true
	_, err := SubmitPick(cfg, p, models.DaySweet16Day2, []string{"arizona", "kansas", "michigan"}, true)
	wantKind(t, err, ErrBuybackLimitReached)
}

func finalGame(day string, slot int, home, away, winner string) models.Game {
	return models.Game{Day: day, Slot: slot, Home: home, Away: away, Final: true, Winner: winner}
}

func TestProcessDayAllPicksWin(t *testing.T) {
	cfg := *testConfig()
	cfg.CurrentDay = models.DayRound1Day1

	p := testPlayer()
	p.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
	p.Results[models.DayRound1Day1] = models.ResultPending

	games := []models.Game{
		finalGame(models.DayRound1Day1, 1, "duke", "baylor", "duke"),
		finalGame(models.DayRound1Day1, 2, "gonzaga", "uconn", "gonzaga"),
	}

	summary, newCfg, players, err := ProcessDay(cfg, []models.Player{p}, games, models.DayRound1Day1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := players[0]
	if got.Results[models.DayRound1Day1] != models.ResultWin {
		t.Fatalf("result: got %s, want win", got.Results[models.DayRound1Day1])
	}
	if got.Status != models.PlayerStatusAlive {
		t.Fatalf("a winning player must stay alive, got %s", got.Status)
	}
	if newCfg.CurrentDay != models.DayRound1Day2 {
		t.Fatalf("current day should advance to %s, got %s", models.DayRound1Day2, newCfg.CurrentDay)
	}
	if len(summary.Outcomes) != 1 || summary.Outcomes[0].Result != models.ResultWin {
		t.Fatalf("summary wrong: %+v", summary.Outcomes)
	}
}

func TestProcessDayTerminalElimination(t *testing.T) {
	// Loss on a non-buyback day with buybacks exhausted: eliminated for good.
	cfg := *testConfig()
	cfg.BuybackDays = nil

	p := testPlayer()
	p.Buybacks = MaxBuybacks
	p.Picks[models.DaySweet16Day1] = []string{"duke"}
	p.Results[models.DaySweet16Day1] = models.ResultPending

	games := []models.Game{finalGame(models.DaySweet16Day1, 1, "duke", "baylor", "baylor")}

	_, _, players, err := ProcessDay(cfg, []models.Player{p}, games, models.DaySweet16Day1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := players[0]
	if got.Results[models.DaySweet16Day1] != models.ResultLoss {
		t.Fatalf("result: got %s, want loss", got.Results[models.DaySweet16Day1])
	}
	if got.Status != models.PlayerStatusEliminated {
		t.Fatalf("status: got %s, want eliminated", got.Status)
	}
	if got.NeedsBuyback {
		t.Fatal("terminal elimination must not set the needs-buyback flag")
	}
}

func TestProcessDayBubbleElimination(t *testing.T) {
	// Loss on a buyback-eligible day with buybacks remaining: on the bubble.
	cfg := *testConfig()
	cfg.BuybackDays = []string{models.DayRound2Day1}

	p := testPlayer()
	p.Buybacks = 1
	p.Picks[models.DayRound2Day1] = []string{"duke"}
	p.Results[models.DayRound2Day1] = models.ResultPending

	games := []models.Game{finalGame(models.DayRound2Day1, 1, "duke", "baylor", "baylor")}

	_, _, players, err := ProcessDay(cfg, []models.Player{p}, games, models.DayRound2Day1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := players[0]
	if got.Status != models.PlayerStatusEliminated || !got.NeedsBuyback {
		t.Fatalf("want eliminated + needs buyback, got status=%s needsBuyback=%v", got.Status, got.NeedsBuyback)
	}
}

func TestProcessDaySkipsNonParticipants(t *testing.T) {
	cfg := *testConfig()

	noPicks := testPlayer()
	noPicks.ID = 2
	noPicks.Name = "No Picks"

	eliminated := testPlayer()
	eliminated.ID = 3
	eliminated.Name = "Out Already"
	eliminated.Status = models.PlayerStatusEliminated
	eliminated.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
	eliminated.Results[models.DayRound1Day1] = models.ResultPending

	games := []models.Game{finalGame(models.DayRound1Day1, 1, "duke", "baylor", "baylor")}

	summary, _, players, err := ProcessDay(cfg, []models.Player{noPicks, eliminated}, games, models.DayRound1Day1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if players[0].Results[models.DayRound1Day1] != "" {
		t.Fatal("player with no picks should have no result recorded")
	}
	if players[1].Results[models.DayRound1Day1] != models.ResultPending {
		t.Fatal("eliminated player's pending result should be left alone")
	}
	for _, o := range summary.Outcomes {
		if o.Result != "" {
			t.Fatalf("skipped players must have an empty result in the summary, got %+v", o)
		}
	}
}

func TestProcessDayIgnoresUnfinishedGames(t *testing.T) {
	cfg := *testConfig()

	p := testPlayer()
	p.Picks[models.DaySweet16Day1] = []string{"duke"}
	p.Results[models.DaySweet16Day1] = models.ResultPending

	games := []models.Game{
		// Not final: duke's win doesn't count yet.
		{Day: models.DaySweet16Day1, Slot: 1, Home: "duke", Away: "baylor", Winner: "duke"},
		// Final but no winner recorded: contributes nothing either.
		{Day: models.DaySweet16Day1, Slot: 2, Home: "houston", Away: "purdue", Final: true},
	}

	summary, _, players, err := ProcessDay(cfg, []models.Player{p}, games, models.DaySweet16Day1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(summary.Winners) != 0 {
		t.Fatalf("winners set should be empty, got %v", summary.Winners)
	}
	// With no winners, the pick counts as a loss.
	if players[0].Results[models.DaySweet16Day1] != models.ResultLoss {
		t.Fatalf("got %s, want loss", players[0].Results[models.DaySweet16Day1])
	}
}

func TestProcessDayTerminalDayDoesNotAdvance(t *testing.T) {
	cfg := *testConfig()
	cfg.CurrentDay = models.DayChampionship

	_, newCfg, _, err := ProcessDay(cfg, nil, nil, models.DayChampionship)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if newCfg.CurrentDay != models.DayChampionship {
		t.Fatalf("championship is terminal; current day moved to %s", newCfg.CurrentDay)
	}
}

func TestProcessDayRejectsUnknownDay(t *testing.T) {
	cfg := *testConfig()
	_, _, _, err := ProcessDay(cfg, nil, nil, "play-in")
	wantKind(t, err, ErrDayNotFound)
}

func TestProcessDayRejectsReprocessing(t *testing.T) {
	cfg := *testConfig()

	p := testPlayer()
	p.Picks[models.DayRound1Day1] = []string{"duke", "gonzaga"}
	p.Results[models.DayRound1Day1] = models.ResultWin // already resolved

	before := clonePlayer(p)
	_, _, players, err := ProcessDay(cfg, []models.Player{p}, nil, models.DayRound1Day1)
	wantKind(t, err, ErrDayAlreadyProcessed)
	if !reflect.DeepEqual(players[0], before) {
		t.Fatal("rejected reprocessing must leave players unchanged")
	}
}
