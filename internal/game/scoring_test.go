package game

import "testing"

func TestRatingDelta(t *testing.T) {
	cases := []struct {
		name    string
		isSpy   bool
		outcome string
		want    int
	}{
		{"spy wins", true, OutcomeSpyWins, 20},
		{"spy caught", true, OutcomeCiviliansWin, -15},
		{"civilian wins", false, OutcomeCiviliansWin, 15},
		{"civilian loses", false, OutcomeSpyWins, -10},
	}
	for _, tc := range cases {
		if got := ratingDelta(tc.isSpy, tc.outcome); got != tc.want {
			t.Errorf("%s: ratingDelta = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWordBonus(t *testing.T) {
	if got := wordBonus(3, 5, -10); got != 15 {
		t.Fatalf("3 used words = %d, want 15", got)
	}
	if got := wordBonus(0, 5, -10); got != -10 {
		t.Fatalf("0 used words = %d, want -10", got)
	}
	if got := wordBonus(1, 5, -10); got != 5 {
		t.Fatalf("1 used word = %d, want 5", got)
	}
}

func TestComputeResultsCombinesRatingAndWords(t *testing.T) {
	e := newTestEngine(t, nil)
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	// 102 used two words, 103 none; word state lives on the game.
	err := e.store.With(gameID, func(game *Game) error {
		words := game.Words[102]
		words[0].Used = true
		words[1].Used = true
		return nil
	})
	if err != nil {
		t.Fatalf("mark words: %v", err)
	}

	var results []Result
	err = e.store.With(gameID, func(game *Game) error {
		results = e.computeResults(game, OutcomeCiviliansWin)
		return nil
	})
	if err != nil {
		t.Fatalf("compute results: %v", err)
	}

	byUser := make(map[int64]Result, len(results))
	for _, result := range results {
		byUser[result.UserID] = result
	}

	// Civilian with two used words: +15 base, +10 bonus.
	if got := byUser[102]; got.RatingDelta != 25 || got.WordBonus != 10 || !got.Won {
		t.Fatalf("102 = %+v, want delta 25 bonus 10 won", got)
	}
	// Civilian with zero used words: +15 base, -10 flat penalty.
	if got := byUser[103]; got.RatingDelta != 5 || got.WordBonus != -10 {
		t.Fatalf("103 = %+v, want delta 5 bonus -10", got)
	}
	// Caught spy with zero used words: -15 base, -10 penalty, lost.
	if got := byUser[101]; got.RatingDelta != -25 || got.Won {
		t.Fatalf("101 = %+v, want delta -25 lost", got)
	}
}

func TestComputeResultsSkipsWordsWhenNoneAssigned(t *testing.T) {
	e := NewEngine(nil, testConfig(), nil, nil)
	snap, _ := e.CreateGame(1, 101, "Ada")
	e.Join(snap.ID, 102, "Ben")
	e.Join(snap.ID, 103, "Cat")
	if _, err := e.Start(snap.ID, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Finish(snap.ID)

	var results []Result
	err := e.store.With(snap.ID, func(game *Game) error {
		results = e.computeResults(game, OutcomeCiviliansWin)
		return nil
	})
	if err != nil {
		t.Fatalf("compute results: %v", err)
	}
	for _, result := range results {
		if result.WordBonus != 0 {
			t.Fatalf("player %d got word bonus %d with no words assigned", result.UserID, result.WordBonus)
		}
	}
}
