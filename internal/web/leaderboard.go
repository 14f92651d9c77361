package web

import (
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type LeaderboardRow struct {
	Rank        int
	Name        string
	Rating      int
	GamesWon    int
	GamesPlayed int
	BonusPoints int
}

func Leaderboard(rows []LeaderboardRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Spylingo — Leaderboard</title>
  </head>
  <body>
    <main>
      <h1>Top players</h1>
      <table>
        <thead>
          <tr><th>#</th><th>Player</th><th>Rating</th><th>Wins</th><th>Bonus</th></tr>
        </thead>
        <tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := io.WriteString(w, `
          <tr><td>`+itoa(row.Rank)+`</td><td>`+html.EscapeString(row.Name)+`</td><td>`+
				itoa(row.Rating)+`</td><td>`+itoa(row.GamesWon)+`/`+itoa(row.GamesPlayed)+
				`</td><td>`+itoa(row.BonusPoints)+`</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `
        </tbody>
      </table>
      <p><a href="/">Back</a></p>
    </main>
  </body>
</html>`)
		return err
	})
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
