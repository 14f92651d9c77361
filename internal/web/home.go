package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Spylingo</title>
  </head>
  <body>
    <main>
      <header>
        <h1>Spylingo</h1>
        <p>Find the spy. Learn the words. One hidden player doesn't know the
        location; everyone else does. Question each other, vote, and sneak
        your vocabulary words into the conversation for bonus points.</p>
      </header>

      <section>
        <h2>How a round works</h2>
        <ol>
          <li>Create a game in your chat and gather at least three players.</li>
          <li>Start the round: the location goes out privately to everybody but the spy.</li>
          <li>Take turns asking questions; the answerer asks next.</li>
          <li>Open a ballot to vote out the spy, or let the spy gamble on a location guess.</li>
        </ol>
      </section>

      <section>
        <h2>Standings</h2>
        <p><a href="/leaderboard">Top players by rating</a></p>
      </section>
    </main>
  </body>
</html>`)
		return err
	})
}
