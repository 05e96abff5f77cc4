// Package report renders daily leaderboards for people and machines.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/heptathlon/internal/domain/ranking"
)

// NoResults is printed when the leaderboard has no days.
const NoResults = "No results."

// lineWidth is the column the score ends on; names are padded up to it.
const lineWidth = 20

// Renderer writes a leaderboard to w.
type Renderer interface {
	Render(w io.Writer, lb *ranking.Leaderboard) error
}

// ForFormat returns the renderer for a format name ("text" or "json").
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return Text{}, nil
	case "json":
		return JSON{Indent: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text renders one block per day:
//
//	Day 1: 05 Jun 2016
//	JESSICA ENNIS    1697
//
// Names are upper-cased and padded so name and score together fill 20
// columns; long names are not truncated.
type Text struct{}

// Render implements Renderer.
func (Text) Render(w io.Writer, lb *ranking.Leaderboard) error {
	bw := bufio.NewWriter(w)
	if lb == nil || lb.Empty() {
		fmt.Fprintln(bw, NoResults)
		return bw.Flush()
	}

	for i, day := range lb.Days() {
		fmt.Fprintf(bw, "Day %d: %s\n", i+1, day.Key)
		for _, a := range day.Athletes {
			fmt.Fprintln(bw, Line(a.Name(), a.Score()))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// Line formats a single athlete row: the uppercased name padded on the
// right so name and score fill lineWidth columns. Padding counts runes, so
// non-ASCII names stay aligned; byte-based padding would come up short.
func Line(name string, score int) string {
	s := strconv.Itoa(score)
	width := lineWidth - len(s)
	if width < 0 {
		width = 0
	}
	return fmt.Sprintf("%-*s%s", width, strings.ToUpper(name), s)
}

// JSON renders the standings as a JSON array of days. An empty leaderboard
// prints NoResults, as the text renderer does.
type JSON struct {
	Indent bool
}

// Render implements Renderer.
func (j JSON) Render(w io.Writer, lb *ranking.Leaderboard) error {
	if lb == nil || lb.Empty() {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}
	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(lb.Standings()); err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	return nil
}
