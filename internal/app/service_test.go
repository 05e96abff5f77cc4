package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/heptathlon/internal/adapters/csvsource"
	"github.com/okian/heptathlon/internal/adapters/report"
	app "github.com/okian/heptathlon/internal/app"
	"github.com/okian/heptathlon/internal/domain/scoring"
	"github.com/okian/heptathlon/internal/domain/weighting"
	"github.com/okian/heptathlon/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

const twoDays = `Jessica,100m,16.2,2016-06-05 09:00:00
Kate,100m,15.1,2016-06-05 09:10:00
jessica,long,6.5m,2016-06-05 15:00:00
Kate,shot,14.5,2016-06-06 10:00:00
Jessica,shot,650cm,2016-06-06 10:05:00
`

func TestService_RunReader(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service writing text to a buffer", t, func() {
		var out bytes.Buffer
		svc := app.New(app.WithOutput(&out), app.WithMetrics(metrics.NewManager()))

		Convey("When running over two days of results", func() {
			summary, err := svc.RunReader(ctx, strings.NewReader(twoDays))

			Convey("Then the report should rank each day", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(out.String(), "\n")
				So(lines[0], ShouldEqual, "Day 1: 05 Jun 2016")
				So(lines[1], ShouldEqual, "JESSICA         1697")
				So(lines[2], ShouldStartWith, "KATE")
				So(lines[3], ShouldEqual, "")
				So(lines[4], ShouldEqual, "Day 2: 06 Jun 2016")
				So(lines[5], ShouldEqual, "KATE             827")
				So(lines[6], ShouldEqual, "JESSICA          303")
			})

			Convey("And the summary should describe the run", func() {
				So(summary.RunID, ShouldNotBeBlank)
				So(summary.Records, ShouldEqual, 5)
				So(summary.Days, ShouldEqual, 2)
				So(summary.Athletes, ShouldEqual, 4)
			})
		})

		Convey("When the input is empty", func() {
			summary, err := svc.RunReader(ctx, strings.NewReader(""))

			Convey("Then No results. should be printed without an error", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldEqual, "No results.\n")
				So(summary.Days, ShouldEqual, 0)
			})
		})

		Convey("When a record has an unknown event", func() {
			input := twoDays + "Kate,skeleton,55.1,2016-06-06 11:00:00\n"
			summary, err := svc.RunReader(ctx, strings.NewReader(input))

			Convey("Then the run should fail without a partial report", func() {
				So(summary, ShouldBeNil)
				So(errors.Is(err, weighting.ErrUnknownEvent), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a timestamp is malformed", func() {
			_, err := svc.RunReader(ctx, strings.NewReader("Kate,100m,15.1,yesterday\n"))

			Convey("Then the run should fail with TimestampParseError", func() {
				So(errors.Is(err, csvsource.ErrTimestampParse), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service with a stepping clock", t, func() {
		var out bytes.Buffer
		start := time.Date(2016, time.June, 5, 9, 0, 0, 0, time.UTC)
		calls := 0
		clock := func() time.Time {
			calls++
			return start.Add(time.Duration(calls-1) * 2 * time.Second)
		}
		svc := app.New(app.WithOutput(&out), app.WithMetrics(metrics.NewManager()), app.WithClock(clock))

		Convey("Then the summary duration should come from that clock", func() {
			summary, err := svc.RunReader(ctx, strings.NewReader(twoDays))
			So(err, ShouldBeNil)
			So(summary.Duration, ShouldEqual, 2*time.Second)
		})
	})

	Convey("Given a service for an unsupported sport", t, func() {
		var out bytes.Buffer
		svc := app.New(app.WithSport("decathlon"), app.WithOutput(&out), app.WithMetrics(metrics.NewManager()))

		Convey("Then the run should fail with UnsupportedSportError", func() {
			_, err := svc.RunReader(ctx, strings.NewReader(twoDays))
			So(errors.Is(err, scoring.ErrUnsupportedSport), ShouldBeTrue)
			So(out.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a service with strict parsing", t, func() {
		var out bytes.Buffer
		svc := app.New(app.WithParsePolicy(scoring.Strict), app.WithOutput(&out), app.WithMetrics(metrics.NewManager()))

		Convey("Then a non-numeric value should fail the run", func() {
			_, err := svc.RunReader(ctx, strings.NewReader("Kate,100m,DNS,2016-06-05 09:00:00\n"))
			So(errors.Is(err, scoring.ErrInvalidValue), ShouldBeTrue)
		})
	})

	Convey("Given a service with an extended table and JSON output", t, func() {
		table, err := weighting.Default().Merge(weighting.EventDefinition{
			Abbreviation: "pole", A: 0.2797, B: 100, C: 1.35, Type: weighting.Jumping,
		})
		So(err, ShouldBeNil)
		var out bytes.Buffer
		svc := app.New(
			app.WithTable(table),
			app.WithRenderer(report.JSON{}),
			app.WithOutput(&out),
			app.WithMetrics(metrics.NewManager()),
		)

		Convey("Then the extra event should be scored", func() {
			_, err := svc.RunReader(ctx, strings.NewReader("Kate,Pole,100,2016-06-05 09:00:00\n"))
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"athlete":"kate","score":0`)
		})
	})
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	Convey("Given a results file and a metrics file path", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "Heptathlon.csv")
		So(os.WriteFile(input, []byte(twoDays), 0o600), ShouldBeNil)
		promFile := filepath.Join(dir, "heptathlon.prom")

		var out bytes.Buffer
		svc := app.New(
			app.WithOutput(&out),
			app.WithMetrics(metrics.NewManager()),
			app.WithMetricsFile(promFile),
		)

		Convey("When running", func() {
			_, err := svc.Run(ctx, input)

			Convey("Then the report and metrics should both be written", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldStartWith, "Day 1: 05 Jun 2016\n")
				data, err := os.ReadFile(promFile)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "heptathlon_scoring_records_processed_total 5")
				So(string(data), ShouldContainSubstring, "heptathlon_scoring_last_run_success 1")
				So(string(data), ShouldContainSubstring, "heptathlon_scoring_leaderboard_athletes 4")
			})
		})

		Convey("When the file is missing", func() {
			_, err := svc.Run(ctx, filepath.Join(dir, "missing.csv"))

			Convey("Then the run should fail and record the failure", func() {
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
				data, rerr := os.ReadFile(promFile)
				So(rerr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "heptathlon_scoring_last_run_success 0")
			})
		})
	})
}
