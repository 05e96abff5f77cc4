package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should use a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotPointTo, GetRegistry())
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithPointsBuckets([]float64{0, 500, 1000}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordResult("100m", 690)

			Convey("Then metric names should use the namespace and subsystem", func() {
				count, err := testutil.GatherAndCount(registry, "test_unit_records_processed_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh manager", t, func() {
		manager := NewManager()

		Convey("When recording results", func() {
			manager.RecordResult("100m", 690)
			manager.RecordResult("100m", 700)
			manager.RecordResult("long", 1007)

			Convey("Then records and points should be counted", func() {
				So(testutil.ToFloat64(manager.recordsProcessed), ShouldEqual, 3)
				So(testutil.ToFloat64(manager.pointsTotal.WithLabelValues("100m")), ShouldEqual, 1390)
				So(testutil.ToFloat64(manager.pointsTotal.WithLabelValues("long")), ShouldEqual, 1007)
				So(testutil.CollectAndCount(manager.eventPoints), ShouldEqual, 2)
			})
		})

		Convey("When recording errors", func() {
			manager.RecordScoringError("unknown_event")
			manager.RecordScoringError("unknown_event")

			Convey("Then they should be counted by kind", func() {
				So(testutil.ToFloat64(manager.scoringErrors.WithLabelValues("unknown_event")), ShouldEqual, 2)
			})
		})

		Convey("When recording a run", func() {
			end := time.Unix(1465120800, 0)
			manager.UpdateLeaderboardSize(2, 7)
			manager.RecordRun(1500*time.Millisecond, true, end)

			Convey("Then the gauges should hold the outcome", func() {
				So(testutil.ToFloat64(manager.days), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.athletes), ShouldEqual, 7)
				So(testutil.ToFloat64(manager.runDuration), ShouldEqual, 1.5)
				So(testutil.ToFloat64(manager.runSuccess), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.runLastTimestamp), ShouldEqual, 1465120800)
			})

			Convey("And a failed run should reset success", func() {
				manager.RecordRun(time.Second, false, end)
				So(testutil.ToFloat64(manager.runSuccess), ShouldEqual, 0)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded results", t, func() {
		manager := NewManager()
		manager.RecordResult("shot", 827)
		path := filepath.Join(t.TempDir(), "heptathlon.prom")

		Convey("When writing the textfile", func() {
			err := manager.WriteTextfile(path)

			Convey("Then the file should contain the exposition format", func() {
				So(err, ShouldBeNil)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "heptathlon_scoring_records_processed_total 1")
				So(string(data), ShouldContainSubstring, `heptathlon_scoring_points_total{event="shot"} 827`)
			})
		})

		Convey("When the directory does not exist", func() {
			err := manager.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then it should fail with ErrExport", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrExport), ShouldBeTrue)
			})
		})
	})
}

func TestGlobalFunctions(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then it should be registered on the shared registry", func() {
			So(Default().Registry(), ShouldPointTo, GetRegistry())
			Default().RecordScoringError("invalid_value")
			So(testutil.ToFloat64(Default().scoringErrors.WithLabelValues("invalid_value")), ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}
