package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/heptathlon/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Sport, convey.ShouldEqual, "heptathlon")
				convey.So(cfg.Input, convey.ShouldEqual, "Heptathlon.csv")
				convey.So(cfg.Format, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HEPTATHLON_INPUT", "day1.csv")
			_ = os.Setenv("HEPTATHLON_FORMAT", "json")
			_ = os.Setenv("HEPTATHLON_STRICT", "true")
			_ = os.Setenv("HEPTATHLON_METRICS_FILE", "/tmp/heptathlon.prom")
			_ = os.Setenv("HEPTATHLON_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "day1.csv")
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.Strict, convey.ShouldBeTrue)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/heptathlon.prom")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
sport: heptathlon
input: results/2016.csv
format: json
log_level: info
events:
  "100m":
    a: 25.4347
    b: 18
    c: 1.81
    type: running
  pole:
    a: 0.2797
    b: 100
    c: 1.35
    type: jumping
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HEPTATHLON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "results/2016.csv")
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.Events, convey.ShouldHaveLength, 2)
				convey.So(cfg.Events["pole"].Type, convey.ShouldEqual, "jumping")
			})

			convey.Convey("And the events should extend the weighting table", func() {
				table, err := cfg.Table()
				convey.So(err, convey.ShouldBeNil)
				convey.So(table.Len(), convey.ShouldEqual, 8)
				def, err := table.Lookup("100m")
				convey.So(err, convey.ShouldBeNil)
				convey.So(def.A, convey.ShouldEqual, 25.4347)
			})
		})

		convey.Convey("When env vars and a YAML file both set a key", func() {
			tmpFile := createTempConfigFile("format: json\ninput: from-file.csv\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HEPTATHLON_CONFIG", tmpFile)
			_ = os.Setenv("HEPTATHLON_INPUT", "from-env.csv")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "from-env.csv")
				convey.So(cfg.Format, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			tmpFile := createTempConfigFile("sport: [heptathlon\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			cfg, err := config.LoadFile(ctx, "/nonexistent/heptathlon.yaml")

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values fail validation", func() {
			_ = os.Setenv("HEPTATHLON_FORMAT", "html")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HEPTATHLON_CONFIG",
		"HEPTATHLON_INPUT",
		"HEPTATHLON_FORMAT",
		"HEPTATHLON_STRICT",
		"HEPTATHLON_METRICS_FILE",
		"HEPTATHLON_LOG_LEVEL",
		"HEPTATHLON_SPORT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "heptathlon-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
