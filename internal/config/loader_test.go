package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/pie/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Seed, convey.ShouldEqual, int64(12345))
				convey.So(cfg.CompanyCount, convey.ShouldEqual, 50)
				convey.So(cfg.HistoryDays, convey.ShouldEqual, 180)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PIE_ADDR", ":8080")
			_ = os.Setenv("PIE_SEED", "42")
			_ = os.Setenv("PIE_COMPANY_COUNT", "12")
			_ = os.Setenv("PIE_HISTORY_DAYS", "30")
			_ = os.Setenv("PIE_ANCHOR_DATE", "2024-01-15")
			_ = os.Setenv("PIE_RATE_LIMIT_RPS", "2.5")
			_ = os.Setenv("PIE_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Seed, convey.ShouldEqual, int64(42))
				convey.So(cfg.CompanyCount, convey.ShouldEqual, 12)
				convey.So(cfg.HistoryDays, convey.ShouldEqual, 30)
				convey.So(cfg.AnchorDate, convey.ShouldEqual, "2024-01-15")
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 2.5)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard demo settings
addr: ":9090"
company_count: 20
history_days: 90
default_churn_limit: 5
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PIE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CompanyCount, convey.ShouldEqual, 20)
				convey.So(cfg.HistoryDays, convey.ShouldEqual, 90)
				convey.So(cfg.DefaultChurnLimit, convey.ShouldEqual, 5)
				convey.So(cfg.DefaultTopLeaks, convey.ShouldEqual, 10) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
company_count: 20
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PIE_CONFIG", tmpFile)
			_ = os.Setenv("PIE_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")    // Overridden by env
				convey.So(cfg.CompanyCount, convey.ShouldEqual, 20) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PIE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PIE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PIE_COMPANY_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config that fails validation", func() {
			_ = os.Setenv("PIE_HISTORY_DAYS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "history_days")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			clearConfigEnvVars()
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			cfg, err := config.Load(cctx)

			convey.Convey("Then loading is abandoned", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PIE_CONFIG",
		"PIE_ADDR",
		"PIE_SEED",
		"PIE_COMPANY_COUNT",
		"PIE_HISTORY_DAYS",
		"PIE_ANCHOR_DATE",
		"PIE_RATE_LIMIT_RPS",
		"PIE_LOG_FORMAT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pie-config-*.yaml")
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
