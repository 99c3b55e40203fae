package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/pie/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Seed, convey.ShouldEqual, int64(12345))
			convey.So(cfg.CompanyCount, convey.ShouldEqual, 50)
			convey.So(cfg.HistoryDays, convey.ShouldEqual, 180)
			convey.So(cfg.DefaultChurnLimit, convey.ShouldEqual, 20)
			convey.So(cfg.DefaultTopLeaks, convey.ShouldEqual, 10)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the anchor is the zero time", func() {
			anchor, err := cfg.Anchor()
			convey.So(err, convey.ShouldBeNil)
			convey.So(anchor.IsZero(), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_Anchor(t *testing.T) {
	convey.Convey("Given an anchor date", t, func() {
		cfg := config.New()

		convey.Convey("When it is well formed", func() {
			cfg.AnchorDate = "2024-03-01"
			anchor, err := cfg.Anchor()

			convey.Convey("Then it parses to UTC midnight", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(anchor.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When it is malformed", func() {
			cfg.AnchorDate = "03/01/2024"
			_, err := cfg.Anchor()

			convey.Convey("Then it is an invalid config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				var fe *config.FieldError
				convey.So(errors.As(err, &fe), convey.ShouldBeTrue)
				convey.So(fe.Key, convey.ShouldEqual, "anchor_date")
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid field values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
			want   string
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }, "addr"},
			{"zero companies", func(c *config.Config) { c.CompanyCount = 0 }, "company_count"},
			{"negative history", func(c *config.Config) { c.HistoryDays = -1 }, "history_days"},
			{"zero churn limit", func(c *config.Config) { c.DefaultChurnLimit = 0 }, "default_churn_limit"},
			{"max below default", func(c *config.Config) { c.MaxChurnLimit = 5 }, "max_churn_limit"},
			{"zero top leaks", func(c *config.Config) { c.DefaultTopLeaks = 0 }, "default_top_leaks"},
			{"negative rps", func(c *config.Config) { c.RateLimitRPS = -1 }, "rate_limit_rps"},
			{"no burst", func(c *config.Config) { c.RateLimitBurst = 0 }, "rate_limit_burst"},
			{"bad format", func(c *config.Config) { c.LogFormat = "xml" }, "log_format"},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			var fe *config.FieldError
			convey.So(errors.As(err, &fe), convey.ShouldBeTrue)
			convey.So(fe.Key, convey.ShouldEqual, tc.want)
			convey.So(err.Error(), convey.ShouldStartWith, "invalid config: "+tc.want)
		}
	})

	convey.Convey("Given rate limiting disabled", t, func() {
		cfg := config.New()
		cfg.RateLimitRPS = 0
		cfg.RateLimitBurst = 0

		convey.Convey("Then a zero burst is accepted", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
