package format_test

import (
	"math"
	"testing"

	"github.com/okian/pie/internal/domain/format"
	"github.com/smartystreets/goconvey/convey"
)

func TestCurrency(t *testing.T) {
	convey.Convey("Given dollar amounts", t, func() {
		convey.Convey("Then they render without decimals and with grouping", func() {
			convey.So(format.Currency(0), convey.ShouldEqual, "$0")
			convey.So(format.Currency(999.4), convey.ShouldEqual, "$999")
			convey.So(format.Currency(1234.5), convey.ShouldEqual, "$1,235")
			convey.So(format.Currency(1_234_567.89), convey.ShouldEqual, "$1,234,568")
		})

		convey.Convey("And negatives carry a leading minus", func() {
			convey.So(format.Currency(-1500), convey.ShouldEqual, "-$1,500")
			convey.So(format.Currency(-0.4), convey.ShouldEqual, "-$0")
		})

		convey.Convey("And values beyond int64 keep their digits", func() {
			convey.So(format.Currency(1e19), convey.ShouldEqual, "$10,000,000,000,000,000,000")
			convey.So(format.Currency(-1e19), convey.ShouldEqual, "-$10,000,000,000,000,000,000")
		})

		convey.Convey("And non-finite values are spelled out", func() {
			convey.So(format.Currency(math.NaN()), convey.ShouldEqual, "$NaN")
			convey.So(format.Currency(math.Inf(1)), convey.ShouldEqual, "$∞")
			convey.So(format.Currency(math.Inf(-1)), convey.ShouldEqual, "-$∞")
		})
	})
}

func TestPercent(t *testing.T) {
	convey.Convey("Given percentages", t, func() {
		convey.Convey("Then non-negative values get an explicit plus", func() {
			convey.So(format.Percent(12.34), convey.ShouldEqual, "+12.3%")
			convey.So(format.Percent(0), convey.ShouldEqual, "+0.0%")
		})

		convey.Convey("And negative values keep their minus", func() {
			convey.So(format.Percent(-4), convey.ShouldEqual, "-4.0%")
			convey.So(format.Percent(-0.01), convey.ShouldEqual, "-0.0%")
		})

		convey.Convey("And exact halves round up", func() {
			convey.So(format.Percent(12.25), convey.ShouldEqual, "+12.3%")
			convey.So(format.Percent(-12.25), convey.ShouldEqual, "-12.3%")
			convey.So(format.Percent(0.05), convey.ShouldEqual, "+0.1%")
		})

		convey.Convey("And negative zero renders as zero", func() {
			convey.So(format.Percent(math.Copysign(0, -1)), convey.ShouldEqual, "+0.0%")
		})
	})
}

func TestPricePerUnit(t *testing.T) {
	convey.Convey("Given unit prices", t, func() {
		convey.So(format.PricePerUnit(0.015), convey.ShouldEqual, "$0.0150")
		convey.So(format.PricePerUnit(0.05), convey.ShouldEqual, "$0.0500")
		convey.So(format.PricePerUnit(0.12346), convey.ShouldEqual, "$0.1235")
		convey.So(format.PricePerUnit(0.03125), convey.ShouldEqual, "$0.0313")
		convey.So(format.PricePerUnit(1.00005), convey.ShouldEqual, "$1.0001")
		convey.So(format.PricePerUnit(12), convey.ShouldEqual, "$12.0000")
	})
}
