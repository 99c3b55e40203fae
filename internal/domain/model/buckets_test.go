package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/pie/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChurnRiskFor(t *testing.T) {
	Convey("Given churn probabilities around the bucket thresholds", t, func() {
		cases := []struct {
			probability int
			want        model.ChurnRisk
		}{
			{0, model.ChurnLow},
			{30, model.ChurnLow},
			{31, model.ChurnMedium},
			{60, model.ChurnMedium},
			{61, model.ChurnHigh},
			{100, model.ChurnHigh},
		}

		for _, tc := range cases {
			Convey(fmt.Sprintf("When the probability is %d", tc.probability), func() {
				So(model.ChurnRiskFor(tc.probability), ShouldEqual, tc.want)
			})
		}
	})
}

func TestSeverityFor(t *testing.T) {
	Convey("Given leak percents around the severity thresholds", t, func() {
		cases := []struct {
			leak float64
			want model.Severity
		}{
			{0, model.SeverityLow},
			{15, model.SeverityLow},
			{15.0001, model.SeverityMedium},
			{30, model.SeverityMedium},
			{30.5, model.SeverityHigh},
			{50, model.SeverityHigh},
			{50.0001, model.SeverityCritical},
			{80, model.SeverityCritical},
		}

		for _, tc := range cases {
			Convey(fmt.Sprintf("When the leak percent is %v", tc.leak), func() {
				So(model.SeverityFor(tc.leak), ShouldEqual, tc.want)
			})
		}
	})
}

func TestNotFoundError(t *testing.T) {
	Convey("Given a not-found error for an unknown id", t, func() {
		var err error = &model.NotFoundError{CompanyID: "nope"}

		Convey("Then it matches the sentinel", func() {
			So(errors.Is(err, model.ErrCompanyNotFound), ShouldBeTrue)
			So(errors.Is(fmt.Errorf("lookup: %w", err), model.ErrCompanyNotFound), ShouldBeTrue)
		})

		Convey("And it names the id", func() {
			So(err.Error(), ShouldContainSubstring, `"nope"`)
		})
	})
}
