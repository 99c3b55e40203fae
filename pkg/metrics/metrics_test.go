package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When empty or invalid values are supplied", func() {
			m := &Manager{namespace: "pie", subsystem: "analytics", latencyBuckets: []float64{1}}
			WithNamespace("")(m)
			WithSubsystem("")(m)
			WithLatencyBuckets(nil)(m)
			WithLatencyBuckets([]float64{5, 1})(m)
			WithLatencyBuckets([]float64{1, 1, 2})(m)
			WithConstLabels(nil)(m)
			WithRegistry(nil)(m)

			Convey("Then the defaults are kept", func() {
				So(m.namespace, ShouldEqual, "pie")
				So(m.subsystem, ShouldEqual, "analytics")
				So(m.latencyBuckets, ShouldResemble, []float64{1})
				So(m.constLabels, ShouldBeNil)
				So(m.registry, ShouldBeNil)
			})
		})

		Convey("When values are supplied", func() {
			m := &Manager{}
			reg := prometheus.NewRegistry()
			buckets := []float64{0.1, 0.5}
			WithNamespace("ns")(m)
			WithSubsystem("sub")(m)
			WithLatencyBuckets(buckets)(m)
			WithConstLabels(map[string]string{"seed": "12345", "": "dropped"})(m)
			WithRegistry(reg)(m)
			buckets[0] = 9

			Convey("Then they are applied", func() {
				So(m.namespace, ShouldEqual, "ns")
				So(m.subsystem, ShouldEqual, "sub")
				So(m.latencyBuckets, ShouldResemble, []float64{0.1, 0.5})
				So(m.constLabels, ShouldResemble, prometheus.Labels{"seed": "12345"})
				So(m.registry, ShouldEqual, reg)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegistry(registry),
			)
			m.datasetCompanies.Set(3)
			m.httpRequests.WithLabelValues("/summary", "GET", "200").Inc()

			Convey("Then metrics are registered under the namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_dataset_companies")
				So(names, ShouldContain, "test_unit_http_requests_total")
			})

			Convey("Then a second manager on the same registry panics", func() {
				So(func() { NewManager(WithRegistry(registry)) }, ShouldNotPanic)
				So(func() {
					NewManager(WithNamespace("test"), WithSubsystem("unit"),
						WithConstLabels(map[string]string{"env": "test"}),
						WithRegistry(registry))
				}, ShouldPanic)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When dataset metrics are updated", func() {
			UpdateDatasetSize(50, 9000, 8)
			UpdateRevenueLeakTotal(1234.5)
			UpdateHighRiskCustomers(7)
			UpdateDatasetGeneratedAt(1700000000)

			Convey("Then the gauges carry the values", func() {
				So(testutil.ToFloat64(globalManager.datasetCompanies), ShouldEqual, 50.0)
				So(testutil.ToFloat64(globalManager.datasetUsageEvents), ShouldEqual, 9000.0)
				So(testutil.ToFloat64(globalManager.datasetCompetitors), ShouldEqual, 8.0)
				So(testutil.ToFloat64(globalManager.revenueLeakTotal), ShouldEqual, 1234.5)
				So(testutil.ToFloat64(globalManager.highRiskCustomers), ShouldEqual, 7.0)
				So(testutil.ToFloat64(globalManager.datasetGeneratedUnix), ShouldEqual, 1700000000.0)
			})
		})

		Convey("When counters are incremented", func() {
			before := testutil.ToFloat64(globalManager.simulations.WithLabelValues("ok"))
			RecordSimulation("ok")
			RecordSimulation("ok")
			RecordExport("csv")
			RecordRateLimited("/summary")
			RecordHTTPRequest("/summary", "GET", "200")
			RecordErrorByEndpoint("/simulate", "POST", "not_found")
			RecordErrorByType("not_found", "low")

			Convey("Then they move forward", func() {
				So(testutil.ToFloat64(globalManager.simulations.WithLabelValues("ok")), ShouldEqual, before+2)
				So(testutil.ToFloat64(globalManager.exports.WithLabelValues("csv")), ShouldBeGreaterThanOrEqualTo, 1.0)
				So(testutil.ToFloat64(globalManager.rateLimited.WithLabelValues("/summary")), ShouldBeGreaterThanOrEqualTo, 1.0)
			})
		})

		Convey("When histograms observe values", func() {
			So(func() {
				RecordDatasetGeneration(12.5)
				RecordViewLatency("summary", 0.3)
				RecordHTTPRequestDuration("/summary", "GET", "200", 1.2)
				RecordErrorLatency("http", "bad_request", 0.4)
				RecordSystemGCPauseTime(0.2)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)

			Convey("Then the registry exposes them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if strings.HasSuffix(f.GetName(), "view_latency_milliseconds") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
