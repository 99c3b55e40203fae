package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

var cells = []analytics.LeakCell{
	{CompanyID: "b", CompanyName: "Beta AI", Industry: model.IndustryLLMAPI, LeakAmount: 1234.5, LeakPercent: 55.55, Severity: model.SeverityCritical},
	{CompanyID: "a", CompanyName: "Acme, Inc.", Industry: model.IndustryAudioAI, LeakAmount: 80, LeakPercent: 10, Severity: model.SeverityLow},
}

func TestParseFormat(t *testing.T) {
	Convey("Given format query values", t, func() {
		for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, " XLSX ": FormatXLSX} {
			got, err := ParseFormat(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := ParseFormat("pdf")
		So(errors.Is(err, ErrUnsupportedFormat), ShouldBeTrue)
	})

	Convey("Given a format", t, func() {
		at := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
		So(FormatCSV.Filename(at), ShouldEqual, "revenue-leaks-2024-06-01.csv")
		So(FormatXLSX.Filename(at), ShouldEqual, "revenue-leaks-2024-06-01.xlsx")
		So(FormatCSV.ContentType(), ShouldStartWith, "text/csv")
		So(FormatXLSX.ContentType(), ShouldContainSubstring, "spreadsheetml")
	})
}

func TestWriteLeaksCSV(t *testing.T) {
	Convey("Given leak cells", t, func() {
		var buf bytes.Buffer
		So(WriteLeaks(&buf, FormatCSV, cells), ShouldBeNil)

		Convey("Then the CSV has a header and one row per cell", func() {
			rows, err := csv.NewReader(&buf).ReadAll()
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0], ShouldResemble, headers)
			So(rows[1], ShouldResemble, []string{"b", "Beta AI", "LLM API", "1234.50", "$1,235", "55.5", "critical"})
			So(rows[2][1], ShouldEqual, "Acme, Inc.")
		})
	})

	Convey("Given no cells", t, func() {
		var buf bytes.Buffer
		So(WriteLeaks(&buf, FormatCSV, nil), ShouldBeNil)
		So(buf.String(), ShouldStartWith, "Company ID,")
	})

	Convey("Given an unknown format", t, func() {
		err := WriteLeaks(&bytes.Buffer{}, Format("pdf"), cells)
		So(errors.Is(err, ErrUnsupportedFormat), ShouldBeTrue)
	})
}

func TestWriteLeaksXLSX(t *testing.T) {
	Convey("Given leak cells", t, func() {
		var buf bytes.Buffer
		So(WriteLeaks(&buf, FormatXLSX, cells), ShouldBeNil)

		Convey("Then the workbook can be read back", func() {
			f, err := excelize.OpenReader(&buf)
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()

			rows, err := f.GetRows(sheetName)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0][0], ShouldEqual, "Company ID")
			So(rows[1][0], ShouldEqual, "b")
			So(rows[1][4], ShouldEqual, "$1,235")
			So(rows[2][6], ShouldEqual, "low")

			raw, err := f.GetCellValue(sheetName, "D2", excelize.Options{RawCellValue: true})
			So(err, ShouldBeNil)
			So(raw, ShouldEqual, "1234.5")
		})
	})
}
