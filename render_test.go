package bincount

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGetHistogram(t *testing.T) {
	Convey("an empty counter", t, func() {
		b := New(10, 0, 1)
		So(b.GetHistogram(true), ShouldBeBlank)
		So(b.GetHistogram(false), ShouldBeBlank)
		So(b.MedianBinIdx(), ShouldEqual, -1)
	})

	Convey("10 bins with one observation each", t, func() {
		b := New(10, 0, 1)
		for i := 0; i < 10; i++ {
			b.Log(float32(i)*0.1+0.05, 1)
		}

		Convey("the median bin is the cumulative midpoint", func() {
			So(b.MedianBinIdx(), ShouldEqual, 4)
		})

		Convey("every bin renders the maximum-length bar", func() {
			lines := strings.Split(strings.TrimRight(b.GetHistogram(false), "\n"), "\n")
			So(lines, ShouldHaveLength, 10)
			for _, line := range lines {
				So(line, ShouldEndWith, strings.Repeat("*", 100))
				So(strings.Count(line, "*"), ShouldEqual, 100)
			}
		})

		Convey("the edge bins are marked as catch-alls", func() {
			lines := strings.Split(strings.TrimRight(b.GetHistogram(false), "\n"), "\n")
			So(lines[0], ShouldStartWith, "<[")
			So(lines[len(lines)-1], ShouldContainSubstring, ")>")
			for _, line := range lines[1 : len(lines)-1] {
				So(line, ShouldStartWith, " [")
				So(line, ShouldContainSubstring, ") ")
			}
		})

		Convey("the stats header lists the aggregates in order", func() {
			lines := strings.Split(b.GetHistogram(true), "\n")
			So(len(lines), ShouldEqual, 19) // 8 header + 10 bins + trailing newline
			So(lines[0], ShouldEqual, "observations: 10")
			So(lines[1], ShouldEqual, "below range:  0")
			So(lines[2], ShouldEqual, "above range:  0")
			So(lines[3], ShouldEqual, "median bin:   4")
			So(lines[4], ShouldEqual, "median range: [0.400, 0.500)")
			So(lines[5], ShouldEqual, "min:          0.050")
			So(lines[6], ShouldEqual, "max:          0.950")
			So(lines[7], ShouldEqual, "mean:         0.500")
		})

		Convey("includeStats false omits the header", func() {
			So(strings.Split(b.GetHistogram(false), "\n")[0], ShouldStartWith, "<[")
		})
	})

	Convey("bar lengths truncate rather than round", t, func() {
		b := New(2, 0, 1)
		b.Log(0.1, 3)
		b.Log(0.6, 1)
		lines := strings.Split(strings.TrimRight(b.GetHistogram(false), "\n"), "\n")
		So(lines, ShouldHaveLength, 2)
		// 100*1/3 truncates to 33
		So(strings.Count(lines[0], "*"), ShouldEqual, 100)
		So(strings.Count(lines[1], "*"), ShouldEqual, 33)
	})

	Convey("a lone observation medians into its own bin", t, func() {
		b := New(10, 0, 1)
		b.Log(0.75, 2)
		So(b.MedianBinIdx(), ShouldEqual, 7)
	})
}
