package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(24, "video", "videos"), ShouldEqual, "24 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize("élan"), ShouldEqual, "Élan")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDisplayName(t *testing.T) {
	Convey("DisplayName", t, func() {
		So(DisplayName("uncensored-leaked"), ShouldEqual, "Uncensored Leaked")
		So(DisplayName("english_subtitle"), ShouldEqual, "English Subtitle")
		So(DisplayName("KOREAN"), ShouldEqual, "Korean")
		So(DisplayName(""), ShouldEqual, "")
	})
}

func TestFirstNonEmpty(t *testing.T) {
	Convey("FirstNonEmpty", t, func() {
		So(FirstNonEmpty("", "  ", "b", "c"), ShouldEqual, "b")
		So(FirstNonEmpty("", " "), ShouldEqual, "")
	})
}

func TestArithmetic(t *testing.T) {
	Convey("Max/Min/Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Clamp(3, 8, 12), ShouldEqual, 8)
		So(Clamp(20, 8, 12), ShouldEqual, 12)
		So(Clamp(10, 8, 12), ShouldEqual, 10)
	})

	Convey("CeilDiv", t, func() {
		So(CeilDiv(1000, 24), ShouldEqual, 42)
		So(CeilDiv(48, 24), ShouldEqual, 2)
		So(CeilDiv(0, 24), ShouldEqual, 0)
		So(CeilDiv(5, 0), ShouldEqual, 0)
	})
}

func TestStack(t *testing.T) {
	Convey("Given a stack", t, func() {
		var s Stack[string]
		So(s.Pop(), ShouldEqual, "")

		s.Push("categories")
		s.Push("listing")
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, "listing")
		So(s.Pop(), ShouldEqual, "listing")
		So(s.Pop(), ShouldEqual, "categories")
		So(s.Len(), ShouldEqual, 0)
	})
}
