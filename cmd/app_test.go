package cmd

import (
	"context"
	"testing"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/structured"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestNewApp(t *testing.T) {
	Convey("Given the built-in categories", t, func() {
		viper.Set(key.StructuredBoard, "korean")
		viper.Set(key.BulkBaseURL, "https://bulk.example/api")
		Reset(func() {
			viper.Set(key.DatabaseDSN, "")
			viper.Set(key.DatabaseDriver, "")
		})

		Convey("Without a database only bulk categories are served", func() {
			viper.Set(key.DatabaseDSN, "")

			a, err := newApp(context.Background())
			So(err, ShouldBeNil)
			defer a.Close()

			So(a.registry.Sources(catalog.KindStructured), ShouldBeEmpty)
			So(a.registry.Sources(catalog.KindBulk), ShouldHaveLength, 6)

			_, ok := a.registry.Get("korean")
			So(ok, ShouldBeFalse)
		})

		Convey("With an embedded database the board comes first", func() {
			viper.Set(key.DatabaseDriver, structured.DriverSQLite)
			viper.Set(key.DatabaseDSN, ":memory:")

			a, err := newApp(context.Background())
			So(err, ShouldBeNil)
			defer a.Close()

			all := a.registry.All()
			So(all[0].Name(), ShouldEqual, "korean")
			So(all[0].Kind(), ShouldEqual, catalog.KindStructured)
			So(all, ShouldHaveLength, 7)
		})

		Convey("An unknown driver fails", func() {
			viper.Set(key.DatabaseDriver, "oracle")
			viper.Set(key.DatabaseDSN, "somewhere")

			_, err := newApp(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCategoryPrompt(t *testing.T) {
	Convey("The category picker offers every registered category", t, func() {
		viper.Set(key.DatabaseDSN, "")
		viper.Set(key.BulkBaseURL, "https://bulk.example/api")

		a, err := newApp(context.Background())
		So(err, ShouldBeNil)
		defer a.Close()

		prompt := categoryPrompt(a.registry)
		all := a.registry.All()
		So(prompt.Options, ShouldHaveLength, len(all))
		So(prompt.Options[0], ShouldEqual, all[0].Name())
		So(prompt.Description(prompt.Options[1], 1), ShouldEqual, all[1].Title())
		So(prompt.PageSize, ShouldEqual, len(all))
	})
}
