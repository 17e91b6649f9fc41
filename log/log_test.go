package log

import (
	"testing"

	"github.com/ghie29/avmango/filesystem"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/where"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging configuration", t, func() {
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsLevel, "info")
		})

		Convey("An unknown level falls back to info", func() {
			viper.Set(key.LogsLevel, "chatty")
			So(Setup(), ShouldBeNil)
			So(logrus.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("A known level is applied", func() {
			viper.Set(key.LogsLevel, "debug")
			So(Setup(), ShouldBeNil)
			So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Writing to file creates the log directory entry", func() {
			viper.Set(key.LogsWrite, true)
			So(Setup(), ShouldBeNil)
			Info("hello")
			entries := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(entries, ShouldNotBeEmpty)
		})
	})
}
