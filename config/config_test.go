package config

import (
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given an environment with no overrides", t, func() {
		os.Clearenv()

		Convey("When the config values are retrieved", func() {
			cfg, err := Get()

			Convey("Then the defaults are returned", func() {
				So(err, ShouldBeNil)
				So(cfg.BindAddr, ShouldEqual, ":26500")
				So(cfg.SearchAPIURL, ShouldEqual, "https://api.datakeep.civicdays.in")
				So(cfg.SearchAPITimeout, ShouldEqual, 10*time.Second)
				So(cfg.RendererURL, ShouldEqual, "http://localhost:20010")
				So(cfg.DefaultPageSize, ShouldEqual, 12)
				So(cfg.SessionTTL, ShouldEqual, 30*time.Minute)
				So(cfg.GracefulShutdownTimeout, ShouldEqual, 5*time.Second)
				So(cfg.HealthCheckInterval, ShouldEqual, 30*time.Second)
				So(cfg.HealthCheckCriticalTimeout, ShouldEqual, 90*time.Second)
			})
		})
	})

	Convey("Given an environment that overrides the page size", t, func() {
		os.Clearenv()
		defer os.Clearenv()

		Convey("An offered page size is accepted", func() {
			os.Setenv("DEFAULT_PAGE_SIZE", "24")
			cfg, err := Get()
			So(err, ShouldBeNil)
			So(cfg.DefaultPageSize, ShouldEqual, 24)
		})

		Convey("Any other page size is rejected", func() {
			os.Setenv("DEFAULT_PAGE_SIZE", "10")
			cfg, err := Get()
			So(err, ShouldNotBeNil)
			So(cfg, ShouldBeNil)
		})
	})
}
