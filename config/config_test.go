package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/filesystem"
	"github.com/storyline-cli/storyline/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Playback timing defaults should be sane", func() {
			_ = Setup()
			So(viper.GetInt(key.PlayerPhotoDurationMs), ShouldBeGreaterThan, 0)
			So(viper.GetInt(key.PlayerTickIntervalMs), ShouldBeGreaterThan, 0)
			So(viper.GetFloat64(key.PlayerStallGraceFactor), ShouldBeGreaterThan, 1)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.photo.duration")
			So(result, ShouldEqual, "player_photo_duration")
		})
	})
}
