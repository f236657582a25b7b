package config

const (
	defaultProjectPath = "~/.local/share/segbake/project.db"
	defaultLogDir      = "~/.local/share/segbake/logs"

	defaultTransformMode = "local_rotation"

	defaultTimeUnit       = "frames"
	defaultSpeed          = 24.0
	defaultSwitchingSpeed = 5.0
	minSpeed              = 0.1

	defaultCountMode = "up"
	defaultCountFrom = 0
	defaultCountTo   = 9

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. The on pose
// is a half-turn around local X; scale targets are unit on, zero off.
func Default() Config {
	return Config{
		Paths: Paths{
			Project: defaultProjectPath,
			LogDir:  defaultLogDir,
		},
		Display: Display{
			Mode:              defaultTransformMode,
			OnLocalRotation:   []float64{180, 0, 0},
			OffLocalRotation:  []float64{0, 0, 0},
			OnGlobalRotation:  []float64{180, 0, 0},
			OffGlobalRotation: []float64{0, 0, 0},
			OnLocalLocation:   []float64{0, 0, 0},
			OffLocalLocation:  []float64{0, 0, 0},
			OnGlobalLocation:  []float64{0, 0, 0},
			OffGlobalLocation: []float64{0, 0, 0},
			OnScale:           []float64{1, 1, 1},
			OffScale:          []float64{0, 0, 0},
		},
		Timing: Timing{
			Unit:           defaultTimeUnit,
			Speed:          defaultSpeed,
			SwitchingSpeed: defaultSwitchingSpeed,
		},
		Count: Count{
			Mode:   defaultCountMode,
			From:   defaultCountFrom,
			To:     defaultCountTo,
			Cyclic: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
