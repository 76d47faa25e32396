package config

// Config is the tool configuration. Flags override file values; file values
// override built-in defaults.
type Config interface {
	CalibrationPath() string
	LogLevel() string
	LogFile() string
	SplineSamples() int
	DiagnosticComments() bool

	SetCalibrationPath(string)
	SetLogLevel(string)
	SetLogFile(string)
	SetSplineSamples(int)
	SetDiagnosticComments(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
