package engine

// Config holds engine configuration
type Config struct {
	cliVersion string
	tempDir    string
}

// Option configures the engine
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(cfg *Config) {
	f(cfg)
}

// WithCLIVersion sets the running devcat version, checked against a
// collection's min_cli_version. Non-release builds skip the check.
func WithCLIVersion(version string) Option {
	return optionFunc(func(cfg *Config) {
		cfg.cliVersion = version
	})
}

// WithTempDir places catalog checkouts under dir instead of the system temp directory.
func WithTempDir(dir string) Option {
	return optionFunc(func(cfg *Config) {
		cfg.tempDir = dir
	})
}
