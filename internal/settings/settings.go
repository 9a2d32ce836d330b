package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogconfig"
	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
)

const loadEnvErrorMessage = "Not able to load configuration from .env file, skipping this optional step.\n" +
	"devcat will read individual environment variables (they MUST be exported).\n" +
	"Note that if .env location is not provided via CLI flag, the nearest .env file in the current working directory or its parents is used."

const bindEnvErrorMessage = "Not able to bind catalog environment variables.\n" +
	"Catalog selection will fall back to the config file and built-in defaults."

// Source says where a catalog setting came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceConfig  Source = "config file"
	SourceBuiltIn Source = "built-in"
)

// Settings holds the resolved catalog selection for one invocation.
type Settings struct {
	Catalog catalogrepo.Selection

	// OverrideSource is empty when no override locator is set.
	OverrideSource   Source
	DefaultSource    Source
	MinVersionSource Source
}

// EffectiveDefault is the default locator in use, built-in value included.
func (s *Settings) EffectiveDefault() string {
	if s.Catalog.Default != "" {
		return s.Catalog.Default
	}
	return constants.DefaultCatalogURL
}

// EffectiveMinVersion is the tag floor in use, built-in value included.
func (s *Settings) EffectiveMinVersion() string {
	if s.Catalog.MinVersion != "" {
		return s.Catalog.MinVersion
	}
	return constants.DefaultMinCatalogVersion
}

// IsDefaultCatalog reports whether the locator that will be used is the
// default one, either because nothing overrides it or because the override
// names the same repository.
func (s *Settings) IsDefaultCatalog() bool {
	if !s.Catalog.HasOverride() {
		return true
	}
	override, err := catalogrepo.ParseLocator(s.Catalog.Override)
	if err != nil {
		return false
	}
	def, err := catalogrepo.ParseLocator(s.EffectiveDefault())
	if err != nil {
		return false
	}
	return override.CloneURL == def.CloneURL
}

// New loads the .env file, binds the catalog environment variables and reads
// ~/.devcat/config.yaml. Precedence, highest first: --catalog flag,
// DEVCAT_CATALOG_URL, DEVCAT_DEFAULT_CATALOG_URL, config file, built-in.
func New(logger *zerolog.Logger, v *viper.Viper) (*Settings, error) {
	// Retrieve the flag value (user-provided or default)
	envPath := v.GetString(Flags.CliEnvFile.Name)

	// .env file is optional
	if err := LoadEnv(envPath); err != nil {
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	if err := BindEnv(v); err != nil {
		logger.Debug().Err(err).Msg(bindEnvErrorMessage)
	}

	cfg, err := catalogconfig.Load(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}

	s := &Settings{}

	switch {
	case v.GetString(Flags.Catalog.Name) != "":
		s.Catalog.Override = v.GetString(Flags.Catalog.Name)
		s.OverrideSource = SourceFlag
	case v.GetString(constants.EnvVarCatalogURL) != "":
		s.Catalog.Override = v.GetString(constants.EnvVarCatalogURL)
		s.OverrideSource = SourceEnv
	}

	s.Catalog.Default, s.DefaultSource = pick(v.GetString(constants.EnvVarDefaultCatalogURL), cfg.DefaultCatalog)
	s.Catalog.MinVersion, s.MinVersionSource = pick(v.GetString(constants.EnvVarMinCatalogVersion), cfg.MinCatalogVersion)

	logger.Debug().
		Str("override", s.Catalog.Override).
		Str("override_source", string(s.OverrideSource)).
		Str("default", s.EffectiveDefault()).
		Str("default_source", string(s.DefaultSource)).
		Str("min_version", s.EffectiveMinVersion()).
		Msg("Catalog settings")

	return s, nil
}

func pick(env, config string) (string, Source) {
	if env = strings.TrimSpace(env); env != "" {
		return env, SourceEnv
	}
	if config = strings.TrimSpace(config); config != "" {
		return config, SourceConfig
	}
	return "", SourceBuiltIn
}

// BindEnv binds only the DEVCAT_* catalog variables. Other viper keys, such as
// flag names, are never read from the environment.
func BindEnv(v *viper.Viper) error {
	envVars := []string{
		constants.EnvVarCatalogURL,
		constants.EnvVarDefaultCatalogURL,
		constants.EnvVarMinCatalogVersion,
	}

	for _, variable := range envVars {
		if err := v.BindEnv(variable); err != nil {
			return fmt.Errorf("failed to bind environment variable: %s", variable)
		}
	}
	return nil
}

func LoadEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	foundEnvPath, err := findEnvFile(cwd, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

func findEnvFile(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break // Reached the root directory.
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}
