package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/logger"
)

// FileConfig are the defaults an optional config file may supply; flags on
// the command line win over every file value.
type FileConfig struct {
	Workers       *int     `mapstructure:"workers"`
	OrderBy       []string `mapstructure:"orderby"`
	VerifyContent *bool    `mapstructure:"verify_content"`
	VerifyPerms   *bool    `mapstructure:"verify_permissions"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// DefaultConfigPaths returns the default search locations for duplis.yaml.
func DefaultConfigPaths() []string {
	paths := []string{"."}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "duplis"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".duplis"))
	}

	return paths
}

// Load reads the config file at path, or searches the default locations when
// path is empty. A missing file is not an error; a malformed one is.
func Load(path string) (*FileConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("duplis")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// Apply merges file defaults into options that were not set on the command
// line (tracked by the caller through the changed set).
func (f *FileConfig) Apply(opts *Options, changed func(name string) bool) {
	if f.Workers != nil && !changed("threads") {
		opts.Workers = *f.Workers
	}
	if len(f.OrderBy) > 0 && !changed("orderby") {
		opts.OrderBy = f.OrderBy
	}
	if f.VerifyContent != nil && !changed("nocontenteq") {
		opts.VerifyContent = *f.VerifyContent
	}
	if f.VerifyPerms != nil && !changed("nopermeq") {
		opts.VerifyPerms = *f.VerifyPerms
	}
}

// ParsePathListFiles reads path-prefix blacklist files: newline-separated,
// UTF-8 encoded paths. Lines that are not valid UTF-8 are skipped with a
// format event; an unreadable file is a configuration error.
func ParsePathListFiles(paths []string) ([]string, error) {
	var prefixes []string
	for _, listPath := range paths {
		file, err := os.Open(listPath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open path blacklist %s: %v", domain.ErrInvalidConfig, listPath, err)
		}

		sc := bufio.NewScanner(file)
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			if !utf8.ValidString(line) {
				logger.Event(logger.CatFileFormatErr,
					"blacklist line is not valid UTF-8, skipping", "file", listPath)
				continue
			}
			prefixes = append(prefixes, line)
		}
		scanErr := sc.Err()
		file.Close()
		if scanErr != nil {
			return nil, fmt.Errorf("%w: failed to read path blacklist %s: %v", domain.ErrInvalidConfig, listPath, scanErr)
		}
	}
	return prefixes, nil
}
