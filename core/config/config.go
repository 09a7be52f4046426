package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/relocate/core/logger"
	"gopkg.in/yaml.v3"
)

var FileNames = []string{"relocate.yaml", ".relocate.yaml"}

type Config struct {
	SourceRoot string   `yaml:"source_root"`
	Pattern    string   `yaml:"pattern"`
	Exclude    []string `yaml:"exclude"`
	Codemod    Codemod  `yaml:"codemod"`
}

type Codemod struct {
	Command              []string       `yaml:"command"`
	TransformsDir        string         `yaml:"transforms_dir"`
	DeclarationTransform string         `yaml:"declaration_transform"`
	RelativeTransform    string         `yaml:"relative_transform"`
	PrintOptions         map[string]any `yaml:"print_options"`
	BatchSize            int            `yaml:"batch_size"`
}

func Default() *Config {
	return &Config{
		SourceRoot: "src",
		Pattern:    `\.m?jsx?$`,
		Exclude:    []string{"**/node_modules/**", "**/.git/**"},
		Codemod: Codemod{
			Command:              []string{"jscodeshift"},
			DeclarationTransform: "import-declaration-transform.js",
			RelativeTransform:    "import-relative-transform.js",
			PrintOptions:         map[string]any{"quote": "single"},
			BatchSize:            500,
		},
	}
}

// Load reads the config from explicitPath, or the first of FileNames found in
// wd. Without a file the defaults are returned.
func Load(wd, explicitPath string) (*Config, error) {
	filePath := explicitPath
	if filePath == "" {
		for _, name := range FileNames {
			p := filepath.Join(wd, name)
			if _, err := os.Stat(p); err == nil {
				filePath = p
				break
			}
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return &cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.SourceRoot == "" {
		c.SourceRoot = def.SourceRoot
	}
	if c.Pattern == "" {
		c.Pattern = def.Pattern
	}
	if c.Exclude == nil {
		c.Exclude = def.Exclude
	}
	if len(c.Codemod.Command) == 0 {
		c.Codemod.Command = def.Codemod.Command
	}
	if c.Codemod.DeclarationTransform == "" {
		c.Codemod.DeclarationTransform = def.Codemod.DeclarationTransform
	}
	if c.Codemod.RelativeTransform == "" {
		c.Codemod.RelativeTransform = def.Codemod.RelativeTransform
	}
	if c.Codemod.PrintOptions == nil {
		c.Codemod.PrintOptions = def.Codemod.PrintOptions
	}
	if c.Codemod.BatchSize == 0 {
		c.Codemod.BatchSize = def.Codemod.BatchSize
	}
}

func (c *Config) Validate() error {
	if c.Codemod.BatchSize < 0 {
		return fmt.Errorf("codemod.batch_size must not be negative, got %d", c.Codemod.BatchSize)
	}
	if len(c.Codemod.Command) == 0 || c.Codemod.Command[0] == "" {
		return fmt.Errorf("codemod.command must name an executable")
	}
	return nil
}

// SourceRootPath resolves SourceRoot against wd.
func (c *Config) SourceRootPath(wd string) string {
	if filepath.IsAbs(c.SourceRoot) {
		return filepath.Clean(c.SourceRoot)
	}
	return filepath.Join(wd, c.SourceRoot)
}
