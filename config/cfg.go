package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ImagesConfig struct {
		RemovePNGTransparency bool    `yaml:"remove_png_transparency"`
		Grayscale             bool    `yaml:"grayscale"`
		Optimize              bool    `yaml:"optimize"`
		JPEGQuality           int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		SVGScale              float64 `yaml:"svg_scale" validate:"gt=0.0"`
		SVGStrokeFactor       float64 `yaml:"svg_stroke_factor" validate:"gt=0.0"`
	}

	FontConfig struct {
		Name string `yaml:"name" validate:"required"`
		Path string `yaml:"path" sanitize:"assure_file_access" validate:"required"`
	}

	ProtectionConfig struct {
		Enable        bool         `yaml:"enable"`
		UserPassword  SecretString `yaml:"user_password"`
		OwnerPassword SecretString `yaml:"owner_password" validate:"required_if=Enable true"`
		AllowPrint    bool         `yaml:"allow_print"`
		AllowCopy     bool         `yaml:"allow_copy"`
	}

	PDFConfig struct {
		Compress   bool             `yaml:"compress"`
		Encoding   string           `yaml:"encoding" validate:"required"`
		Fonts      []FontConfig     `yaml:"fonts" validate:"dive"`
		Protection ProtectionConfig `yaml:"protection"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		CreatorTemplate       string       `yaml:"creator_template"`
		ShowBandOutlines      bool         `yaml:"show_band_outlines"`
		UseTestCursor         bool         `yaml:"use_test_cursor"`
		PDF                   PDFConfig    `yaml:"pdf"`
		Images                ImagesConfig `yaml:"images"`
	}

	DataConfig struct {
		Query        string `yaml:"query"`
		CSVSeparator string `yaml:"csv_separator" validate:"len=1"`
		Timeout      int    `yaml:"timeout_seconds" validate:"gte=0"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Data      DataConfig     `yaml:"data"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	CreatorTemplateFieldName    TemplateFieldName = "creator_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(CreatorTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
