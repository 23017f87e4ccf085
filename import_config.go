package radvis

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ImportConfig describes which OSM ways become edges and how their tags become segment attributes
type ImportConfig struct {
	// EntityName is the OSM key ways are filtered by. Currrently 'highway' is expected
	EntityName string `yaml:"entity_name"`
	// Tags are accepted values of EntityName
	Tags []string `yaml:"tags"`
	// Attributes maps OSM key to attribute field
	Attributes map[string]string `yaml:"attributes"`
	// NumericAttributes lists attribute fields parsed as numbers (meters), e.g. breite
	NumericAttributes []string `yaml:"numeric_attributes"`
	// Defaults are used when way has no tag for an attribute field
	Defaults map[string]interface{} `yaml:"defaults"`
}

// DefaultImportConfig returns configuration used when no file is given
func DefaultImportConfig() *ImportConfig {
	return &ImportConfig{
		EntityName: "highway",
		Tags:       []string{"cycleway", "path", "track", "living_street", "residential", "service", "unclassified", "tertiary", "secondary", "primary"},
		Attributes: map[string]string{
			"surface":           "belagArt",
			"width":             "breite",
			"smoothness":        "oberflaechenbeschaffenheit",
			"lit":               "beleuchtung",
			"parking:lane:both": "parkenTyp",
		},
		NumericAttributes: []string{"breite"},
		Defaults: map[string]interface{}{
			"belagArt":                   "UNBEKANNT",
			"oberflaechenbeschaffenheit": "UNBEKANNT",
			"beleuchtung":                "UNBEKANNT",
			"parkenTyp":                  "UNBEKANNT",
		},
	}
}

// LoadImportConfig reads YAML configuration. Missing sections are taken from DefaultImportConfig
func LoadImportConfig(fname string) (*ImportConfig, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read import configuration")
	}
	cfg := &ImportConfig{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "Can't parse import configuration '%s'", fname)
	}
	defaults := DefaultImportConfig()
	if cfg.EntityName == "" {
		cfg.EntityName = defaults.EntityName
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = defaults.Tags
	}
	if len(cfg.Attributes) == 0 {
		cfg.Attributes = defaults.Attributes
		cfg.NumericAttributes = defaults.NumericAttributes
	}
	if cfg.Defaults == nil {
		cfg.Defaults = defaults.Defaults
	}
	return cfg, nil
}

// CheckTag Checks if incoming tag is represented in configuration
func (cfg *ImportConfig) CheckTag(tag string) bool {
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

// attributesFromTags prepares attributes of a segment. Every configured field is present, nil if unknown
func (cfg *ImportConfig) attributesFromTags(find func(key string) string) Attributes {
	attrs := make(Attributes, len(cfg.Attributes))
	for key, field := range cfg.Attributes {
		attrs[field] = cfg.Defaults[field]
		text := strings.TrimSpace(find(key))
		if text == "" {
			continue
		}
		if cfg.isNumeric(field) {
			value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(text, "m")), 64)
			if err != nil {
				continue
			}
			attrs[field] = value
			continue
		}
		attrs[field] = text
	}
	return attrs
}

func (cfg *ImportConfig) isNumeric(field string) bool {
	for _, numeric := range cfg.NumericAttributes {
		if numeric == field {
			return true
		}
	}
	return false
}
