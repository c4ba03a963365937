package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// ConfigCandidates are the config file names looked up in the config home,
// highest precedence first.
var ConfigCandidates = []string{"config.yml", "config.yaml", "config.toml", "config.json"}

type ConfigDiscoveryResult struct {
	// ChosenPath is the highest precedence existing file, empty when none exist
	ChosenPath string
	AllFound   []string
}

// DiscoverConfigFile returns the first of candidates present in dir, along
// with every candidate found so callers can warn about ignored files.
func DiscoverConfigFile(dir string, candidates []string) ConfigDiscoveryResult {
	result := ConfigDiscoveryResult{}

	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			result.AllFound = append(result.AllFound, path)
			if result.ChosenPath == "" {
				result.ChosenPath = path
			}
		}
	}

	return result
}

// GetParserForExtension returns the koanf parser for .yml, .yaml, .toml or
// .json files, and nil for anything else.
func GetParserForExtension(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	case ".json":
		return json.Parser()
	default:
		return nil
	}
}
