package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feed is one sport tracked by the refresher. Empty regions or markets fall
// back to ODDS_REGIONS and ODDS_MARKETS.
type Feed struct {
	SportKey string   `yaml:"sport"`
	Regions  []string `yaml:"regions"`
	Markets  []string `yaml:"markets"`
}

type feedFile struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFeedFile reads a YAML feed list:
//
//	feeds:
//	  - sport: soccer_epl
//	    regions: [uk, eu]
//	    markets: [h2h, totals]
func LoadFeedFile(path string) ([]Feed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ODDS_FEED_FILE: %w", err)
	}
	return parseFeeds(raw)
}

func parseFeeds(raw []byte) ([]Feed, error) {
	var file feedFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse ODDS_FEED_FILE: %w", err)
	}

	out := make([]Feed, 0, len(file.Feeds))
	for i, item := range file.Feeds {
		item.SportKey = strings.TrimSpace(item.SportKey)
		if item.SportKey == "" {
			return nil, fmt.Errorf("parse ODDS_FEED_FILE: feeds[%d] has no sport", i)
		}
		out = append(out, item)
	}
	return out, nil
}
