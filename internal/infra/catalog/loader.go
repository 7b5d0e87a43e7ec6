// Package catalog loads and serves the curated fallback dataset. The
// dataset is an external fixture: a YAML document embedded at build time,
// optionally overridden by an on-disk file that is hot reloaded.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

//go:embed curated.yaml
var curatedYAML []byte

type rawTool struct {
	ID             string   `mapstructure:"id"`
	Name           string   `mapstructure:"name"`
	Author         string   `mapstructure:"author"`
	Description    string   `mapstructure:"description"`
	AvatarURL      string   `mapstructure:"avatarUrl"`
	Icon           string   `mapstructure:"icon"`
	Category       string   `mapstructure:"category"`
	Tags           []string `mapstructure:"tags"`
	Stars          int      `mapstructure:"stars"`
	Forks          int      `mapstructure:"forks"`
	OpenIssues     int      `mapstructure:"openIssues"`
	Rating         float64  `mapstructure:"rating"`
	Language       string   `mapstructure:"language"`
	Maturity       string   `mapstructure:"maturity"`
	UpdatedDaysAgo int      `mapstructure:"updatedDaysAgo"`
	RepositoryURL  string   `mapstructure:"repositoryUrl"`
	Trending       bool     `mapstructure:"trending"`
	Verified       bool     `mapstructure:"securityVerified"`
	License        string   `mapstructure:"license"`
	Size           string   `mapstructure:"size"`
}

type rawDataset struct {
	Tools []rawTool `mapstructure:"tools"`
}

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("catalog")}
}

// LoadEmbedded parses the compiled-in curated dataset.
func (l *Loader) LoadEmbedded() ([]domain.ToolRecord, error) {
	return l.parse(curatedYAML)
}

// LoadFile parses a curated dataset override from disk.
func (l *Loader) LoadFile(path string) ([]domain.ToolRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curated dataset: %w", err)
	}
	return l.parse(data)
}

func (l *Loader) parse(data []byte) ([]domain.ToolRecord, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parse curated dataset: %w", err)
	}

	var raw rawDataset
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode curated dataset: %w", err)
	}
	if len(raw.Tools) == 0 {
		return nil, fmt.Errorf("curated dataset is empty")
	}

	now := time.Now()
	tools := make([]domain.ToolRecord, 0, len(raw.Tools))
	seen := make(map[string]bool, len(raw.Tools))
	for i, entry := range raw.Tools {
		if err := validate(entry); err != nil {
			return nil, fmt.Errorf("curated dataset entry %d: %w", i, err)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("curated dataset entry %d: duplicate id %q", i, entry.ID)
		}
		seen[entry.ID] = true
		tools = append(tools, materialize(entry, now))
	}

	l.logger.Debug("curated dataset loaded", zap.Int("tools", len(tools)))
	return tools, nil
}

func validate(entry rawTool) error {
	if entry.ID == "" {
		return fmt.Errorf("missing id")
	}
	if entry.Name == "" {
		return fmt.Errorf("missing name")
	}
	if entry.Rating < 1.0 || entry.Rating > 5.0 {
		return fmt.Errorf("rating %.1f out of range", entry.Rating)
	}
	if len(entry.Tags) > domain.MaxTags {
		return fmt.Errorf("too many tags (%d)", len(entry.Tags))
	}
	if !knownCategory(entry.Category) {
		return fmt.Errorf("unknown category %q", entry.Category)
	}
	return nil
}

func knownCategory(value string) bool {
	for _, category := range domain.Categories() {
		if string(category) == value {
			return true
		}
	}
	return false
}

func materialize(entry rawTool, now time.Time) domain.ToolRecord {
	avatar := entry.AvatarURL
	if avatar == "" {
		avatar = "/assets/images/no_image.png"
	}
	return domain.ToolRecord{
		ID:            entry.ID,
		Name:          entry.Name,
		Author:        entry.Author,
		Description:   entry.Description,
		AvatarURL:     avatar,
		Icon:          entry.Icon,
		Category:      domain.Category(entry.Category),
		Tags:          entry.Tags,
		Stars:         entry.Stars,
		Forks:         entry.Forks,
		OpenIssues:    entry.OpenIssues,
		Rating:        entry.Rating,
		Language:      entry.Language,
		Maturity:      domain.Maturity(entry.Maturity),
		LastUpdated:   now.AddDate(0, 0, -entry.UpdatedDaysAgo),
		RepositoryURL: entry.RepositoryURL,
		Trending:      entry.Trending,
		Verified:      entry.Verified,
		License:       entry.License,
		SizeFormatted: entry.Size,
	}
}
