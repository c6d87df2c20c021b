// Package seo generates titles, descriptions, tags and hashtags for a video
// from its category, language and file name.
package seo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ondrasimku/video-publish-service/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	titleMaxRunes       = 100
	descriptionMaxBytes = 5000
	tagsMaxChars        = 500
	hashtagsMax         = 15
	defaultPreset       = "default"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type Preset struct {
	Label     string   `yaml:"label"`
	Title     string   `yaml:"title"`
	Intro     string   `yaml:"intro"`
	Tags      []string `yaml:"tags"`
	Hashtags  []string `yaml:"hashtags"`
	Thumbnail string   `yaml:"thumbnail"`
}

type Catalog struct {
	Categories map[string]Preset `yaml:"categories"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	normalized := make(map[string]Preset, len(c.Categories))
	for key, preset := range c.Categories {
		if strings.TrimSpace(preset.Title) == "" {
			return nil, fmt.Errorf("catalog category %q has no title", key)
		}
		normalized[strings.ToLower(strings.TrimSpace(key))] = preset
	}
	c.Categories = normalized

	if _, ok := c.Categories[defaultPreset]; !ok {
		return nil, errors.New("catalog has no default category")
	}

	return &c, nil
}

// LoadCatalog reads a catalog file. An empty path selects the built-in one.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(embeddedCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

type Generator struct {
	catalog *Catalog
	logger  *slog.Logger
}

func NewGenerator(catalog *Catalog, logger *slog.Logger) *Generator {
	return &Generator{catalog: catalog, logger: logger}
}

func (g *Generator) preset(category string) Preset {
	if p, ok := g.catalog.Categories[strings.ToLower(category)]; ok {
		return p
	}
	return g.catalog.Categories[defaultPreset]
}

func (g *Generator) Generate(ctx context.Context, input domain.MetadataInput) (domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metadata{}, err
	}

	preset := g.preset(input.Category)
	topic := topicFrom(input.FileName, input.VideoLink, preset.Label)
	fill := strings.NewReplacer(
		"{topic}", topic,
		"{language}", input.Language,
		"{category}", preset.Label,
	)

	metadata := domain.Metadata{
		Title:           clipRunes(fill.Replace(preset.Title), titleMaxRunes),
		Description:     describe(fill.Replace(preset.Intro), input),
		Tags:            buildTags(preset, topic, input.Language),
		Hashtags:        buildHashtags(preset, topic, input.Language),
		ThumbnailPrompt: fmt.Sprintf("%s. Subject: %s. Overlay text in %s.", preset.Thumbnail, topic, input.Language),
	}

	g.logger.Debug("Metadata generated", "title", metadata.Title, "tags", len(metadata.Tags), "category", input.Category)
	return metadata, nil
}

func describe(intro string, input domain.MetadataInput) string {
	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Language: %s\n", input.Language))
	if input.Schedule != nil {
		sb.WriteString(fmt.Sprintf("Premieres: %s\n", *input.Schedule))
	}
	if input.VideoLink != nil {
		sb.WriteString(fmt.Sprintf("Source: %s\n", *input.VideoLink))
	}
	if input.Monetization.IsMonetized() {
		sb.WriteString("This video is monetized and may include ads.\n")
	}
	sb.WriteString("\nLike, comment and subscribe for more.")

	return clipBytes(sb.String(), descriptionMaxBytes)
}

func buildTags(preset Preset, topic, language string) []string {
	candidates := append([]string{}, preset.Tags...)
	candidates = append(candidates, strings.ToLower(topic), strings.ToLower(preset.Label), strings.ToLower(language))

	var tags []string
	seen := make(map[string]bool)
	total := 0
	for _, tag := range candidates {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		// separators count towards the limit
		if total+len(tag)+1 > tagsMaxChars {
			break
		}
		seen[key] = true
		total += len(tag) + 1
		tags = append(tags, tag)
	}
	return tags
}

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func buildHashtags(preset Preset, topic, language string) []string {
	candidates := append([]string{}, preset.Hashtags...)
	candidates = append(candidates, topic, language)

	var hashtags []string
	seen := make(map[string]bool)
	for _, h := range candidates {
		h = strings.ToLower(nonAlnum.ReplaceAllString(strings.TrimLeft(h, "#"), ""))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		hashtags = append(hashtags, h)
		if len(hashtags) == hashtagsMax {
			break
		}
	}
	return hashtags
}

var separators = regexp.MustCompile(`[\s_.\-]+`)

// topicFrom turns "my_clip-42.mp4" into "My Clip 42". Without a usable file
// name it falls back to the link host, then to the category label.
func topicFrom(fileName string, link *string, label string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	words := strings.Fields(separators.ReplaceAllString(stem, " "))
	if len(words) > 0 {
		for i, w := range words {
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
		return strings.Join(words, " ")
	}
	if link != nil {
		if u, err := url.Parse(*link); err == nil && u.Hostname() != "" {
			return u.Hostname()
		}
	}
	return label
}

func clipRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}

func clipBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
