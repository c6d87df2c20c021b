package seo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ondrasimku/video-publish-service/internal/domain"
	applog "github.com/ondrasimku/video-publish-service/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	return NewGenerator(catalog, applog.Discard())
}

func strPtr(s string) *string { return &s }

func TestEmbeddedCatalogHasAllCategories(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	for _, key := range []string{"default", "tech", "vlog", "shorts", "gaming", "tutorial"} {
		assert.Contains(t, catalog.Categories, key)
	}
}

func TestGenerateTech(t *testing.T) {
	g := newGenerator(t)

	md, err := g.Generate(context.Background(), domain.MetadataInput{
		Category:     "tech",
		Language:     "English",
		Monetization: domain.Monetized,
		FileName:     "my_clip-42.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, "My Clip 42 Explained | Tech in English", md.Title)
	assert.Contains(t, md.Description, "My Clip 42")
	assert.Contains(t, md.Description, "Language: English")
	assert.Contains(t, md.Description, "monetized")
	assert.NotContains(t, md.Description, "Premieres")
	assert.Contains(t, md.Tags, "technology")
	assert.Contains(t, md.Tags, "english")
	assert.Contains(t, md.Tags, "my clip 42")
	assert.Equal(t, []string{"tech", "technology", "myclip42", "english"}, md.Hashtags)
	assert.Contains(t, md.ThumbnailPrompt, "My Clip 42")
}

func TestGenerateHashtagsHaveNoLeadingHash(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
categories:
  default:
    title: "{topic}"
    hashtags: ["#Fun", "fun", "#travel tips"]
`))
	require.NoError(t, err)
	g := NewGenerator(catalog, applog.Discard())

	md, err := g.Generate(context.Background(), domain.MetadataInput{Category: "x", Language: "German", FileName: "trip.mp4"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fun", "traveltips", "trip", "german"}, md.Hashtags)
	for _, h := range md.Hashtags {
		assert.False(t, strings.HasPrefix(h, "#"))
	}
}

func TestGenerateScheduleAndLink(t *testing.T) {
	g := newGenerator(t)

	md, err := g.Generate(context.Background(), domain.MetadataInput{
		Category:     "vlog",
		Language:     "Spanish",
		Monetization: domain.NonMonetized,
		Schedule:     strPtr("2026-11-01T10:00"),
		VideoLink:    strPtr("https://cdn.example.com/v/remote-video.mp4"),
		FileName:     "remote-video.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, "Remote Video | My Spanish Vlog", md.Title)
	assert.Contains(t, md.Description, "Premieres: 2026-11-01T10:00")
	assert.Contains(t, md.Description, "Source: https://cdn.example.com/v/remote-video.mp4")
	assert.NotContains(t, md.Description, "monetized")
}

func TestGenerateUnknownCategoryUsesDefault(t *testing.T) {
	g := newGenerator(t)

	md, err := g.Generate(context.Background(), domain.MetadataInput{
		Category: "cooking",
		Language: "Italian",
		FileName: "pasta.mov",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pasta | Italian", md.Title)
}

func TestGenerateCategoryIsCaseInsensitive(t *testing.T) {
	g := newGenerator(t)

	md, err := g.Generate(context.Background(), domain.MetadataInput{Category: "GAMING", Language: "English", FileName: "boss.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "Boss | English Gameplay", md.Title)
}

func TestGenerateTitleIsClipped(t *testing.T) {
	g := newGenerator(t)

	md, err := g.Generate(context.Background(), domain.MetadataInput{
		Category: "tutorial",
		Language: "English",
		FileName: strings.Repeat("very long name ", 20) + ".mp4",
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, utf8.RuneCountInString(md.Title), titleMaxRunes)
	assert.True(t, strings.HasSuffix(md.Title, "..."))
}

func TestGenerateCancelledContext(t *testing.T) {
	g := newGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, domain.MetadataInput{Category: "tech", Language: "English", FileName: "a.mp4"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopicFrom(t *testing.T) {
	assert.Equal(t, "Clip42", topicFrom("clip42.mov", nil, "Video"))
	assert.Equal(t, "Demo Video", topicFrom("demo video.mp4", nil, "Video"))
	assert.Equal(t, "Éclair Recipe", topicFrom("éclair_recipe.mp4", nil, "Video"))
	assert.Equal(t, "cdn.example.com", topicFrom(".mp4", strPtr("https://cdn.example.com/"), "Video"))
	assert.Equal(t, "Video", topicFrom("", nil, "Video"))
}

func TestBuildTagsRespectsLimit(t *testing.T) {
	preset := Preset{Label: "Video"}
	for i := 0; i < 100; i++ {
		preset.Tags = append(preset.Tags, strings.Repeat(string(rune('a'+i%26)), 9)+string(rune('0'+i%10)))
	}

	tags := buildTags(preset, "topic", "English")

	total := 0
	for _, tag := range tags {
		total += len(tag) + 1
	}
	assert.LessOrEqual(t, total, tagsMaxChars)
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("categories: [broken"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("categories:\n  tech:\n    title: x\n"))
	assert.ErrorContains(t, err, "default")

	_, err = ParseCatalog([]byte("categories:\n  default:\n    label: x\n"))
	assert.ErrorContains(t, err, "no title")
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  Default:\n    title: \"{topic}!\"\n"), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	g := NewGenerator(catalog, applog.Discard())
	md, err := g.Generate(context.Background(), domain.MetadataInput{Category: "tech", Language: "English", FileName: "x.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "X!", md.Title)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
