package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ondrasimku/video-publish-service/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const watchURL = "https://www.youtube.com/watch?v=%s"

var ErrMissingCredentials = errors.New("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")

type Config struct {
	ClientID          string
	ClientSecret      string
	RefreshToken      string
	PrivacyStatus     string
	NotifySubscribers bool
	MadeForKids       bool
}

type ServiceFactory func(ctx context.Context) (*yt.Service, error)

// Publisher uploads videos through the YouTube Data API v3.
type Publisher struct {
	cfg        Config
	newService ServiceFactory
	location   *time.Location
	logger     *slog.Logger
}

type Option func(*Publisher)

// WithServiceFactory replaces OAuth-based service construction.
func WithServiceFactory(factory ServiceFactory) Option {
	return func(p *Publisher) {
		if factory != nil {
			p.newService = factory
		}
	}
}

// WithLocation sets the zone used for schedules that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(p *Publisher) {
		if loc != nil {
			p.location = loc
		}
	}
}

func NewPublisher(cfg Config, logger *slog.Logger, opts ...Option) *Publisher {
	if cfg.PrivacyStatus == "" {
		cfg.PrivacyStatus = "public"
	}
	p := &Publisher{
		cfg:      cfg,
		location: time.UTC,
		logger:   logger,
	}
	p.newService = p.oauthService
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, input domain.PublishInput) (domain.PublishResult, error) {
	video, err := p.buildVideo(input)
	if err != nil {
		return domain.PublishResult{}, err
	}

	svc, err := p.newService(ctx)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("youtube auth: %w", err)
	}

	f, err := os.Open(input.FilePath)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(input.FilePath); err == nil {
		contentType = mtype.String()
	}

	p.logger.Info("Uploading video to YouTube", "title", video.Snippet.Title, "contentType", contentType, "publishAt", video.Status.PublishAt)

	uploaded, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		NotifySubscribers(p.cfg.NotifySubscribers).
		Media(f, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("youtube upload: %w", err)
	}
	if uploaded == nil || uploaded.Id == "" {
		return domain.PublishResult{}, errors.New("youtube upload: response carried no video id")
	}

	return domain.PublishResult{
		VideoID: uploaded.Id,
		URL:     fmt.Sprintf(watchURL, uploaded.Id),
	}, nil
}

func (p *Publisher) buildVideo(input domain.PublishInput) (*yt.Video, error) {
	lang := languageCode(input.Language)

	snippet := &yt.VideoSnippet{
		Title:                input.Metadata.Title,
		Description:          withHashtags(input.Metadata.Description, input.Metadata.Hashtags),
		Tags:                 input.Metadata.Tags,
		CategoryId:           categoryID(input.Category),
		DefaultLanguage:      lang,
		DefaultAudioLanguage: lang,
	}

	status := &yt.VideoStatus{
		PrivacyStatus:           p.cfg.PrivacyStatus,
		SelfDeclaredMadeForKids: p.cfg.MadeForKids,
		ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
	}

	if input.Schedule != nil {
		publishAt, err := ParseSchedule(*input.Schedule, p.location)
		if err != nil {
			return nil, err
		}
		// scheduled videos must stay private until publishAt
		status.PrivacyStatus = "private"
		status.PublishAt = publishAt.UTC().Format(time.RFC3339)
	}

	return &yt.Video{Snippet: snippet, Status: status}, nil
}

func (p *Publisher) oauthService(ctx context.Context) (*yt.Service, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" || p.cfg.RefreshToken == "" {
		return nil, ErrMissingCredentials
	}

	conf := &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{yt.YoutubeUploadScope},
	}
	client := conf.Client(ctx, &oauth2.Token{RefreshToken: p.cfg.RefreshToken})

	return yt.NewService(ctx, option.WithHTTPClient(client))
}

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseSchedule accepts RFC 3339 timestamps and the zone-less forms produced
// by datetime-local inputs, which are read in loc.
func ParseSchedule(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid schedule %q: expected RFC3339 or YYYY-MM-DDTHH:MM", value)
}

func withHashtags(description string, hashtags []string) string {
	if len(hashtags) == 0 {
		return description
	}
	tagged := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		tagged = append(tagged, "#"+strings.TrimLeft(h, "#"))
	}
	return description + "\n\n" + strings.Join(tagged, " ")
}

// YouTube video category ids.
var categoryIDs = map[string]string{
	"tech":     "28",
	"vlog":     "22",
	"shorts":   "22",
	"gaming":   "20",
	"tutorial": "27",
}

func categoryID(category string) string {
	if id, ok := categoryIDs[strings.ToLower(strings.TrimSpace(category))]; ok {
		return id
	}
	return "22"
}

var languageCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"hindi":      "hi",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"arabic":     "ar",
	"russian":    "ru",
}

var bcp47 = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})?$`)

// languageCode maps a language name or BCP-47 code to the code YouTube
// expects. Unknown names map to "".
func languageCode(language string) string {
	language = strings.TrimSpace(language)
	if code, ok := languageCodes[strings.ToLower(language)]; ok {
		return code
	}
	if bcp47.MatchString(language) {
		return language
	}
	return ""
}
