package youtube

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

var (
	ErrVideoUnavailable      = errors.New("video unavailable")
	ErrTranscriptsDisabled   = errors.New("transcripts are disabled for this video")
	ErrChannelNotFound       = errors.New("channel not found")
	ErrUnsupportedSearchType = errors.New("unsupported search type")

	errNotFound = errors.New("not found")
)

const DefaultBaseURL = "https://www.youtube.com"

type Config struct {
	BaseURL    string
	HL         string
	GL         string
	HTTPClient *http.Client
	Log        *slog.Logger
}

// Client talks to the Innertube API used by the YouTube web and mobile apps.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	hl         string
	gl         string
	httpClient *http.Client
	log        *slog.Logger
}

type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Lang     string  `json:"lang,omitempty"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type SearchOptions struct {
	Type string
}

type SearchResult struct {
	Results []ChannelSearchEntry
}

type ChannelSearchEntry struct {
	Type            string
	ID              string
	Title           string
	ShortByline     string
	Thumbnails      []Thumbnail
	SubscriberCount string
	VideoCount      string
}

type ChannelVideos struct {
	CurrentTab Tab
}

type Tab struct {
	Title   string
	Content TabContent
}

type TabContent struct {
	Contents []ChannelItem
}

// ChannelItem is one grid cell of a channel tab. Content is nil for cells
// that do not hold a video, such as continuation markers.
type ChannelItem struct {
	Content *VideoItem
}

type VideoItem struct {
	ID                 string
	Title              string
	DescriptionSnippet *string
	Published          string
	Thumbnails         []Thumbnail
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HL == "" {
		cfg.HL = "en"
	}
	if cfg.GL == "" {
		cfg.GL = "US"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	cfg.Log.Debug("creating youtube client",
		slog.String("base_url", cfg.BaseURL),
		slog.String("hl", cfg.HL),
		slog.String("gl", cfg.GL))

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		hl:         cfg.HL,
		gl:         cfg.GL,
		httpClient: cfg.HTTPClient,
		log:        cfg.Log,
	}
}
