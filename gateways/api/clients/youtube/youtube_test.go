package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerOK = `{
  "playabilityStatus": {"status": "OK"},
  "videoDetails": {"videoId": "abc123", "title": "A video", "author": "Someone"},
  "microformat": {"playerMicroformatRenderer": {"category": "Education"}},
  "captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
    {"baseUrl": "/api/timedtext?v=abc123&lang=de&fmt=srv3", "languageCode": "de"},
    {"baseUrl": "/api/timedtext?v=abc123&lang=en&kind=asr", "languageCode": "en", "kind": "asr"},
    {"baseUrl": "/api/timedtext?v=abc123&lang=en", "languageCode": "en"}
  ]}}
}`

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="1.2">Hello &amp;amp; welcome</text>
<text start="1.7" dur="2">it&amp;#39;s a test</text>
</transcript>`

const searchJSON = `{"contents": {"twoColumnSearchResultsRenderer": {"primaryContents": {"sectionListRenderer": {"contents": [
  {"itemSectionRenderer": {"contents": [
    {"channelRenderer": {
      "channelId": "UC1",
      "title": {"simpleText": "First"},
      "thumbnail": {"thumbnails": [{"url": "//yt3.example/a.jpg", "width": 88, "height": 88}]},
      "shortBylineText": {"runs": [{"text": "First"}]},
      "subscriberCountText": {"simpleText": "1.2M subscribers"},
      "videoCountText": {"runs": [{"text": "340"}, {"text": " videos"}]}
    }},
    {"videoRenderer": {"videoId": "ignored"}}
  ]}},
  {"continuationItemRenderer": {}}
]}}}}}`

const browseChannelJSON = `{"metadata": {"channelMetadataRenderer": {"title": "First", "externalId": "UC1"}}}`

const browseVideosJSON = `{"contents": {"twoColumnBrowseResultsRenderer": {"tabs": [
  {"tabRenderer": {"title": "Home", "selected": false}},
  {"tabRenderer": {"title": "Videos", "selected": true, "content": {"richGridRenderer": {"contents": [
    {"richItemRenderer": {"content": {"videoRenderer": {
      "videoId": "v1",
      "title": {"runs": [{"text": "Video one"}]},
      "descriptionSnippet": {"runs": [{"text": "About "}, {"text": "one"}]},
      "publishedTimeText": {"simpleText": "2 days ago"},
      "thumbnail": {"thumbnails": [{"url": "https://i.ytimg.com/1.jpg", "width": 168, "height": 94}, {"url": "https://i.ytimg.com/2.jpg", "width": 336, "height": 188}]}
    }}}},
    {"richItemRenderer": {"content": {"videoRenderer": {
      "videoId": "v2",
      "title": {"runs": [{"text": "Video two"}]},
      "publishedTimeText": {"simpleText": "1 week ago"},
      "thumbnail": {"thumbnails": []}
    }}}},
    {"continuationItemRenderer": {"trigger": "CONTINUATION_TRIGGER_ON_ITEM_SHOWN"}}
  ]}}}}
]}}}`

type upstream struct {
	player       string
	playerStatus int
	lastPlayer   map[string]any
	lastSearch   map[string]any
	lastBrowse   []map[string]any
	lastCaption  string
}

func (u *upstream) server(t *testing.T) *httptest.Server {
	t.Helper()

	decode := func(r *http.Request) map[string]any {
		var m map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &m))
		return m
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		u.lastPlayer = decode(r)
		if u.playerStatus != 0 {
			w.WriteHeader(u.playerStatus)
			return
		}
		io.WriteString(w, u.player)
	})
	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		u.lastCaption = r.URL.RawQuery
		io.WriteString(w, timedTextXML)
	})
	mux.HandleFunc("POST /youtubei/v1/search", func(w http.ResponseWriter, r *http.Request) {
		u.lastSearch = decode(r)
		io.WriteString(w, searchJSON)
	})
	mux.HandleFunc("POST /youtubei/v1/browse", func(w http.ResponseWriter, r *http.Request) {
		payload := decode(r)
		u.lastBrowse = append(u.lastBrowse, payload)
		if payload["browseId"] == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if _, ok := payload["params"]; ok {
			io.WriteString(w, browseVideosJSON)
			return
		}
		io.WriteString(w, browseChannelJSON)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, u *upstream) *Client {
	srv := u.server(t)
	return New(Config{BaseURL: srv.URL, HL: "en", HTTPClient: srv.Client()})
}

func TestFetchTranscript(t *testing.T) {
	u := &upstream{player: playerOK}
	c := newTestClient(t, u)

	entries, err := c.FetchTranscript(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, TranscriptEntry{Text: "Hello & welcome", Start: 0.5, Duration: 1.2, Lang: "en"}, entries[0])
	assert.Equal(t, "it's a test", entries[1].Text)

	assert.Equal(t, "abc123", u.lastPlayer["videoId"])
	client := u.lastPlayer["context"].(map[string]any)["client"].(map[string]any)
	assert.Equal(t, "ANDROID", client["clientName"])

	// Manual English track wins over the auto-generated one.
	assert.NotContains(t, u.lastCaption, "kind=asr")
	assert.Contains(t, u.lastCaption, "lang=en")
}

func TestFetchTranscriptDisabled(t *testing.T) {
	u := &upstream{player: `{"playabilityStatus": {"status": "OK"}, "videoDetails": {"videoId": "abc123"}}`}
	c := newTestClient(t, u)

	_, err := c.FetchTranscript(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
}

func TestFetchTranscriptUnavailable(t *testing.T) {
	u := &upstream{player: `{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`}
	c := newTestClient(t, u)

	_, err := c.FetchTranscript(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrVideoUnavailable)
}

func TestGetBasicInfo(t *testing.T) {
	u := &upstream{player: playerOK}
	c := newTestClient(t, u)

	info, err := c.GetBasicInfo(context.Background(), "abc123")
	require.NoError(t, err)

	details := info["videoDetails"].(map[string]any)
	assert.Equal(t, "A video", details["title"])
	assert.Contains(t, info, "microformat")
}

func TestGetBasicInfoUpstreamError(t *testing.T) {
	u := &upstream{playerStatus: http.StatusInternalServerError}
	c := newTestClient(t, u)

	_, err := c.GetBasicInfo(context.Background(), "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVideoUnavailable)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSearchChannels(t *testing.T) {
	u := &upstream{}
	c := newTestClient(t, u)

	res, err := c.Search(context.Background(), "golang", SearchOptions{Type: "channel"})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)

	got := res.Results[0]
	assert.Equal(t, "Channel", got.Type)
	assert.Equal(t, "UC1", got.ID)
	assert.Equal(t, "First", got.ShortByline)
	assert.Equal(t, "1.2M subscribers", got.SubscriberCount)
	assert.Equal(t, "340 videos", got.VideoCount)
	require.Len(t, got.Thumbnails, 1)
	assert.Equal(t, "https://yt3.example/a.jpg", got.Thumbnails[0].URL)

	assert.Equal(t, "golang", u.lastSearch["query"])
	assert.Equal(t, searchParamsChannel, u.lastSearch["params"])
}

func TestSearchUnsupportedType(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:0"})

	_, err := c.Search(context.Background(), "golang", SearchOptions{Type: "movie"})
	assert.ErrorIs(t, err, ErrUnsupportedSearchType)
}

func TestChannelVideos(t *testing.T) {
	u := &upstream{}
	c := newTestClient(t, u)

	ch, err := c.GetChannel(context.Background(), "UC1")
	require.NoError(t, err)
	assert.Equal(t, "First", ch.Title)

	videos, err := ch.GetVideos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Videos", videos.CurrentTab.Title)

	items := videos.CurrentTab.Content.Contents
	require.Len(t, items, 3)
	require.NotNil(t, items[0].Content)
	assert.Equal(t, "v1", items[0].Content.ID)
	require.NotNil(t, items[0].Content.DescriptionSnippet)
	assert.Equal(t, "About one", *items[0].Content.DescriptionSnippet)
	assert.Len(t, items[0].Content.Thumbnails, 2)
	assert.Nil(t, items[1].Content.DescriptionSnippet)
	assert.Nil(t, items[2].Content)

	require.Len(t, u.lastBrowse, 2)
	assert.Equal(t, browseParamsVideos, u.lastBrowse[1]["params"])
}

func TestGetChannelNotFound(t *testing.T) {
	u := &upstream{}
	c := newTestClient(t, u)

	_, err := c.GetChannel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}
