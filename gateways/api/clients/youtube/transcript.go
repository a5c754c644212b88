package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
)

type timedText struct {
	Lines []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Text     string  `xml:",chardata"`
	} `xml:"text"`
}

// pickTrack prefers a manual track in the client language, then an
// auto-generated one, then any track.
func (c *Client) pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if sameLanguage(t.LanguageCode, c.hl) && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if sameLanguage(t.LanguageCode, c.hl) {
			return t
		}
	}
	return tracks[0]
}

func sameLanguage(code, hl string) bool {
	code, hl = strings.ToLower(code), strings.ToLower(hl)
	return code == hl || strings.HasPrefix(code, hl+"-")
}

// timedTextURL resolves a caption track URL against the client origin and
// drops any format override so the classic <text start dur> XML comes back.
func (c *Client) timedTextURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid caption url: %w", err)
	}
	if !u.IsAbs() {
		base, err := url.Parse(c.baseURL)
		if err != nil {
			return "", fmt.Errorf("invalid base url: %w", err)
		}
		u = base.ResolveReference(u)
	}
	q := u.Query()
	q.Del("fmt")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parseTimedText(data []byte, lang string) ([]TranscriptEntry, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext: %w", err)
	}

	entries := make([]TranscriptEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// Captions arrive HTML-escaped inside the XML payload.
		entries = append(entries, TranscriptEntry{
			Text:     html.UnescapeString(line.Text),
			Start:    line.Start,
			Duration: line.Duration,
			Lang:     lang,
		})
	}
	return entries, nil
}

// FetchTranscript returns the caption entries of a video in delivery order.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) ([]TranscriptEntry, error) {
	c.log.Info("FetchTranscript called", slog.String("video_id", videoID))

	resp, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := resp.tracks()
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTranscriptsDisabled, videoID)
	}
	track := c.pickTrack(tracks)
	c.log.Debug("caption track selected",
		slog.String("video_id", videoID),
		slog.String("language", track.LanguageCode),
		slog.String("kind", track.Kind))

	ttURL, err := c.timedTextURL(track.BaseURL)
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, ttURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timedtext: %w", err)
	}

	entries, err := parseTimedText(data, track.LanguageCode)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty caption track", ErrTranscriptsDisabled)
	}
	c.log.Info("transcript fetched",
		slog.String("video_id", videoID),
		slog.Int("entries", len(entries)))
	return entries, nil
}
