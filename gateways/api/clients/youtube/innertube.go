package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	webClientName      = "WEB"
	webClientVersion   = "2.20250222.10.00"
	androidClientName  = "ANDROID"
	androidVersion     = "20.10.38"
	androidUserAgent   = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxResponseSize    = 8 * 1024 * 1024
	errorSnippetLength = 256
)

// Search and browse filters, as produced by the web client.
const (
	searchParamsChannel = "EgIQAg=="
	browseParamsVideos  = "EgZ2aWRlb3PyBgQKAjoA"
)

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type text struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t text) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type thumbnailList struct {
	Thumbnails []Thumbnail `json:"thumbnails"`
}

// normalize fixes protocol-relative thumbnail URLs.
func (l thumbnailList) normalize() []Thumbnail {
	out := make([]Thumbnail, 0, len(l.Thumbnails))
	for _, t := range l.Thumbnails {
		if strings.HasPrefix(t.URL, "//") {
			t.URL = "https:" + t.URL
		}
		out = append(out, t)
	}
	return out
}

func (c *Client) webContext() innertubeContext {
	return innertubeContext{Client: innertubeClient{
		ClientName:    webClientName,
		ClientVersion: webClientVersion,
		Hl:            c.hl,
		Gl:            c.gl,
	}}
}

func (c *Client) androidContext() innertubeContext {
	return innertubeContext{Client: innertubeClient{
		ClientName:        androidClientName,
		ClientVersion:     androidVersion,
		AndroidSdkVersion: 30,
		Hl:                c.hl,
		Gl:                c.gl,
	}}
}

// post sends payload to an Innertube endpoint and decodes the answer into out.
// A 404 is reported as errNotFound so callers can map it onto their own sentinel.
func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any, android bool, out any) error {
	if android {
		payload["context"] = c.androidContext()
	} else {
		payload["context"] = c.webContext()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
	}

	url := c.baseURL + "/youtubei/v1/" + endpoint + "?prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if android {
		req.Header.Set("User-Agent", androidUserAgent)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", androidVersion)
	} else {
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("X-Youtube-Client-Name", "1")
		req.Header.Set("X-Youtube-Client-Version", webClientVersion)
		req.Header.Set("Origin", c.baseURL)
	}

	c.log.Debug("sending innertube request", slog.String("endpoint", endpoint))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("innertube %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	c.log.Debug("innertube response received",
		slog.String("endpoint", endpoint),
		slog.Int("status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLength))
		return fmt.Errorf("innertube %s: HTTP %d: %s", endpoint, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// get fetches a plain URL and returns its body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", c.hl)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLength))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}
