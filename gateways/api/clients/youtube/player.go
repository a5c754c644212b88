package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails map[string]any `json:"videoDetails"`
	Microformat  map[string]any `json:"microformat"`
	Captions     *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

func (p *playerResponse) tracks() []captionTrack {
	if p.Captions == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	var resp playerResponse
	err := c.post(ctx, "player", map[string]any{
		"videoId":        videoID,
		"racyCheckOk":    true,
		"contentCheckOk": true,
	}, true, &resp)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
	}
	if err != nil {
		return nil, err
	}

	if status := resp.PlayabilityStatus.Status; status != "" && status != "OK" {
		c.log.Warn("video is not playable",
			slog.String("video_id", videoID),
			slog.String("status", status),
			slog.String("reason", resp.PlayabilityStatus.Reason))
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, resp.PlayabilityStatus.Reason)
	}
	return &resp, nil
}

// GetBasicInfo returns the video's metadata as delivered by the player
// endpoint. The shape is not fixed by this client.
func (c *Client) GetBasicInfo(ctx context.Context, videoID string) (map[string]any, error) {
	c.log.Info("GetBasicInfo called", slog.String("video_id", videoID))

	resp, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if resp.VideoDetails == nil {
		return nil, fmt.Errorf("%w: no video details", ErrVideoUnavailable)
	}

	info := map[string]any{
		"videoDetails": resp.VideoDetails,
	}
	if resp.Microformat != nil {
		info["microformat"] = resp.Microformat
	}
	return info, nil
}
