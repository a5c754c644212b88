package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Channel is a handle on a resolved channel.
type Channel struct {
	ID    string
	Title string

	client *Client
}

type browseResponse struct {
	Metadata *struct {
		ChannelMetadataRenderer *struct {
			Title      string `json:"title"`
			ExternalID string `json:"externalId"`
		} `json:"channelMetadataRenderer"`
	} `json:"metadata"`
	Contents struct {
		TwoColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer *struct {
					Title    string `json:"title"`
					Selected bool   `json:"selected"`
					Content  *struct {
						RichGridRenderer *struct {
							Contents []gridItem `json:"contents"`
						} `json:"richGridRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
}

type gridItem struct {
	RichItemRenderer *struct {
		Content struct {
			VideoRenderer *videoRenderer `json:"videoRenderer"`
		} `json:"content"`
	} `json:"richItemRenderer"`
}

type videoRenderer struct {
	VideoID            string        `json:"videoId"`
	Title              text          `json:"title"`
	DescriptionSnippet *text         `json:"descriptionSnippet"`
	PublishedTimeText  text          `json:"publishedTimeText"`
	Thumbnail          thumbnailList `json:"thumbnail"`
}

func (r *videoRenderer) item() *VideoItem {
	v := &VideoItem{
		ID:         r.VideoID,
		Title:      r.Title.String(),
		Published:  r.PublishedTimeText.String(),
		Thumbnails: r.Thumbnail.normalize(),
	}
	if r.DescriptionSnippet != nil {
		snippet := r.DescriptionSnippet.String()
		v.DescriptionSnippet = &snippet
	}
	return v
}

func (c *Client) browse(ctx context.Context, payload map[string]any) (*browseResponse, error) {
	var resp browseResponse
	err := c.post(ctx, "browse", payload, false, &resp)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrChannelNotFound, payload["browseId"])
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChannel resolves a channel id.
func (c *Client) GetChannel(ctx context.Context, id string) (*Channel, error) {
	c.log.Info("GetChannel called", slog.String("channel_id", id))

	resp, err := c.browse(ctx, map[string]any{"browseId": id})
	if err != nil {
		return nil, err
	}
	if resp.Metadata == nil || resp.Metadata.ChannelMetadataRenderer == nil {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, id)
	}

	meta := resp.Metadata.ChannelMetadataRenderer
	channelID := meta.ExternalID
	if channelID == "" {
		channelID = id
	}
	return &Channel{
		ID:     channelID,
		Title:  meta.Title,
		client: c,
	}, nil
}

// GetVideos loads the channel's videos tab. Contents keep the grid order,
// including cells that carry no video.
func (ch *Channel) GetVideos(ctx context.Context) (*ChannelVideos, error) {
	ch.client.log.Info("GetVideos called", slog.String("channel_id", ch.ID))

	resp, err := ch.client.browse(ctx, map[string]any{
		"browseId": ch.ID,
		"params":   browseParamsVideos,
	})
	if err != nil {
		return nil, err
	}

	videos := &ChannelVideos{}
	for _, tab := range resp.Contents.TwoColumnBrowseResultsRenderer.Tabs {
		tr := tab.TabRenderer
		if tr == nil || !tr.Selected {
			continue
		}
		videos.CurrentTab.Title = tr.Title
		if tr.Content == nil || tr.Content.RichGridRenderer == nil {
			break
		}
		for _, cell := range tr.Content.RichGridRenderer.Contents {
			var item ChannelItem
			if cell.RichItemRenderer != nil && cell.RichItemRenderer.Content.VideoRenderer != nil {
				item.Content = cell.RichItemRenderer.Content.VideoRenderer.item()
			}
			videos.CurrentTab.Content.Contents = append(videos.CurrentTab.Content.Contents, item)
		}
		break
	}

	ch.client.log.Info("channel videos loaded",
		slog.String("channel_id", ch.ID),
		slog.Int("items", len(videos.CurrentTab.Content.Contents)))
	return videos, nil
}
