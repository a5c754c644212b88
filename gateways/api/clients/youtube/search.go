package youtube

import (
	"context"
	"fmt"
	"log/slog"
)

type searchResponse struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []searchItem `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type searchItem struct {
	ChannelRenderer *channelRenderer `json:"channelRenderer"`
}

type channelRenderer struct {
	ChannelID           string        `json:"channelId"`
	Title               text          `json:"title"`
	Thumbnail           thumbnailList `json:"thumbnail"`
	ShortBylineText     text          `json:"shortBylineText"`
	SubscriberCountText text          `json:"subscriberCountText"`
	VideoCountText      text          `json:"videoCountText"`
}

func (r *channelRenderer) entry() ChannelSearchEntry {
	return ChannelSearchEntry{
		Type:            "Channel",
		ID:              r.ChannelID,
		Title:           r.Title.String(),
		ShortByline:     r.ShortBylineText.String(),
		Thumbnails:      r.Thumbnail.normalize(),
		SubscriberCount: r.SubscriberCountText.String(),
		VideoCount:      r.VideoCountText.String(),
	}
}

var searchParams = map[string]string{
	"channel": searchParamsChannel,
}

// Search runs a filtered search. Only the "channel" type is supported.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	c.log.Info("Search called",
		slog.String("query", query),
		slog.String("type", opts.Type))

	params, ok := searchParams[opts.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSearchType, opts.Type)
	}

	var resp searchResponse
	if err := c.post(ctx, "search", map[string]any{
		"query":  query,
		"params": params,
	}, false, &resp); err != nil {
		return nil, err
	}

	result := &SearchResult{}
	sections := resp.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	for _, section := range sections {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			if item.ChannelRenderer == nil {
				continue
			}
			result.Results = append(result.Results, item.ChannelRenderer.entry())
		}
	}

	c.log.Info("search completed",
		slog.String("query", query),
		slog.Int("results", len(result.Results)))
	return result, nil
}
