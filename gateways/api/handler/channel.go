package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/xilidan/echotube/gateways/api/clients/youtube"
	"github.com/xilidan/echotube/pkg/logger"
)

type channelResult struct {
	Type            string              `json:"type"`
	ID              string              `json:"id"`
	Text            string              `json:"text"`
	Thumbnails      []youtube.Thumbnail `json:"thumbnails"`
	SubscriberCount string              `json:"subscriber_count"`
	VideoCount      string              `json:"video_count"`
}

type channelVideo struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	DescriptionSnippet string              `json:"description_snippet"`
	Published          string              `json:"published"`
	Thumbnails         []youtube.Thumbnail `json:"thumbnails"`
}

func (h *Handler) findChannel(ctx context.Context, input map[string]any) (response, error) {
	query := stringField(input, "query")

	logger.Info(ctx, "searching channels", slog.String("query", query))
	res, err := h.newService().Search(ctx, query, youtube.SearchOptions{Type: "channel"})
	if err != nil {
		return response{}, err
	}
	if res == nil || len(res.Results) == 0 {
		logger.Info(ctx, "no channels found", slog.String("query", query))
		return response{Status: http.StatusNotFound}, nil
	}

	out := make([]channelResult, 0, len(res.Results))
	for _, c := range res.Results {
		out = append(out, channelResult{
			Type:            c.Type,
			ID:              c.ID,
			Text:            c.ShortByline,
			Thumbnails:      nonNil(c.Thumbnails),
			SubscriberCount: c.SubscriberCount,
			VideoCount:      c.VideoCount,
		})
	}
	return response{Status: http.StatusOK, Body: out}, nil
}

func (h *Handler) getChannelVideos(ctx context.Context, input map[string]any) (response, error) {
	channelID := stringField(input, "id")

	logger.Info(ctx, "fetching channel videos", slog.String("channel_id", channelID))
	ch, err := h.newService().GetChannel(ctx, channelID)
	if err != nil {
		return response{}, err
	}
	videos, err := ch.GetVideos(ctx)
	if err != nil {
		return response{}, err
	}

	var items []youtube.ChannelItem
	if videos != nil {
		items = videos.CurrentTab.Content.Contents
	}
	if len(items) == 0 {
		logger.Info(ctx, "channel has no videos", slog.String("channel_id", channelID))
		return response{Status: http.StatusNotFound}, nil
	}

	out := make([]channelVideo, 0, len(items))
	for _, item := range items {
		v := item.Content
		if v == nil {
			continue
		}
		cv := channelVideo{
			ID:         v.ID,
			Title:      v.Title,
			Published:  v.Published,
			Thumbnails: nonNil(v.Thumbnails),
		}
		if len(cv.Thumbnails) > 1 {
			cv.Thumbnails = cv.Thumbnails[:1]
		}
		if v.DescriptionSnippet != nil {
			cv.DescriptionSnippet = *v.DescriptionSnippet
		}
		out = append(out, cv)
	}
	logger.Info(ctx, "channel videos mapped",
		slog.String("channel_id", channelID),
		slog.Int("items", len(items)),
		slog.Int("videos", len(out)))
	return response{Status: http.StatusOK, Body: out}, nil
}

func nonNil(t []youtube.Thumbnail) []youtube.Thumbnail {
	if t == nil {
		return []youtube.Thumbnail{}
	}
	return t
}
