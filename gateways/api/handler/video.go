package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xilidan/echotube/gateways/api/clients/youtube"
	"github.com/xilidan/echotube/pkg/logger"
	"github.com/xilidan/echotube/pkg/videoid"
)

type transcriptionResponse struct {
	Language string `json:"language"`
	URL      string `json:"url"`
	Content  any    `json:"content"`
}

type videoInfoResponse struct {
	Data any `json:"data"`
}

// videoID extracts the identifier from the videoUrl field. A non-nil
// response means the request must be answered with it right away.
func videoID(ctx context.Context, input map[string]any) (string, string, *response) {
	videoURL := stringField(input, "videoUrl")
	id, ok := videoid.Extract(videoURL)
	if !ok {
		logger.Warn(ctx, "invalid video url", slog.String("video_url", videoURL))
		resp := errorResponse(http.StatusBadRequest, fmt.Errorf("invalid YouTube url: %s", videoURL))
		return videoURL, "", &resp
	}
	logger.Debug(ctx, "video id extracted", slog.String("video_id", id))
	return videoURL, id, nil
}

func (h *Handler) fetchTranscript(ctx context.Context, input map[string]any) (string, []youtube.TranscriptEntry, *response, error) {
	videoURL, id, early := videoID(ctx, input)
	if early != nil {
		return videoURL, nil, early, nil
	}

	logger.Info(ctx, "fetching transcript", slog.String("video_id", id))
	entries, err := h.newService().FetchTranscript(ctx, id)
	if err != nil {
		return videoURL, nil, nil, err
	}
	logger.Info(ctx, "transcript fetched",
		slog.String("video_id", id),
		slog.Int("entries", len(entries)))
	return videoURL, entries, nil, nil
}

func (h *Handler) transcribeVideo(ctx context.Context, input map[string]any) (response, error) {
	videoURL, entries, early, err := h.fetchTranscript(ctx, input)
	if err != nil {
		return response{}, err
	}
	if early != nil {
		return *early, nil
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}
	return response{Status: http.StatusOK, Body: transcriptionResponse{
		Language: h.language,
		URL:      videoURL,
		Content:  strings.Join(lines, "\n"),
	}}, nil
}

func (h *Handler) getTranscript(ctx context.Context, input map[string]any) (response, error) {
	videoURL, entries, early, err := h.fetchTranscript(ctx, input)
	if err != nil {
		return response{}, err
	}
	if early != nil {
		return *early, nil
	}

	return response{Status: http.StatusOK, Body: transcriptionResponse{
		Language: h.language,
		URL:      videoURL,
		Content:  entries,
	}}, nil
}

func (h *Handler) getVideoInfo(ctx context.Context, input map[string]any) (response, error) {
	_, id, early := videoID(ctx, input)
	if early != nil {
		return *early, nil
	}

	logger.Info(ctx, "fetching video info", slog.String("video_id", id))
	info, err := h.newService().GetBasicInfo(ctx, id)
	if err != nil {
		return response{}, err
	}
	return response{Status: http.StatusOK, Body: videoInfoResponse{Data: info}}, nil
}
