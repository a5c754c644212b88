package handler

import (
	"context"

	"github.com/xilidan/echotube/gateways/api/clients/youtube"
)

// Service is the video-data backend the handlers call.
type Service interface {
	FetchTranscript(ctx context.Context, videoID string) ([]youtube.TranscriptEntry, error)
	GetBasicInfo(ctx context.Context, videoID string) (map[string]any, error)
	Search(ctx context.Context, query string, opts youtube.SearchOptions) (*youtube.SearchResult, error)
	GetChannel(ctx context.Context, id string) (Channel, error)
}

type Channel interface {
	GetVideos(ctx context.Context) (*youtube.ChannelVideos, error)
}

// ServiceFactory builds the Service used by a single request.
type ServiceFactory func() Service

type youtubeService struct {
	*youtube.Client
}

func (s youtubeService) GetChannel(ctx context.Context, id string) (Channel, error) {
	ch, err := s.Client.GetChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// YouTube returns a factory that creates a fresh client per request. The
// clients share cfg.HTTPClient and therefore its connection pool.
func YouTube(cfg youtube.Config) ServiceFactory {
	return func() Service {
		return youtubeService{youtube.New(cfg)}
	}
}
