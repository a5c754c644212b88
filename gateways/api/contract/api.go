package contract

import (
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
)

// Operation names.
const (
	TranscribeVideo  = "transcribeVideo"
	GetTranscript    = "getTranscript"
	GetVideoInfo     = "getVideoInfo"
	FindChannel      = "findChannel"
	GetChannelVideos = "getChannelVideos"
)

// LatestVersion serves every operation.
const LatestVersion = 4

func videoURLBody() *jsonschema.Schema {
	return Object(Required("videoUrl", String()))
}

func errorBody() *jsonschema.Schema {
	return Object(Required("error", String()))
}

// API returns the full operation table. Since records the API version that
// introduced each operation.
func API() *Registry {
	return MustNew(
		Endpoint{
			Name:    TranscribeVideo,
			Method:  http.MethodPost,
			Path:    "/transcribe",
			Summary: "Transcribe YouTube video by videoUrl",
			Since:   1,
			Body:    videoURLBody(),
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK: Object(
					Required("language", String()),
					Required("url", String()),
					Required("content", String()),
				),
				http.StatusBadRequest: errorBody(),
				http.StatusNotFound:   errorBody(),
			},
		},
		Endpoint{
			Name:    GetTranscript,
			Method:  http.MethodPost,
			Path:    "/get-transcript",
			Summary: "Get youtube transcriptions.",
			Since:   2,
			Body:    videoURLBody(),
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK: Object(
					Required("language", String()),
					Required("url", String()),
					Optional("content", Any()),
				),
				http.StatusBadRequest: errorBody(),
				http.StatusNotFound:   errorBody(),
			},
		},
		Endpoint{
			Name:    GetVideoInfo,
			Method:  http.MethodPost,
			Path:    "/get-video-info",
			Summary: "Get video info like, description, thumbnail, title hastag etc.",
			Since:   3,
			Body:    videoURLBody(),
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK:         Object(Optional("data", Any())),
				http.StatusBadRequest: errorBody(),
				http.StatusNotFound:   errorBody(),
			},
		},
		Endpoint{
			Name:    FindChannel,
			Method:  http.MethodPost,
			Path:    "/channels",
			Summary: "Search channels",
			Since:   4,
			Body:    Object(Required("query", String())),
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK:         Any(),
				http.StatusBadRequest: errorBody(),
				http.StatusNotFound:   nil,
			},
		},
		Endpoint{
			Name:    GetChannelVideos,
			Method:  http.MethodPost,
			Path:    "/channel/videos",
			Summary: "Get channel videos.",
			Since:   4,
			Body:    Object(Required("id", String())),
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK:         Any(),
				http.StatusBadRequest: errorBody(),
				http.StatusNotFound:   nil,
			},
		},
	)
}
