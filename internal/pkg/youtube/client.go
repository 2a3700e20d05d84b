package youtube

import (
	"Spotlight/internal/api/config"
	"Spotlight/internal/pkg/logger"
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const maxBatchSize = 50

// Client YouTube Data API v3 videos.list 的最小封装
type Client struct {
	http      *resty.Client
	apiKey    string
	batchSize int
}

func NewClient(cfg config.YouTubeConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(cfg.RetryMax).
		SetRetryWaitTime(500 * time.Millisecond).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json").
		SetTransport(logger.NewHTTPTransport("youtube", nil))

	batchSize := cfg.BatchSize
	if batchSize <= 0 || batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}

	return &Client{
		http:      httpClient,
		apiKey:    cfg.ApiKey,
		batchSize: batchSize,
	}
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Snippet struct {
	PublishedAt  string               `json:"publishedAt"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	ChannelTitle string               `json:"channelTitle"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails"`
}

type ContentDetails struct {
	Duration string `json:"duration"`
}

// Statistics 计数在 API 中是字符串，点赞数可能被隐藏
type Statistics struct {
	ViewCount string `json:"viewCount"`
	LikeCount string `json:"likeCount"`
}

// Video videos.list 返回的原始条目
type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
	Statistics     Statistics     `json:"statistics"`
}

type videoListResponse struct {
	Items []*Video `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListVideos 按 batchSize 分批请求；不存在的 id 不会出现在结果中
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]*Video, error) {
	videos := make([]*Video, 0, len(ids))
	for start := 0; start < len(ids); start += c.batchSize {
		end := start + c.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := c.listBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		videos = append(videos, batch...)
	}
	return videos, nil
}

func (c *Client) listBatch(ctx context.Context, ids []string) ([]*Video, error) {
	var result videoListResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,contentDetails,statistics",
			"id":   strings.Join(ids, ","),
			"key":  c.apiKey,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Get("/videos")
	if err != nil {
		return nil, errors.Wrap(err, "youtube videos.list")
	}
	if resp.IsError() {
		return nil, errors.Errorf("youtube videos.list: status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	return result.Items, nil
}
