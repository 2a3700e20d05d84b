package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const bodyLogLimit = 1000

// HTTPTransport 记录外部接口调用，url 中的 key 参数会被打码
type HTTPTransport struct {
	Transport http.RoundTripper
	Name      string
}

func NewHTTPTransport(name string, next http.RoundTripper) *HTTPTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &HTTPTransport{Transport: next, Name: name}
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("upstream", t.Name),
		log.String("method", req.Method),
		log.String("url", redactURL(req)),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "UPSTREAM_HTTP_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}
	fields = append(fields, log.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		var resBody []byte
		if resp.Body != nil {
			resBody, _ = io.ReadAll(resp.Body)
			resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
		}
		resStr := string(resBody)
		if len(resStr) > bodyLogLimit {
			resStr = resStr[:bodyLogLimit] + "...[truncated]"
		}
		log.WarnContext(req.Context(), "UPSTREAM_HTTP_FAIL", append(fields, log.String("res_body", resStr))...)
	} else if elapsed > 2*time.Second {
		log.WarnContext(req.Context(), "UPSTREAM_HTTP_SLOW", fields...)
	} else {
		log.InfoContext(req.Context(), "UPSTREAM_HTTP", fields...)
	}

	return resp, nil
}

func redactURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "[PROTECTED]")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
