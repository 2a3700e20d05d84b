package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrMissingParameter    = errors.New("缺少必要参数")
	ErrVideoNotFound       = errors.New("视频不存在")
	ErrSupportLimited      = errors.New("今天已经应援过了")
	ErrUpstreamUnavailable = errors.New("数据服务暂不可用")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrMissingParameter:    BadRequest,
	ErrVideoNotFound:       NotFound,
	ErrSupportLimited:      TooManyRequests,
	ErrUpstreamUnavailable: ServiceUnavailable,
	UnExpectedError:        InternalServerError,
}

// CodeOf 按 errors.Is 匹配 ErrorMap，未命中返回 false
func CodeOf(err error) (int, error, bool) {
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, sentinel, true
		}
	}
	return 0, nil, false
}

// upstream 存储层失败统一包装为 ErrUpstreamUnavailable，保留原始错误用于日志
func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
