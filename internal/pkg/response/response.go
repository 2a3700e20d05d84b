package response

import (
	"Spotlight/internal/api/dto"
	"Spotlight/internal/service"
	stdjson "encoding/json"
	"errors"
	log "log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}
	// query 里的数字解析失败，如 page=abc
	var numError *strconv.NumError
	if errors.As(err, &numError) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	// gin 默认用 encoding/json 解析请求体，go_json 构建标签下换成 goccy
	var unmarshalTypeError *json.UnmarshalTypeError
	var stdTypeError *stdjson.UnmarshalTypeError
	var syntaxError *stdjson.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &stdTypeError) || errors.As(err, &syntaxError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	code, sentinel, ok := service.CodeOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	if code >= InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	// 只返回哨兵错误的文案，不暴露底层细节
	Fail(c, code, sentinel.Error())
}
