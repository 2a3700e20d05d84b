package handler

import (
	"Spotlight/internal/api/dto"
	"Spotlight/internal/pkg/consts"
	"Spotlight/internal/pkg/response"
	"Spotlight/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoSvc   service.VideoService
	supportSvc service.SupportService
}

func NewVideoHandler(videoSvc service.VideoService, supportSvc service.SupportService) *VideoHandler {
	return &VideoHandler{
		videoSvc:   videoSvc,
		supportSvc: supportSvc,
	}
}

func (s *VideoHandler) Trending(c *gin.Context) {
	var query dto.TrendingQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.videoSvc.Trending(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", consts.ListCacheControl)
	response.Success(c, list)
}

func (s *VideoHandler) Search(c *gin.Context) {
	var query dto.SearchQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.videoSvc.Search(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", consts.ListCacheControl)
	response.Success(c, list)
}

func (s *VideoHandler) Hero(c *gin.Context) {
	var query dto.HeroQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.videoSvc.Hero(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", consts.ListCacheControl)
	response.Success(c, list)
}

func (s *VideoHandler) Ranking(c *gin.Context) {
	var query dto.RankingQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.videoSvc.SupportRanking(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", consts.ListCacheControl)
	response.Success(c, list)
}

func (s *VideoHandler) GetVideo(c *gin.Context) {
	video, err := s.videoSvc.GetVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video)
}

func (s *VideoHandler) Support(c *gin.Context) {
	var req dto.SupportDTO
	// 空 body 等同于 amount 为空
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}

	res, err := s.supportSvc.Support(c.Request.Context(), c.Param("id"), c.ClientIP(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
