package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/interfaces/http/dto"
	"ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

// respondError 输出错误响应，服务端错误记录日志
func respondError(ctx context.Context, c *gin.Context, msg string, err error) {
	if appErr := errors.AsAppError(err); appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(ctx, msg, err)
	}
	dto.AppError(c, err)
}

func deleted(c *gin.Context) {
	dto.Success(c, dto.DeletedResponse{Success: true})
}
