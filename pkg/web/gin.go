package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BindFailed answers a request whose uri, query or body failed binding.
func BindFailed(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	gctx.JSON(http.StatusBadRequest, BindError(err))
}

// Fail answers a request with the status err maps to.
func Fail(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	status, res := Status(err)
	if status == http.StatusInternalServerError {
		l.Error().Err(err).Send()
	} else {
		l.Info().Err(err).Send()
	}

	gctx.JSON(status, res)
}
