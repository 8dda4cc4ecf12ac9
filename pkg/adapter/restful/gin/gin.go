package gin

import (
	"log/slog"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs every request with logger.
func Logger(logger *slog.Logger) HandlerFunc {
	return ginslog.New(logger)
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
