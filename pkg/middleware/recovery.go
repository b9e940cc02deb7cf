package middleware

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/medilabo/pkg/apierror"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック発生時はログに出力し、500のエラーエンベロープを返す。
func Recovery(responder *apierror.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				responder.Internal(c, fmt.Errorf("panic: %v", r))
			}
		}()
		c.Next()
	}
}
