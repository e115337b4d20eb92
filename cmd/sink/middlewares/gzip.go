package middlewares

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type gzipReadCloser struct {
	gz  *gzip.Reader
	raw io.Closer
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipReadCloser) Close() error {
	if err := g.gz.Close(); err != nil {
		return err
	}
	if g.raw != nil {
		return g.raw.Close()
	}
	return nil
}

// GunzipRequest transparently decompresses request bodies marked with
// Content-Encoding: gzip.
func GunzipRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if enc := strings.ToLower(c.GetHeader("Content-Encoding")); strings.Contains(enc, "gzip") {
			gr, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			c.Request.Body = &gzipReadCloser{gz: gr, raw: c.Request.Body}
			c.Request.Header.Del("Content-Length")
		}
		c.Next()
	}
}
