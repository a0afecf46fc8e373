package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

// GeneralResponse wraps list results
type GeneralResponse struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

const (
	etagHeader = "ETag"
)

var (
	OKResponse           = Response{}
	AccessDeniedResponse = Response{"access denied"}
)

// isNotModified sets the ETag of the current version and answers 304 when the client has it
func isNotModified(c *gin.Context, version string) bool {
	etag := strconv.Quote(version)
	c.Header("cache-control", "private, max-age=1")
	c.Header(etagHeader, etag)
	if c.Request.Header.Get("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// paramID reads a positive numeric path parameter, answering 400 otherwise
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{"invalid " + name})
		return 0, false
	}
	return id, true
}
