package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheForever = 365 * 86400
)

// CacheRouter sets cache-control before the handler runs. Handlers of
// CacheCustom routes set their own header.
type CacheRouter struct {
	CacheTime int  // seconds, defaults to CacheNoCache
	Public    bool // shared caches may keep the response too
}

func (cr *CacheRouter) header() string {
	if cr.CacheTime == CacheNoCache {
		return "no-cache"
	}
	scope := "private"
	if cr.Public {
		scope = "public"
	}
	value := scope + ", max-age=" + strconv.Itoa(cr.CacheTime)
	if cr.CacheTime >= CacheForever {
		value += ", immutable"
	}
	return value
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			c.Header("cache-control", cr.header())
		}
		c.Next()
	}
}
