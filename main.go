package main

import (
	"strings"
	"time"

	"palette/cache"
	"palette/config"
	"palette/db"
	"palette/handlers"
	"palette/logging"
	"palette/metrics"
	"palette/models"
	"palette/processing"
	"palette/storage"
	"palette/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	logging.Setup(config.LOG_LEVEL, config.LOG_FILE)
	db.Init(config.GetDSN())
	models.Init()
	storage.Init()

	postCache, err := cache.New(config.REDIS_URL, time.Duration(config.CACHE_TTL_SECONDS)*time.Second)
	if err != nil {
		log.Fatalf("Cache: %v", err)
	}
	processor := processing.New(db.Instance, storage.GetDefaultStorage(), postCache, uint(config.THUMB_SIZE))
	if err = processor.Start(config.PROCESSING_SCHEDULE); err != nil {
		log.Fatalf("Processing: %v", err)
	}
	defer processor.Stop()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.ContextWithFallback = true
	router.MaxMultipartMemory = int64(config.MAX_UPLOAD_MB) << 20
	_ = router.SetTrustedProxies([]string{})
	router.Use(gin.Recovery(), logging.Middleware(), metrics.Middleware())
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "If-None-Match"},
		ExposeHeaders:    []string{"Content-Length", "ETag"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{storage.FilesRoute, "/ws"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that

	handlers.Register(router, handlers.Config{
		DB:          db.Instance,
		Storage:     storage.GetDefaultStorage(),
		Cache:       postCache,
		PageSize:    config.PAGE_SIZE,
		TokenSecret: config.JWT_SECRET,
		TokenExpiry: time.Duration(config.JWT_EXPIRY_HOURS) * time.Hour,
	})

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Errorf("Server stopped: %v", err)
}
