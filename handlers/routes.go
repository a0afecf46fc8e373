package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"palette/auth"
	"palette/cache"
	"palette/metrics"
	"palette/services"
	"palette/storage"
	"palette/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Config struct {
	DB          *gorm.DB
	Storage     storage.StorageAPI
	Cache       cache.Cache
	PageSize    int
	TokenSecret string
	TokenExpiry time.Duration
}

// Register wires the services to their routes and returns the auth router it used
func Register(engine *gin.Engine, cfg Config) *auth.Router {
	if cfg.Cache == nil {
		cfg.Cache = cache.Nop{}
	}
	memberService := services.NewMemberService(cfg.DB)
	groupService := services.NewGroupService(cfg.DB)
	postGroupService := services.NewPostGroupService(cfg.DB)
	uploader := storage.NewUploader(cfg.Storage)
	postService := services.NewPostService(cfg.DB, uploader, cfg.PageSize)
	feed := NewFeed(groupService)

	router := &auth.Router{Base: engine, Members: memberService, Secret: cfg.TokenSecret}

	posts := &PostHandler{
		posts:      postService,
		postGroups: postGroupService,
		uploader:   uploader,
		cache:      cfg.Cache,
		feed:       feed,
	}
	postGroups := &PostGroupHandler{postGroups: postGroupService, posts: postService, uploader: uploader, forget: posts.forget}
	groups := &GroupHandler{groups: groupService, uploader: uploader, forget: posts.forget}
	budgets := &BudgetHandler{budgets: services.NewBudgetService(cfg.DB)}
	members := &MemberHandler{members: memberService, tokenSecret: cfg.TokenSecret, tokenExpiry: cfg.TokenExpiry}

	// Posts
	engine.GET("/post", (&utils.CacheRouter{CacheTime: utils.CacheCustom}).Handler(), posts.GetPosts)
	engine.GET("/post/:id", posts.GetSinglePost)
	router.POST("/postgroup/:postGroupId/post", posts.CreatePost)
	router.PUT("/postgroup/:postGroupId/post/:id", posts.UpdatePost)
	router.DELETE("/postgroup/:postGroupId/post/:id", posts.DeletePost)
	router.POST("/post/:id/like", posts.Like)
	router.DELETE("/post/:id/like", posts.Unlike)
	// Post groups
	router.POST("/group/:groupId/postgroup", postGroups.Create)
	router.GET("/group/:groupId/postgroup", postGroups.List)
	router.GET("/postgroup/:postGroupId", postGroups.Get)
	router.DELETE("/postgroup/:postGroupId", postGroups.Delete)
	// Groups
	router.GET("/group", groups.List)
	router.POST("/group", groups.Create)
	router.PUT("/group/:groupId", groups.Update)
	router.DELETE("/group/:groupId", groups.Delete)
	router.GET("/group/:groupId/member", groups.Members)
	router.POST("/group/:groupId/member", groups.AddMember)
	// Budget
	router.POST("/group/:groupId/budget", budgets.Create)
	router.GET("/group/:groupId/budget", budgets.Get)
	router.PUT("/group/:groupId/budget", budgets.Update)
	router.DELETE("/group/:groupId/budget", budgets.Delete)
	router.POST("/group/:groupId/budget/expense", budgets.AddExpense)
	router.DELETE("/group/:groupId/budget/expense/:expenseId", budgets.RemoveExpense)
	// Members
	engine.POST("/member/signup", members.SignUp)
	engine.POST("/member/login", members.Login)
	engine.POST("/member/logout", members.Logout)
	router.GET("/member/me", members.Me)
	router.POST("/member/totp", members.EnableTotp)
	// Live feed, files, ops
	router.GET("/ws", feed.WebSocket)
	engine.GET(storage.FilesRoute+"/*path", filesCache(cfg.Storage), serveFile(cfg.Storage))
	engine.GET("/metrics", metrics.Handler())
	engine.GET("/healthz", healthz(cfg.DB))

	return router
}

// filesCache lets disk objects be cached for good, their names never change.
// S3 answers with presigned redirects that expire.
func filesCache(s storage.StorageAPI) gin.HandlerFunc {
	if s.GetBucket().StorageType == storage.StorageTypeFile {
		return (&utils.CacheRouter{CacheTime: utils.CacheForever, Public: true}).Handler()
	}
	return (&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()
}

func serveFile(s storage.StorageAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Param("path"), "/")
		if path == "" {
			c.Status(http.StatusNotFound)
			return
		}
		s.Serve(path, c.Request, c.Writer)
	}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
