package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tinyblog/config"
	"tinyblog/controllers"
	"tinyblog/middleware"
	"tinyblog/utils"
)

// SessionCookieName identifies the session cookie issued to browsers.
const SessionCookieName = "blog_session"

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, cache *utils.Cache) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger(utils.Logger))
	r.Use(utils.GinRecovery(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// An unset origin list means allow-all; cors.New rejects an empty one
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(SessionCookieName, store))

	r.LoadHTMLGlob(cfg.TemplateGlob)

	resolver := middleware.NewDBUserResolver(db, cache)

	authController := controllers.NewAuthController(db, cache)
	postController := controllers.NewPostController(db)
	adminController := controllers.NewAdminController(db, cache)

	r.GET("/", authController.Home)
	r.GET("/favicon.ico", authController.Favicon)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)

	authed := r.Group("", middleware.LoginRequired(resolver))
	authed.GET("/logout", authController.Logout)
	authed.GET("/dashboard", postController.Dashboard)
	authed.POST("/dashboard", postController.CreatePost)
	authed.POST("/delete_posts", postController.DeletePosts)
	// The panel itself only requires a session; /reset_password is the one
	// route that additionally checks the admin flag.
	authed.GET("/admin", adminController.Panel)
	authed.POST("/admin", adminController.Action)
	authed.POST("/reset_password", adminController.ResetPassword)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusNotFound, "page not found")
	})

	return r
}
