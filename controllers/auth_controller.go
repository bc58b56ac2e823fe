package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tinyblog/config"
	"tinyblog/middleware"
	"tinyblog/models"
	"tinyblog/utils"
)

// AuthController handles the landing page, registration, login and logout.
type AuthController struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, cache *utils.Cache) *AuthController {
	return &AuthController{db: db, cache: cache}
}

// Home renders the landing page with its login and register forms.
func (a *AuthController) Home(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": utils.TakeFlashes(ctx),
	})
}

// Favicon answers the browser's favicon probe with an empty response.
func (a *AuthController) Favicon(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Register handles local account registration with bcrypt hashing. Duplicate
// emails are rejected by a pre-check query rather than a constraint error.
func (a *AuthController) Register(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	email := strings.TrimSpace(ctx.PostForm("email"))
	password := ctx.PostForm("password")

	if username == "" || email == "" || password == "" {
		utils.Flash(ctx, "danger", "Please fill in all fields.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var count int64
	if err := a.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.Sugar.Errorf("register email lookup failed: %v", err)
		utils.Flash(ctx, "danger", "Registration failed. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	if count > 0 {
		utils.Flash(ctx, "danger", "Email already exists. Please use another email.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("password hash failed: %v", err)
		utils.Flash(ctx, "danger", "Registration failed. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		// Unique username index backstops the uniqueness invariant
		utils.Sugar.Warnf("register insert failed for %q: %v", username, err)
		utils.Flash(ctx, "danger", "Registration failed. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	a.cache.Delete(adminUsersCacheKey)

	utils.Flash(ctx, "success", "Registration successful! Please log in.")
	ctx.Redirect(http.StatusFound, "/")
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same generic message; blocked accounts are denied after the
// password check so the message never leaks which field was wrong.
func (a *AuthController) Login(ctx *gin.Context) {
	email := strings.TrimSpace(ctx.PostForm("email"))
	password := ctx.PostForm("password")

	var user models.User
	err := a.db.Where("email = ?", email).First(&user).Error
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		utils.Flash(ctx, "danger", "Invalid credentials.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if user.IsBlocked {
		utils.Flash(ctx, "danger", "Your account has been locked.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if err := middleware.SetSessionUser(ctx, user.ID); err != nil {
		utils.Sugar.Errorf("session save failed: %v", err)
		utils.Flash(ctx, "danger", "Login failed. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if user.IsAdmin {
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the authenticated session and returns to the landing page.
func (a *AuthController) Logout(ctx *gin.Context) {
	middleware.ClearSessionUser(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

// SeedAdminUser creates the built-in administrator on first startup, when no
// user with the configured admin username exists yet.
func SeedAdminUser(db *gorm.DB, cfg config.AppConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.Sugar.Infof("seeded admin user %q", cfg.AdminUsername)
	return nil
}
