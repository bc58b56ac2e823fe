package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tinyblog/middleware"
	"tinyblog/models"
	"tinyblog/utils"
)

const adminUsersCacheKey = "cache:admin:users"

// AdminController serves the user-management panel and password resets.
type AdminController struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB, cache *utils.Cache) *AdminController {
	return &AdminController{db: db, cache: cache}
}

// Panel lists all users for the admin view.
func (a *AdminController) Panel(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var users []models.User
	if !a.cache.GetJSON(adminUsersCacheKey, &users) {
		if err := a.db.Order("id ASC").Find(&users).Error; err != nil {
			utils.Sugar.Errorf("user list query failed: %v", err)
		} else {
			a.cache.SetJSON(adminUsersCacheKey, users, time.Minute)
		}
	}

	ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"User":    user,
		"Users":   users,
		"Flashes": utils.TakeFlashes(ctx),
	})
}

// Action dispatches a block/unblock/reset form submission against one user.
// Blocking is refused for admin accounts; unblock and reset are not.
func (a *AdminController) Action(ctx *gin.Context) {
	idStr := ctx.PostForm("user_id")
	action := ctx.PostForm("action")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if idStr == "" || err != nil {
		utils.Flash(ctx, "danger", "Invalid user id!")
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}

	var target models.User
	if err := a.db.First(&target, uint(id)).Error; err != nil {
		utils.Flash(ctx, "danger", "User not found!")
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}

	switch {
	case target.IsAdmin && action == "block":
		utils.Flash(ctx, "danger", "Cannot block an admin account!")
	case action == "block":
		a.setBlocked(ctx, &target, true)
	case action == "unblock":
		a.setBlocked(ctx, &target, false)
	case action == "reset":
		a.resetPassword(ctx, &target)
	}

	ctx.Redirect(http.StatusFound, "/admin")
}

// ResetPassword resets a user's password to the fixed default. Unlike the
// panel actions, this endpoint verifies the caller is an admin.
func (a *AdminController) ResetPassword(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok || !user.IsAdmin {
		utils.Flash(ctx, "danger", "You are not allowed to perform this action!")
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}

	id, err := strconv.ParseUint(ctx.PostForm("user_id"), 10, 64)
	if err != nil {
		utils.Flash(ctx, "danger", "User not found!")
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}

	var target models.User
	if err := a.db.First(&target, uint(id)).Error; err != nil {
		utils.Flash(ctx, "danger", "User not found!")
		ctx.Redirect(http.StatusFound, "/admin")
		return
	}

	a.resetPassword(ctx, &target)
	ctx.Redirect(http.StatusFound, "/admin")
}

func (a *AdminController) setBlocked(ctx *gin.Context, target *models.User, blocked bool) {
	if err := a.db.Model(target).Update("is_blocked", blocked).Error; err != nil {
		utils.Sugar.Errorf("block update failed for user %d: %v", target.ID, err)
		utils.Flash(ctx, "danger", "Action failed. Please try again.")
		return
	}
	a.invalidate(target.ID)

	if blocked {
		utils.Flash(ctx, "warning", fmt.Sprintf("Account %s has been blocked", target.Username))
	} else {
		utils.Flash(ctx, "success", fmt.Sprintf("Account %s has been unblocked", target.Username))
	}
}

func (a *AdminController) resetPassword(ctx *gin.Context, target *models.User) {
	hash, err := utils.HashPassword(utils.DefaultResetPassword)
	if err != nil {
		utils.Sugar.Errorf("reset hash failed: %v", err)
		utils.Flash(ctx, "danger", "Action failed. Please try again.")
		return
	}
	if err := a.db.Model(target).Update("password_hash", hash).Error; err != nil {
		utils.Sugar.Errorf("reset update failed for user %d: %v", target.ID, err)
		utils.Flash(ctx, "danger", "Action failed. Please try again.")
		return
	}
	a.invalidate(target.ID)

	// The plaintext default is deliberately shown to the operator
	utils.Flash(ctx, "info", fmt.Sprintf("Password for %s has been reset to '%s'", target.Username, utils.DefaultResetPassword))
}

func (a *AdminController) invalidate(userID uint) {
	a.cache.Delete(adminUsersCacheKey, middleware.SessionUserCacheKey(userID))
}
