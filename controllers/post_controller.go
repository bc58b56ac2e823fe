package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tinyblog/middleware"
	"tinyblog/models"
	"tinyblog/utils"
)

// PostController serves the dashboard and post mutations.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// Dashboard lists the current user's posts, newest first.
func (p *PostController) Dashboard(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var posts []models.Post
	if err := p.db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Sugar.Errorf("dashboard post query failed: %v", err)
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":    user,
		"Posts":   posts,
		"Flashes": utils.TakeFlashes(ctx),
	})
}

// CreatePost handles the dashboard form. Valid input inserts a post owned by
// the current user; either way the request resolves back to the dashboard via
// redirect, so a refresh cannot resubmit the form.
func (p *PostController) CreatePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	title := utils.SanitizeTitle(strings.TrimSpace(ctx.PostForm("title")))
	content := utils.SanitizeContent(ctx.PostForm("content"))

	if title == "" || content == "" {
		utils.Flash(ctx, "danger", "Title and content cannot be empty.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	post := models.Post{UserID: user.ID, Title: title, Content: content}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Sugar.Errorf("post insert failed: %v", err)
		utils.Flash(ctx, "danger", "Failed to publish post.")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	utils.Flash(ctx, "success", "Post published!")
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// DeletePosts removes the given posts when they belong to the current user.
// Ids owned by someone else are silently ignored rather than rejected.
func (p *PostController) DeletePosts(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var req struct {
		PostIDs []uint `json:"post_ids"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || len(req.PostIDs) == 0 {
		utils.Message(ctx, http.StatusBadRequest, "No posts selected.")
		return
	}

	if err := p.db.Where("id IN ? AND user_id = ?", req.PostIDs, user.ID).Delete(&models.Post{}).Error; err != nil {
		utils.Sugar.Errorf("batch delete failed: %v", err)
		utils.Message(ctx, http.StatusInternalServerError, "Failed to delete posts.")
		return
	}

	utils.Message(ctx, http.StatusOK, "Posts deleted.")
}
