package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tinyblog/models"
	"tinyblog/utils"
)

const (
	// ContextUserKey is the key under which the resolved user is stored in Gin context.
	ContextUserKey = "current_user"

	sessionUserIDKey = "user_id"
)

// SessionUserResolver resolves a session's user id to a full user record.
type SessionUserResolver interface {
	ResolveSessionUser(id uint) (*models.User, error)
}

type dbUserResolver struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewDBUserResolver returns a resolver backed by the database with a
// best-effort Redis cache in front of it.
func NewDBUserResolver(db *gorm.DB, cache *utils.Cache) SessionUserResolver {
	return &dbUserResolver{db: db, cache: cache}
}

// SessionUserCacheKey is the cache key for a resolved session user. Admin
// mutations delete it so the next request sees fresh data.
func SessionUserCacheKey(id uint) string {
	return fmt.Sprintf("cache:session:user:%d", id)
}

func (r *dbUserResolver) ResolveSessionUser(id uint) (*models.User, error) {
	key := SessionUserCacheKey(id)

	var user models.User
	if r.cache.GetJSON(key, &user) {
		return &user, nil
	}
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	r.cache.SetJSON(key, user, 5*time.Minute)
	return &user, nil
}

// LoginRequired rejects unauthenticated requests with a redirect to the
// landing page before the handler runs. On success the resolved user is
// available through CurrentUser.
func LoginRequired(resolver SessionUserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		id, ok := s.Get(sessionUserIDKey).(uint)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		user, err := resolver.ResolveSessionUser(id)
		if err != nil {
			// Stale session pointing at a user that no longer resolves
			ClearSessionUser(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in context by LoginRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// SetSessionUser establishes an authenticated session for the user.
func SetSessionUser(c *gin.Context, id uint) error {
	s := sessions.Default(c)
	s.Set(sessionUserIDKey, id)
	return s.Save()
}

// ClearSessionUser removes the authenticated identity, keeping any queued flashes.
func ClearSessionUser(c *gin.Context) {
	s := sessions.Default(c)
	s.Delete(sessionUserIDKey)
	if err := s.Save(); err != nil {
		utils.Sugar.Warnf("session clear failed: %v", err)
	}
}
