package controllers_test

import (
	"net/http"
	"net/url"

	"tinyblog/models"
	"tinyblog/utils"
)

func (s *ControllerSuite) TestSeedCreatesExactlyOneAdmin() {
	var admins []models.User
	s.Require().NoError(s.db.Where("is_admin = ?", true).Find(&admins).Error)
	s.Require().Len(admins, 1)
	s.Equal("admin", admins[0].Username)
	s.Equal("admin@gmail.com", admins[0].Email)
	s.True(utils.CheckPassword(admins[0].PasswordHash, "admin123"))
	s.False(admins[0].IsBlocked)
}

func (s *ControllerSuite) TestRegisterCreatesUserWithHashedPassword() {
	w := s.register("alice", "alice@x.com", "pw1")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))

	user := s.userByEmail("alice@x.com")
	s.Equal("alice", user.Username)
	s.NotEqual("pw1", user.PasswordHash)
	s.True(utils.CheckPassword(user.PasswordHash, "pw1"))
	s.False(user.IsAdmin)
	s.False(user.IsBlocked)
}

func (s *ControllerSuite) TestRegisterDuplicateEmailRejected() {
	s.register("alice", "alice@x.com", "pw1")
	before := s.userCount()

	w := s.register("alice2", "alice@x.com", "pw2")
	s.Equal(http.StatusFound, w.Code)
	s.Equal(before, s.userCount())

	home := s.get("/")
	s.Contains(home.Body.String(), "Email already exists")
}

func (s *ControllerSuite) TestRegisterMissingFieldRejected() {
	before := s.userCount()
	w := s.postForm("/register", url.Values{
		"username": {"bob"},
		"email":    {"bob@x.com"},
	})
	s.Equal(http.StatusFound, w.Code)
	s.Equal(before, s.userCount())

	home := s.get("/")
	s.Contains(home.Body.String(), "fill in all fields")
}

func (s *ControllerSuite) TestLoginRoutesByRole() {
	s.register("alice", "alice@x.com", "pw1")

	w := s.login("alice@x.com", "pw1")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/dashboard", w.Header().Get("Location"))
	s.logout()

	w = s.login("admin@gmail.com", "admin123")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/admin", w.Header().Get("Location"))
}

func (s *ControllerSuite) TestLoginFailureIsGeneric() {
	s.register("alice", "alice@x.com", "pw1")

	wrongPassword := s.login("alice@x.com", "nope")
	s.Equal(http.StatusFound, wrongPassword.Code)
	s.Equal("/", wrongPassword.Header().Get("Location"))
	s.Contains(s.get("/").Body.String(), "Invalid credentials.")

	unknownEmail := s.login("ghost@x.com", "pw1")
	s.Equal(http.StatusFound, unknownEmail.Code)
	s.Equal("/", unknownEmail.Header().Get("Location"))
	s.Contains(s.get("/").Body.String(), "Invalid credentials.")
}

func (s *ControllerSuite) TestBlockedUserCannotLogin() {
	s.register("alice", "alice@x.com", "pw1")
	user := s.userByEmail("alice@x.com")
	s.Require().NoError(s.db.Model(&user).Update("is_blocked", true).Error)

	// Correct password, still denied
	w := s.login("alice@x.com", "pw1")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
	s.Contains(s.get("/").Body.String(), "locked")

	// The block page is not reachable either
	dash := s.get("/dashboard")
	s.Equal(http.StatusFound, dash.Code)
	s.Equal("/", dash.Header().Get("Location"))
}

func (s *ControllerSuite) TestLogoutDestroysSession() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")

	s.Equal(http.StatusOK, s.get("/dashboard").Code)
	s.logout()

	w := s.get("/dashboard")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
}

func (s *ControllerSuite) TestFaviconReturnsNoContent() {
	w := s.get("/favicon.ico")
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())
}
