package controllers_test

import (
	"net/http"
	"net/url"

	"tinyblog/models"
)

func (s *ControllerSuite) createPost(title, content string) {
	s.postForm("/dashboard", url.Values{
		"title":   {title},
		"content": {content},
	})
}

func (s *ControllerSuite) TestDashboardRequiresLogin() {
	w := s.get("/dashboard")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
}

func (s *ControllerSuite) TestCreatePostRejectsEmptyFields() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")
	alice := s.userByEmail("alice@x.com")

	s.createPost("", "some content")
	s.createPost("some title", "")
	s.EqualValues(0, s.postCount(alice.ID))

	dash := s.get("/dashboard")
	s.Contains(dash.Body.String(), "cannot be empty")
}

func (s *ControllerSuite) TestCreatePostOwnedByCurrentUser() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")
	alice := s.userByEmail("alice@x.com")

	w := s.postForm("/dashboard", url.Values{
		"title":   {"Hi"},
		"content": {"World"},
	})
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/dashboard", w.Header().Get("Location"))

	var posts []models.Post
	s.Require().NoError(s.db.Find(&posts).Error)
	s.Require().Len(posts, 1)
	s.Equal(alice.ID, posts[0].UserID)
	s.Equal("Hi", posts[0].Title)
	s.Equal("World", posts[0].Content)

	dash := s.get("/dashboard")
	s.Equal(http.StatusOK, dash.Code)
	s.Contains(dash.Body.String(), "Hi")
}

func (s *ControllerSuite) TestCreatePostStripsMarkupFromTitle() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")

	s.createPost("<script>alert(1)</script>Hello", "World")

	var post models.Post
	s.Require().NoError(s.db.First(&post).Error)
	s.Equal("Hello", post.Title)
}

func (s *ControllerSuite) TestDeletePostsRequiresLogin() {
	w := s.postJSON("/delete_posts", map[string][]uint{"post_ids": {1}})
	s.Equal(http.StatusFound, w.Code)
}

func (s *ControllerSuite) TestDeletePostsEmptyListIsRejected() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")

	w := s.postJSON("/delete_posts", map[string][]uint{"post_ids": {}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "message")
}

func (s *ControllerSuite) TestDeletePostsIgnoresForeignIDs() {
	s.register("alice", "alice@x.com", "pw1")
	s.register("bob", "bob@x.com", "pw2")
	bob := s.userByEmail("bob@x.com")

	bobPost := models.Post{UserID: bob.ID, Title: "Bob's", Content: "post"}
	s.Require().NoError(s.db.Create(&bobPost).Error)

	s.login("alice@x.com", "pw1")
	w := s.postJSON("/delete_posts", map[string][]uint{"post_ids": {bobPost.ID}})
	s.Equal(http.StatusOK, w.Code)

	// Bob's post survives untouched
	s.EqualValues(1, s.postCount(bob.ID))
}

func (s *ControllerSuite) TestDeletePostsDeletesOwnPosts() {
	s.register("alice", "alice@x.com", "pw1")
	s.login("alice@x.com", "pw1")
	alice := s.userByEmail("alice@x.com")

	s.createPost("One", "first")
	s.createPost("Two", "second")
	s.Require().EqualValues(2, s.postCount(alice.ID))

	var posts []models.Post
	s.Require().NoError(s.db.Where("user_id = ?", alice.ID).Find(&posts).Error)

	w := s.postJSON("/delete_posts", map[string][]uint{"post_ids": {posts[0].ID, posts[1].ID}})
	s.Equal(http.StatusOK, w.Code)
	s.EqualValues(0, s.postCount(alice.ID))
}
