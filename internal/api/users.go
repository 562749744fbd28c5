package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/domain"
)

type registerRequest struct {
	domain.User
	Password string `json:"password" binding:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := req.User
	user.ID = ""
	if err := s.tracker.Register(c.Request.Context(), &user, req.Password); err != nil {
		s.fail(c, err)
		return
	}
	s.respondToken(c, http.StatusCreated, &user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := s.tracker.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respondToken(c, http.StatusOK, user)
}

func (s *Server) respondToken(c *gin.Context, status int, user *domain.User) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, tokenResponse{Token: token, User: user})
}

func (s *Server) getMe(c *gin.Context) {
	user, err := s.tracker.GetUser(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// updateMe applies the fields present in the body to the stored profile.
func (s *Server) updateMe(c *gin.Context) {
	user, err := s.tracker.GetUser(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := c.ShouldBindJSON(user); err != nil {
		badRequest(c, err)
		return
	}

	user.ID = currentUser(c)
	if err := s.tracker.UpdateUser(c.Request.Context(), user); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := s.tracker.ChangePassword(c.Request.Context(), currentUser(c), req.OldPassword, req.NewPassword); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
