package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/domain"
)

const defaultStepDays = 7

func (s *Server) addActivity(c *gin.Context) {
	var a domain.ActivityProgress
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}

	a.UserID = currentUser(c)
	if err := s.tracker.AddActivity(c.Request.Context(), &a); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) getActivity(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	a, err := s.tracker.ActivityFor(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) steps(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	n := defaultStepDays
	if param := c.Query("days"); param != "" {
		v, err := strconv.Atoi(param)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid days %q", param))
			return
		}
		n = v
	}

	history, err := s.tracker.StepsHistory(c.Request.Context(), currentUser(c), day, n)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) summary(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	summary, err := s.tracker.DailySummary(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
