package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// day returns the day named by the date query parameter, today when it is
// absent. On a malformed date it writes a 400 and returns false.
func (s *Server) day(c *gin.Context) (time.Time, bool) {
	key := c.Query("date")
	if key == "" {
		return s.tracker.Now(), true
	}
	d, err := domain.ParseDay(key, s.tracker.Location())
	if err != nil {
		badRequest(c, err)
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) addMeal(c *gin.Context) {
	var meal domain.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		badRequest(c, err)
		return
	}

	meal.ID = ""
	meal.UserID = currentUser(c)
	if err := s.tracker.AddMeal(c.Request.Context(), &meal); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (s *Server) listMeals(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	meals, err := s.tracker.MealsFor(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	if meals == nil {
		meals = []*domain.Meal{}
	}
	c.JSON(http.StatusOK, meals)
}

func (s *Server) deleteMeal(c *gin.Context) {
	if err := s.tracker.DeleteMeal(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) nutrition(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	report, err := s.tracker.NutritionReport(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) recommendations(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	recs, err := s.tracker.RecommendedMeals(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) tips(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.tracker.Tips(day))
}
