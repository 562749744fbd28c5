package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
)

// FoodPortion is a looked up food scaled to the requested portion.
type FoodPortion struct {
	Food         *nutritionix.Food `json:"food"`
	Measures     []string          `json:"measures"`
	Item         domain.FoodItem   `json:"item"`
	GlycemicLoad float64           `json:"glycemic_load"`
	BurnMinutes  int               `json:"burn_minutes"`
}

func (s *Server) requireFoods(c *gin.Context) bool {
	if s.foods == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "food lookup is not configured"})
		return false
	}
	return true
}

func (s *Server) searchFoods(c *gin.Context) {
	if !s.requireFoods(c) {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, fmt.Errorf("query parameter q is required"))
		return
	}

	hits, err := s.foods.Search(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	if hits == nil {
		hits = []nutritionix.Suggestion{}
	}
	c.JSON(http.StatusOK, hits)
}

// lookupFood scales a food to qty units of measure. Qty defaults to the
// food's serving quantity and measure to its serving unit.
func (s *Server) lookupFood(c *gin.Context) {
	if !s.requireFoods(c) {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, fmt.Errorf("query parameter q is required"))
		return
	}
	var qty float64
	if param := c.Query("qty"); param != "" {
		v, err := strconv.ParseFloat(param, 64)
		if err != nil || v <= 0 {
			badRequest(c, fmt.Errorf("invalid qty %q", param))
			return
		}
		qty = v
	}

	food, err := s.foods.Lookup(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	if qty == 0 {
		qty = food.ServingQty
	}

	item, err := food.Portion(qty, c.Query("measure"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FoodPortion{
		Food:         food,
		Measures:     food.Measures(),
		Item:         item,
		GlycemicLoad: nutrition.GlycemicLoad(item.GIIndex, item.Carbs),
		BurnMinutes:  nutrition.BurnMinutes(item.Calories),
	})
}
