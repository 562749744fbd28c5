package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/bloodsugar"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

const defaultHbA1cDays = "90"

var defaultAverageWindows = []int{7, 14, 30, 60}

// Average is the mean glucose of a window of days. Nil values mean the
// window holds no readings.
type Average struct {
	Days    int      `json:"days"`
	Average *float64 `json:"average"`
	HbA1c   *float64 `json:"hba1c"`
}

func (s *Server) addReading(c *gin.Context) {
	var r domain.BloodReading
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}

	r.ID = ""
	r.UserID = currentUser(c)
	r.Source = domain.SourceManual
	r.Trend = ""
	if err := s.tracker.AddBloodReading(c.Request.Context(), &r); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) listReadings(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	readings, err := s.tracker.ReadingsFor(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	if readings == nil {
		readings = []*domain.BloodReading{}
	}
	c.JSON(http.StatusOK, readings)
}

func (s *Server) deleteReading(c *gin.Context) {
	if err := s.tracker.DeleteReading(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) insights(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	in, err := s.tracker.Insights(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (s *Server) difference(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	diff, err := s.tracker.DifferenceBetweenBloodSugar(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day":        domain.DayKey(day, s.tracker.Location()),
		"difference": diff,
	})
}

func (s *Server) hba1c(c *gin.Context) {
	days := c.DefaultQuery("days", defaultHbA1cDays)
	estimate, err := s.tracker.EstimateHbA1c(c.Request.Context(), currentUser(c), days)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": strings.TrimSpace(days), "hba1c": estimate})
}

// glucoseAverages reports the average glucose and HbA1c estimate of each
// window in the comma separated days parameter.
func (s *Server) glucoseAverages(c *gin.Context) {
	windows, err := parseWindows(c.Query("days"))
	if err != nil {
		badRequest(c, err)
		return
	}

	out := make([]Average, 0, len(windows))
	for _, n := range windows {
		avg := Average{Days: n}
		v, err := s.tracker.AverageGlucose(c.Request.Context(), currentUser(c), n)
		switch {
		case err == nil:
			estimate := bloodsugar.EstimateHbA1c(v)
			avg.Average = &v
			avg.HbA1c = &estimate
		case !errors.Is(err, tracker.ErrInsufficientReadings):
			s.fail(c, err)
			return
		}
		out = append(out, avg)
	}
	c.JSON(http.StatusOK, out)
}

func parseWindows(param string) ([]int, error) {
	if strings.TrimSpace(param) == "" {
		return defaultAverageWindows, nil
	}
	var windows []int
	for _, part := range strings.Split(param, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid days %q", part)
		}
		windows = append(windows, n)
	}
	return windows, nil
}

// chart replies with the day's readings drawn as plain text, 204 when the
// day has none.
func (s *Server) chart(c *gin.Context) {
	day, ok := s.day(c)
	if !ok {
		return
	}
	chart, err := s.tracker.Chart(c.Request.Context(), currentUser(c), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	if chart == "" {
		c.Status(http.StatusNoContent)
		return
	}
	c.String(http.StatusOK, chart)
}
