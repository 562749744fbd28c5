package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/reminder"
)

type reminderRequest struct {
	Title    string `json:"title"`
	Schedule string `json:"schedule"`
	// Enabled defaults to true.
	Enabled *bool `json:"enabled"`
}

func (req reminderRequest) reminder(userID, id string) *domain.Reminder {
	r := &domain.Reminder{
		ID:       id,
		UserID:   userID,
		Title:    req.Title,
		Schedule: req.Schedule,
		Enabled:  true,
	}
	if req.Enabled != nil {
		r.Enabled = *req.Enabled
	}
	return r
}

// reminderView is a reminder with its schedule in canonical form. Valid is
// false for schedules that never fire. NextDue is set for enabled reminders
// with a valid schedule.
type reminderView struct {
	*domain.Reminder
	Valid       bool       `json:"valid"`
	Description string     `json:"description,omitempty"`
	NextDue     *time.Time `json:"next_due,omitempty"`
}

func (s *Server) describeReminder(r *domain.Reminder) reminderView {
	v := reminderView{Reminder: r}
	sched, err := reminder.Parse(r.Schedule)
	if err != nil {
		return v
	}
	v.Valid = true
	v.Description = sched.String()
	if r.Enabled {
		if next := sched.Next(s.tracker.Now()); !next.IsZero() {
			v.NextDue = &next
		}
	}
	return v
}

func (s *Server) listReminders(c *gin.Context) {
	reminders, err := s.tracker.Reminders(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]reminderView, len(reminders))
	for i, r := range reminders {
		out[i] = s.describeReminder(r)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r := req.reminder(currentUser(c), "")
	if err := s.tracker.AddReminder(c.Request.Context(), r); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.describeReminder(r))
}

func (s *Server) updateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r := req.reminder(currentUser(c), c.Param("id"))
	if err := s.tracker.UpdateReminder(c.Request.Context(), r); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.describeReminder(r))
}

func (s *Server) deleteReminder(c *gin.Context) {
	if err := s.tracker.DeleteReminder(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
