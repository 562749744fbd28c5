// Package api serves the glucowise REST API.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/auth"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
	"github.com/jwulff/glucowise-go/internal/realtime"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

// FoodSource looks up nutrient data of foods.
type FoodSource interface {
	Search(ctx context.Context, query string) ([]nutritionix.Suggestion, error)
	Lookup(ctx context.Context, query string) (*nutritionix.Food, error)
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	issuer  *auth.Issuer
	hub     *realtime.Hub
	foods   FoodSource
	logger  *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithHub enables the alerts websocket.
func WithHub(hub *realtime.Hub) Option {
	return func(s *Server) { s.hub = hub }
}

// WithFoods enables the food search endpoints.
func WithFoods(foods FoodSource) Option {
	return func(s *Server) { s.foods = foods }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Server.
func New(t *tracker.Tracker, issuer *auth.Issuer, opts ...Option) *Server {
	s := &Server{
		tracker: t,
		issuer:  issuer,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var bindingRules sync.Once

// useDomainRules lets binding tags on request structs use the domain's
// custom validation tags.
func (s *Server) useDomainRules() {
	bindingRules.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			s.logger.Warn("binding validator is not go-playground; custom rules unavailable")
			return
		}
		if err := domain.RegisterRules(v); err != nil {
			s.logger.Error("failed to register binding rules", zap.Error(err))
		}
	})
}

// Handler returns the router. Set the gin mode before calling it.
func (s *Server) Handler() http.Handler {
	s.useDomainRules()

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
	}

	api := r.Group("/")
	api.Use(s.requireAuth())
	{
		api.GET("/me", s.getMe)
		api.PUT("/me", s.updateMe)
		api.PUT("/me/password", s.changePassword)

		api.POST("/meals", s.addMeal)
		api.GET("/meals", s.listMeals)
		api.DELETE("/meals/:id", s.deleteMeal)
		api.GET("/nutrition", s.nutrition)

		api.POST("/readings", s.addReading)
		api.GET("/readings", s.listReadings)
		api.DELETE("/readings/:id", s.deleteReading)
		api.GET("/insights", s.insights)
		api.GET("/difference", s.difference)
		api.GET("/hba1c", s.hba1c)
		api.GET("/glucose/averages", s.glucoseAverages)
		api.GET("/chart", s.chart)

		api.POST("/activity", s.addActivity)
		api.GET("/activity", s.getActivity)
		api.GET("/steps", s.steps)
		api.GET("/summary", s.summary)

		api.GET("/recommendations", s.recommendations)
		api.GET("/tips", s.tips)

		api.GET("/reminders", s.listReminders)
		api.POST("/reminders", s.addReminder)
		api.PUT("/reminders/:id", s.updateReminder)
		api.DELETE("/reminders/:id", s.deleteReminder)

		api.GET("/foods/search", s.searchFoods)
		api.GET("/foods/lookup", s.lookupFood)

		api.GET("/ws/alerts", s.alertsWS)
	}

	return r
}
