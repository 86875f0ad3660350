package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/appointment"
	"github.com/Wezylnia/GymSystem-sub001/internal/auth"
	"github.com/Wezylnia/GymSystem-sub001/internal/booking"
	"github.com/Wezylnia/GymSystem-sub001/internal/config"
	"github.com/Wezylnia/GymSystem-sub001/internal/gym"
	"github.com/Wezylnia/GymSystem-sub001/internal/trainer"
	"github.com/gin-gonic/gin"
)

// Handlers groups the domain handlers mounted by the router.
type Handlers struct {
	Booking     *booking.Handler
	Appointment *appointment.Handler
	Trainer     *trainer.Handler
	Gym         *gym.Handler
	// Checks are probed by GET /ready.
	Checks []Check
}

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, h Handlers) *Server {
	router := NewRouter(cfg, h)
	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	router.GET("/health", Health)
	router.GET("/ready", Ready(h.Checks))
	router.GET("/metrics", Metrics())

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	staff := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)

	protected := router.Group("/")
	protected.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst), authMiddleware)
	{
		protected.POST("/appointments", h.Booking.BookAppointment)
		protected.GET("/appointments/:id", h.Appointment.GetAppointment)
		protected.POST("/appointments/:id/confirm", staff, h.Appointment.ConfirmAppointment)
		protected.POST("/appointments/:id/cancel", h.Appointment.CancelAppointment)

		protected.GET("/members/:memberID/appointments", h.Appointment.ListMemberAppointments)
		protected.GET("/members/:memberID/availability", h.Booking.MemberAvailability)

		protected.GET("/trainers/:trainerID/appointments", staff, h.Appointment.ListTrainerAppointments)
		protected.GET("/trainers/:trainerID/availability", h.Booking.TrainerAvailability)
		protected.GET("/trainers/:trainerID/windows", h.Trainer.ListAvailability)

		protected.GET("/services/:serviceID/available-trainers", h.Booking.AvailableTrainers)
		protected.GET("/locations/:locationID/working-hours", h.Gym.ListWorkingHours)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.PUT("/locations/:locationID/working-hours", h.Gym.SetWorkingHours)
		admin.POST("/trainers/:trainerID/windows", h.Trainer.AddAvailability)
		admin.DELETE("/trainers/:trainerID/windows/:windowID", h.Trainer.RemoveAvailability)
	}

	return router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
