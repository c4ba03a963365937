package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studentrecords"
	"studentrecords/common"
	"studentrecords/llm"
	"studentrecords/report"
	"studentrecords/srv"
	"studentrecords/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "studentrecords"

// Server is the API http server together with the service it serves.
// Shutdown stops the listener and then closes the service.
type Server struct {
	*http.Server
	service srv.Service
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Server.Shutdown(ctx)
	if closeErr := s.service.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close service: %w", closeErr))
	}
	return err
}

func RunServer() *Server {
	gin.SetMode(gin.ReleaseMode)
	ctrl, err := NewController()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize controller")
	}
	router := DefineRoutes(ctrl)

	srv := &Server{
		Server: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", common.GetServerHost(), common.GetServerPort()),
			Handler: router.Handler(),
		},
		service: ctrl.service,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	return srv
}

type Controller struct {
	service        srv.Service
	summarizer     *report.Summarizer
	metrics        *telemetry.Metrics
	allowedOrigins *AllowedOrigins
}

func NewController() (Controller, error) {
	settings, err := common.LoadSettings()
	if err != nil {
		return Controller{}, fmt.Errorf("failed to load settings: %w", err)
	}

	service, err := studentrecords.GetService(settings)
	if err != nil {
		return Controller{}, fmt.Errorf("failed to initialize storage: %w", err)
	}
	err = service.CheckConnection(context.Background())
	if err != nil {
		return Controller{}, fmt.Errorf("failed to connect to storage: %w", err)
	}

	allowedOrigins, err := GetAllowedOrigins()
	if err != nil {
		return Controller{}, err
	}
	if len(settings.AllowedOrigins) > 0 && !allowedOriginsFromEnv() {
		allowedOrigins, err = ParseAllowedOrigins(strings.Join(settings.AllowedOrigins, ","))
		if err != nil {
			return Controller{}, err
		}
	}

	// no client timeout: generations run until the request context ends
	ollama := llm.NewOllamaClient(settings.OllamaBaseURL, settings.OllamaModel, &http.Client{})
	log.Info().Str("baseURL", ollama.BaseURL).Str("model", ollama.Model).Msg("Using Ollama for summaries")

	return newController(service, ollama, allowedOrigins), nil
}

func newController(service srv.Service, generator report.Generator, allowedOrigins *AllowedOrigins) Controller {
	metrics := telemetry.NewMetrics()
	return Controller{
		service:        service,
		summarizer:     report.NewSummarizer(service, generator, metrics),
		metrics:        metrics,
		allowedOrigins: allowedOrigins,
	}
}

func DefineRoutes(ctrl Controller) *gin.Engine {
	if ctrl.allowedOrigins == nil {
		ctrl.allowedOrigins = BuildDefaultAllowedOrigins()
	}

	r := gin.New()
	r.ForwardedByClientIP = true
	r.SetTrustedProxies(nil)
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		RequestIdMiddleware(),
		RequestLogMiddleware(),
		CORSMiddleware(ctrl.allowedOrigins),
	)

	r.GET("/healthz", ctrl.HealthHandler)
	r.GET("/metrics", gin.WrapH(ctrl.metrics.Handler()))

	apiRoutes := r.Group("/api")
	defineStudentRoutes(apiRoutes.Group("/students"), &ctrl)
	defineSubjectRoutes(apiRoutes.Group("/subjects"), &ctrl)
	defineGradeRoutes(apiRoutes.Group("/grades"), &ctrl)
	defineEnrollmentRoutes(apiRoutes.Group("/enrollment"), &ctrl)
	defineAttendanceRoutes(apiRoutes.Group("/attendance"), &ctrl)
	defineRemarkRoutes(apiRoutes.Group("/remarks"), &ctrl)

	apiRoutes.GET("/summary", ctrl.GetSummaryHandler)
	apiRoutes.POST("/custom-report", ctrl.CustomReportHandler)

	wsRoutes := r.Group("/ws/v1")
	wsRoutes.GET("/summary", ctrl.SummaryWebsocketHandler)

	return r
}

func (ctrl *Controller) ErrorHandler(c *gin.Context, status int, err error) {
	log.Ctx(c.Request.Context()).Error().Err(err).Int("status", status).Msg("Request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

func (ctrl *Controller) HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := ctrl.service.CheckConnection(ctx); err != nil {
		ctrl.ErrorHandler(c, http.StatusServiceUnavailable, errors.New("storage unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
