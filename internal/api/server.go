package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	app "pomelo-bot/internal/application"
	"pomelo-bot/internal/container"
	"pomelo-bot/internal/infrastructure/line"
)

// Server exposes the LINE webhook plus the health and direct-upload endpoints.
type Server struct {
	echo          *echo.Echo
	router        *app.Router
	analysis      *app.AnalysisService
	channelSecret string
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type predictResponse struct {
	DiseaseName string  `json:"disease_name"`
	Confidence  float64 `json:"confidence"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(c *container.Container, channelSecret string) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:          e,
		router:        c.Router,
		analysis:      c.Analysis,
		channelSecret: channelSecret,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.health)
	s.echo.POST("/webhook", s.webhook)
	s.echo.POST("/predict", s.predict)
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		ModelLoaded: s.analysis.Ready(),
	})
}

// webhook verifies the platform signature, decodes the callback and runs each
// event through the router. Per-event failures are logged only: the delivery
// is acknowledged either way, and a lost reply stays lost.
func (s *Server) webhook(c echo.Context) error {
	cb, err := webhook.ParseRequest(s.channelSecret, c.Request())
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return c.String(http.StatusBadRequest, "invalid signature")
		}
		return c.String(http.StatusBadRequest, "bad request")
	}

	for _, ev := range cb.Events {
		inbound := line.ToInboundEvent(ev)
		if err := s.router.Dispatch(c.Request().Context(), inbound); err != nil {
			log.Printf("dispatch event: %v", err)
		}
	}

	return c.String(http.StatusOK, "OK")
}

// predict runs the detection pipeline over a directly uploaded image and
// returns the single best-scoring disease, or the fixed healthy result when
// nothing clears the threshold.
func (s *Server) predict(c echo.Context) error {
	if !s.analysis.Ready() {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "detection model is not loaded"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file"})
	}

	set, err := s.analysis.Analyze(c.Request().Context(), data)
	if err != nil {
		log.Printf("predict: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not process image"})
	}

	best, ok := set.Best()
	if !ok {
		return c.JSON(http.StatusOK, predictResponse{DiseaseName: "healthy", Confidence: 0})
	}

	return c.JSON(http.StatusOK, predictResponse{
		DiseaseName: best.ClassName,
		Confidence:  best.Confidence,
	})
}
