// Package server owns the HTTP listener external controllers drive the
// automation service through.
package server

import (
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/automation"
	"github.com/dcherrera/tauri-plugin-automation/internal/capture"
	"github.com/dcherrera/tauri-plugin-automation/internal/config"
	"github.com/dcherrera/tauri-plugin-automation/internal/monitoring"
	"github.com/dcherrera/tauri-plugin-automation/internal/ws"
)

// Version reported by the health probe.
const Version = "1.0.0"

// Server wraps the HTTP listener and its dependencies.
type Server struct {
	router  *gin.Engine
	svc     *automation.Service
	mailbox *capture.Mailbox
	metrics *monitoring.Metrics
	hub     *ws.Hub
	cfg     *config.Config
	log     *zap.Logger

	// captureMu serializes screenshot requests end to end. The mailbox has a
	// single slot, so an overlapping request could otherwise consume and
	// discard the delivery correlated with its peer.
	captureMu sync.Mutex
}

// NewServer wires the routes over an initialized automation service.
func NewServer(svc *automation.Service, mailbox *capture.Mailbox, hub *ws.Hub, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	s := &Server{
		router:  router,
		svc:     svc,
		mailbox: mailbox,
		metrics: metrics,
		hub:     hub,
		cfg:     cfg,
		log:     logger,
	}

	handlers := newHandlers(s)
	router.GET("/automation/health", handlers.Health)
	router.POST("/automation/execute", handlers.Execute)
	router.GET("/automation/screenshot", handlers.Screenshot)
	router.GET("/automation/commands", handlers.Commands)
	if hub != nil {
		router.GET("/automation/stream", hub.HandleConnection)
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	return s
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the listener and blocks.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.log.Info("automation listener starting", zap.String("addr", addr))
	return s.router.Run(addr)
}
