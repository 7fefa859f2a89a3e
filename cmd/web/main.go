package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/backend"
	"github.com/noah-isme/sms-portal/internal/handler"
	"github.com/noah-isme/sms-portal/internal/service"
	"github.com/noah-isme/sms-portal/internal/session"
	"github.com/noah-isme/sms-portal/pkg/config"
	"github.com/noah-isme/sms-portal/pkg/logger"
	"github.com/noah-isme/sms-portal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Enabled {
		client, err := session.NewRedisClient(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = session.NewRedisStore(client)
		logr.Info("sessions backed by redis", zap.String("host", cfg.Redis.Host))
	}

	metrics := service.NewMetricsService()

	sessions := session.NewManager(store, cfg.Session, logr)
	sessions.OnChange(func(e session.Event) {
		metrics.RecordSessionEvent(string(e.Kind))
		logr.Info("session change",
			zap.String("event", string(e.Kind)),
			zap.String("user_id", e.User.ID),
			zap.String("role", string(e.User.Role)))
	})

	client := backend.New(cfg.Backend, logr)

	monitor := backend.NewMonitor(client, cfg.KeepAlive, logr)
	monitor.OnProbe(func(latency time.Duration, err error) {
		if err == nil {
			metrics.ObserveUpstreamProbe(latency)
		}
	})
	if cfg.KeepAlive.Enabled {
		monitor.Start(context.Background())
	}

	validate := validator.New()
	authSvc := service.NewAuthService(client, validate, logr)
	studentSvc := service.NewStudentService(client, validate, logr)
	rosterSvc := service.NewRosterService(client, logr)

	static, err := web.Static()
	if err != nil {
		logr.Fatal("failed to load static assets", zap.Error(err))
	}

	r := handler.Router(handler.Deps{
		Auth:      handler.NewAuthHandler(authSvc, sessions, monitor, logr),
		Dashboard: handler.NewDashboardHandler(rosterSvc, logr),
		Students:  handler.NewStudentHandler(studentSvc, logr),
		Subjects:  handler.NewSubjectHandler(studentSvc, rosterSvc, logr),
		Profile:   handler.NewProfileHandler(studentSvc, logr),
		Sessions:  sessions,
		Metrics:   metrics,
		Templates: web.Templates(),
		Static:    static,
		Logger:    logr,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("portal starting", "addr", addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("portal failed", "error", err)
	}
}
