package main

import (
	"context"
	"flag"
	"net/http"
	"runtime"
	"time"

	"github.com/edirooss/intervalidx/internal/audit"
	"github.com/edirooss/intervalidx/internal/config"
	"github.com/edirooss/intervalidx/internal/httpapi"
	"github.com/edirooss/intervalidx/internal/seedload"
	"github.com/edirooss/intervalidx/pkg/intervalindex"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "seed-file", "", "newline-delimited interval dump to bulk-load at startup")
	flag.Parse()

	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	cfg := config.Load()
	if seedFile == "" {
		seedFile = cfg.SeedFile
	}

	index := intervalindex.NewISL[float64]()

	if seedFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := seedload.LoadFile(ctx, seedFile, index, runtime.NumCPU())
		cancel()
		if err != nil {
			log.Fatal("seed load failed", zap.String("file", seedFile), zap.Error(err))
		}
		log.Info("seed load complete", zap.String("file", seedFile), zap.Int("count", n))
	}

	trail := audit.New(cfg.RedisAddr, log)
	defer trail.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(gin.Recovery()) // Recovery first (outermost)

	if cfg.Dev {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
			ExposeHeaders:    []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(httpapi.RequestID())
	r.Use(httpapi.ZapLogger(log)) // Observability after that (logger, tracing)

	svc := httpapi.NewService(index, trail, log)
	svc.Register(r)

	httpserver := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,

		MaxHeaderBytes: 1 << 15,

		ErrorLog: zap.NewStdLog(log.Named("http").WithOptions(zap.AddCallerSkip(1))),
	}

	log.Info("running HTTP server", zap.String("addr", cfg.ListenAddr))
	if err := httpserver.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}
}
