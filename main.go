package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"healthmate/backend/api/route"
	"healthmate/backend/common"
	"healthmate/backend/library/ai"
	"healthmate/backend/library/storage"
	"healthmate/backend/model"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	if err := common.InitConfig(); err != nil {
		common.FatalLog(err)
	}
	common.SysLog("HealthMate backend " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis 为可选组件，连接失败时降级为无缓存
	if err := common.InitRedisClient(); err != nil {
		common.SysError("failed to connect to redis, continuing without it", "err", err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	if err := storage.Init(); err != nil {
		common.FatalLog(err)
	}
	ai.Init()

	server := gin.New()
	server.Use(gin.Logger(), gin.Recovery())
	route.SetRouter(server)

	port := strconv.Itoa(*common.Port)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server,
	}
	go func() {
		common.SysLog("Server listening on port: " + port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.FatalLog("failed to start server: " + err.Error())
		}
	}()

	waitForShutdown(srv)
}

// waitForShutdown blocks until SIGINT or SIGTERM, then drains in-flight
// requests and releases the database and redis connections.
func waitForShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	common.SysLog("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.SysError("server forced to shutdown", "err", err)
	}

	// 关闭其他资源
	if err := model.CloseDB(); err != nil {
		common.SysError("failed to close database", "err", err)
	}
	if err := common.CloseRedis(); err != nil {
		common.SysError("failed to close redis", "err", err)
	}
	common.SysLog("Server exited")
}
