package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	accounthandler "DawnEmpire/internal/account/interfaces/handler"
	accountrepo "DawnEmpire/internal/account/infra/repo"
	accountapp "DawnEmpire/internal/account/app"
	"DawnEmpire/internal/engine"
	gameapp "DawnEmpire/internal/game/app"
	gamehandler "DawnEmpire/internal/game/interfaces/handler"
	"DawnEmpire/internal/game/infra/model"
	gamerepo "DawnEmpire/internal/game/infra/repo"
	"DawnEmpire/internal/shared/config"
	"DawnEmpire/internal/shared/gamedata"
	"DawnEmpire/internal/shared/infrastructure/db"
	"DawnEmpire/internal/shared/logs"
	"DawnEmpire/internal/shared/security"
	"DawnEmpire/internal/shared/session"
	transporthttp "DawnEmpire/internal/shared/transport/http"
	"DawnEmpire/internal/shared/transport/http/middleware"
	"DawnEmpire/internal/shared/transport/ws"
	"DawnEmpire/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.Load("conf")
	if err := logs.Init("server", config.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf loaded", zap.Any("httpserver", config.Conf.HTTPServer), zap.Any("game", config.Conf.Game))

	gamedata.Load()

	gormDB, err := db.Open(config.Conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}
	if err = gormDB.AutoMigrate(&model.Player{}, &model.Building{}, &model.Unit{}, &model.MapResource{}); err != nil {
		logs.Fatal("migrate schema failed", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())

	// 仓储
	playerRepo := gamerepo.NewPlayerRepo(gormDB)
	buildingRepo := gamerepo.NewBuildingRepo(gormDB)
	unitRepo := gamerepo.NewUnitRepo(gormDB)
	mapResourceRepo := gamerepo.NewMapResourceRepo(gormDB)
	accountRepo := accountrepo.NewAccountRepo(gormDB)

	// 会话与推送
	hub := session.NewHub()

	// 应用服务
	gameCfg := config.Conf.Game
	actionService := gameapp.NewActionService(playerRepo, buildingRepo, unitRepo,
		hub, baseLogger, time.Now, gameCfg.AccelerationOrDefault())
	stateService := gameapp.NewStateService(playerRepo, buildingRepo, unitRepo, mapResourceRepo)
	initService := gameapp.NewInitService(buildingRepo, unitRepo, mapResourceRepo, baseLogger, time.Now)
	authService := accountapp.NewAuthService(accountRepo, playerRepo, initService,
		security.HashPassword, security.CheckPassword, security.Award)

	// HTTP
	serverCfg := config.Conf.HTTPServer
	host := serverCfg.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverCfg.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)

	api := httpServer.Group().Group("/api")
	authed := api.Group("", middleware.Auth())

	authHandler := accounthandler.NewAuth(authService, baseLogger)
	authHandler.RegisterRoutes(api, authed)
	gameHandler := gamehandler.NewGame(actionService, stateService, baseLogger)
	gameHandler.RegisterRoutes(authed)

	// WS
	wsRouter := ws.NewRouter(baseLogger)
	gamehandler.NewGameWS(stateService, baseLogger).Register(wsRouter)
	wsServer := ws.NewServer(wsRouter, hub, gameCfg.NeedSecret, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))

	// 进度引擎
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.New(buildingRepo, unitRepo, playerRepo, hub, baseLogger,
		time.Duration(gameCfg.TickIntervalOrDefault())*time.Millisecond)
	go eng.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("http server start failed: %w", err)
			return
		}
		errCh <- nil
	}()
	logs.Info("server started", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
