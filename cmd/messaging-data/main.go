package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MadickAngeCesar/MessagingApp/internal/config"
	"github.com/MadickAngeCesar/MessagingApp/internal/database"
	logpkg "github.com/MadickAngeCesar/MessagingApp/internal/logger"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"
	"github.com/MadickAngeCesar/MessagingApp/internal/service"

	"go.uber.org/zap"
)

// 存储网关引导工具：建表 + 预置房间。数据层本身是进程内库，
// 没有网络面；表示层通过 service 包的接口直接调用
func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	log, err := logpkg.New(cfg.Log.Level, cfg.Log.Format, "messaging-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Bootstrapping messaging-data store")

	// 打开存储网关
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	ctx := context.Background()

	// 建表（幂等）
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}
	log.Info("Schema applied")

	// 预置房间（只增不减）
	roomsRepo := repository.NewPostgresRoomsRepository(db, log)
	usersRepo := repository.NewPostgresUsersRepository(db, log)
	roomSvc := service.NewRoomService(roomsRepo, usersRepo, log)
	if err := roomSvc.Provision(ctx, cfg.Rooms.Total); err != nil {
		log.Fatal("Failed to provision rooms", zap.Error(err))
	}
	log.Info("Rooms provisioned", zap.Int("total", cfg.Rooms.Total))

	log.Info("Store ready")
}
