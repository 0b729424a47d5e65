package main

import (
	"context"
	"os"

	"Lee_Blog/internal/config"
	"Lee_Blog/internal/logger"
	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/mysql"
	"Lee_Blog/internal/repository/redis"
	"Lee_Blog/internal/router"
	"Lee_Blog/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("BLOG_CONFIG"))
	if err != nil {
		panic(err)
	}

	log, err := logger.NewSugar(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pkg.ConfigureSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatalw("mysql init failed", "error", err)
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.FollowEvent{},
	); err != nil {
		log.Fatalw("auto migrate failed", "error", err)
	}

	// redis 不可用就退化到进程内缓存，只影响首页缓存和找回密码
	var cache middleware.PageCache
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Warnw("redis unavailable, falling back to in-memory page cache", "error", err)
		cache = middleware.NewMemoryCache()
	} else {
		defer redis.Close()
		cache = redis.NewPageCacheRepository()
	}

	// 关注事件：优先投递 Kafka，没配 broker 就打日志
	sender := service.LogSender(log)
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewFollowEventProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer producer.Close()
		sender = producer.SendFollowEvent
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender, log).Run(ctx)

	r := router.InitRouter(mysql.DB, cache, cfg, log)
	log.Infow("listening", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
