package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/repository"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/backend"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/chat"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/completion"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/generate"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/polling"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/session"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/suggest"
)

// Services 服务集合
type Services struct {
	Chat     *chat.Service
	Generate *generate.Service
	Suggest  *suggest.Service
	Sessions *session.Manager

	// 外部客户端
	Backend    *backend.Client
	Completion *completion.Client

	// 配置
	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	// 摘要存储：优先 Redis，无 Redis 时退化为进程内存储
	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
	} else {
		store = session.NewMemoryStore()
	}

	var summaryRepo *repository.SummaryRepository
	if repo != nil {
		summaryRepo = repo.Summary
	}
	sessions := session.NewManager(store, summaryRepo)

	backendClient := backend.NewClient(&cfg.Backend)
	poller := polling.NewPoller(backendClient, &cfg.Polling)
	completionClient := completion.NewClient(&cfg.AI)

	return &Services{
		Chat:     chat.NewService(backendClient, poller, sessions),
		Generate: generate.NewService(completionClient, nil),
		Suggest:  suggest.NewService(completionClient),
		Sessions: sessions,

		Backend:    backendClient,
		Completion: completionClient,

		Config: cfg,
	}, nil
}
