package handler

import (
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Chat     *ChatHandler
	Generate *GenerateHandler
	Suggest  *SuggestHandler
	Session  *SessionHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Chat:     NewChatHandler(svc),
		Generate: NewGenerateHandler(svc),
		Suggest:  NewSuggestHandler(svc),
		Session:  NewSessionHandler(svc),
	}
}
