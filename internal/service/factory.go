package service

import (
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/store"
)

type ServicesConfig struct {
	Stores        *store.Stores
	TxRunner      TxRunner
	ChatModel     ChatModel // nil disables chat replies
	RunProducer   queue.Producer
	ManagerUserID int64
}

type Services struct {
	stores        *store.Stores
	txRunner      TxRunner
	chatModel     ChatModel
	runProducer   queue.Producer
	managerUserID int64
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		stores:        cfg.Stores,
		txRunner:      cfg.TxRunner,
		chatModel:     cfg.ChatModel,
		runProducer:   cfg.RunProducer,
		managerUserID: cfg.ManagerUserID,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.txRunner)
}

func (s *Services) Chats() ChatService {
	return NewChatService(s.stores.Users(), s.stores.Chats(), s.chatModel)
}

func (s *Services) Plans() PlanService {
	return NewPlanService(s.stores.Users(), s.stores.Plans(), s.managerUserID)
}

func (s *Services) FeedbackRuns() FeedbackRunService {
	return NewFeedbackRunService(s.stores.Users(), s.stores.PipelineRuns(), s.runProducer)
}
