package store

import (
	"radbytes.org/pulse/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Chats() ChatStore {
	return newChatStore(s.queries)
}

func (s *Stores) Plans() PlanStore {
	return newPlanStore(s.queries)
}

func (s *Stores) PipelineRuns() PipelineRunStore {
	return newPipelineRunStore(s.queries)
}
