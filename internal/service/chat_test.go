package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/service"
	"radbytes.org/pulse/internal/store"
)

var _ = Describe("ChatService", func() {
	var (
		ctx   context.Context
		users *mockUserStore
		chats *mockChatStore
		chat  *mockChatModel
		svc   service.ChatService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		chats = &mockChatStore{}
		chat = &mockChatModel{}
		svc = service.NewChatService(users, chats, chat)
	})

	Describe("Send", func() {
		It("stores both turns and returns the assistant reply", func() {
			reply, err := svc.Send(ctx, 42, "My sprint was rough.")

			Expect(err).NotTo(HaveOccurred())
			Expect(reply.IsAI).To(BeTrue())
			Expect(reply.Message).To(Equal("Tell me more."))
			Expect(reply.UserID).To(Equal(int64(42)))

			Expect(chats.messages).To(HaveLen(2))
			Expect(chats.messages[0].IsAI).To(BeFalse())
			Expect(chats.messages[0].Message).To(Equal("My sprint was rough."))
			Expect(chats.messages[1].ID).To(Equal(reply.ID))
		})

		It("opens the prompt with the system context and greeting", func() {
			_, err := svc.Send(ctx, 42, "Hi")
			Expect(err).NotTo(HaveOccurred())

			Expect(chat.calls).To(HaveLen(1))
			prompt := chat.calls[0]
			Expect(prompt).To(HaveLen(3))
			Expect(prompt[0].Role).To(Equal(llm.RoleSystem))
			Expect(prompt[0].Content).To(ContainSubstring("helps employees discuss their work experiences"))
			Expect(prompt[1]).To(Equal(llm.Message{Role: llm.RoleAssistant, Content: service.Greeting}))
			Expect(prompt[2]).To(Equal(llm.Message{Role: llm.RoleUser, Name: "Jane_Doe", Content: "Hi"}))
			Expect(*chat.temps[0]).To(Equal(0.6))
		})

		It("rebuilds context from the stored conversation on every turn", func() {
			chats.messages = []model.ChatMessage{
				{ID: 1, UserID: 42, Message: "Deadlines keep moving."},
				{ID: 2, UserID: 42, Message: "How does that affect you?", IsAI: true},
				{ID: 3, UserID: 7, Message: "someone else"},
			}

			_, err := svc.Send(ctx, 42, "I work weekends.")
			Expect(err).NotTo(HaveOccurred())

			prompt := chat.calls[0]
			Expect(prompt).To(HaveLen(5))
			Expect(prompt[2].Content).To(Equal("Deadlines keep moving."))
			Expect(prompt[3]).To(Equal(llm.Message{Role: llm.RoleAssistant, Content: "How does that affect you?"}))
			Expect(prompt[4].Content).To(Equal("I work weekends."))
		})

		It("keeps the employee turn when the model fails", func() {
			chat.converseFn = func(context.Context, []llm.Message, *float64) (string, error) {
				return "", errors.New("upstream 503")
			}

			_, err := svc.Send(ctx, 42, "Hello?")

			Expect(err).To(MatchError(ContainSubstring("generating reply: upstream 503")))
			Expect(chats.messages).To(HaveLen(1))
			Expect(chats.messages[0].IsAI).To(BeFalse())
		})

		It("rejects unknown users before calling the model", func() {
			users.getByIDFn = func(context.Context, int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Send(ctx, 42, "Hello")

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
			Expect(chat.calls).To(BeEmpty())
			Expect(chats.messages).To(BeEmpty())
		})

		It("reports chat as unavailable without a model", func() {
			svc = service.NewChatService(users, chats, nil)

			_, err := svc.Send(ctx, 42, "Hello")

			Expect(err).To(MatchError(service.ErrChatUnavailable))
		})
	})

	Describe("Conversation", func() {
		It("returns the user's messages in order", func() {
			chats.messages = []model.ChatMessage{
				{ID: 1, UserID: 42, Message: "first"},
				{ID: 2, UserID: 42, Message: "second", IsAI: true},
			}

			msgs, err := svc.Conversation(ctx, 42)

			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].Message).To(Equal("first"))
		})

		It("propagates store failures", func() {
			chats.listErr = errors.New("pool closed")

			_, err := svc.Conversation(ctx, 42)

			Expect(err).To(MatchError(ContainSubstring("pool closed")))
		})
	})
})
