package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/common/llm"
)

var _ = Describe("SanitizeName", func() {
	DescribeTable("sanitizes display names for OpenAI name parameter",
		func(input, expected string) {
			Expect(llm.SanitizeName(input)).To(Equal(expected))
		},
		Entry("valid name unchanged", "alice", "alice"),
		Entry("dots replaced with underscore", "alice.smith", "alice_smith"),
		Entry("hyphens preserved", "alice-dev", "alice-dev"),
		Entry("spaces replaced", "Jane Doe", "Jane_Doe"),
		Entry("apostrophe replaced", "Conan O'Brien", "Conan_O_Brien"),
		Entry("long name truncated to 64 chars", strings.Repeat("a", 100), strings.Repeat("a", 64)),
		Entry("empty string unchanged", "", ""),
	)
})

var _ = Describe("New", func() {
	It("requires an API key", func() {
		_, err := llm.New(llm.Config{})
		Expect(err).To(HaveOccurred())
	})

	It("defaults the model", func() {
		c, err := llm.New(llm.Config{APIKey: "sk-test"})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Model()).To(Equal("gpt-4o-mini"))
	})
})

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Name    string `json:"name"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 5, "total_tokens": 8},
	})
	return string(body)
}

var _ = Describe("client", func() {
	var (
		server   *httptest.Server
		captured capturedRequest
		reply    string
		status   int
		c        llm.Client
	)

	BeforeEach(func() {
		captured = capturedRequest{}
		reply = completionBody("FINDING: more training")
		status = http.StatusOK

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &captured)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(reply))
		}))
		DeferCleanup(server.Close)

		var err error
		c, err = llm.New(llm.Config{APIKey: "sk-test", BaseURL: server.URL + "/", Model: "gpt-4"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("sends a single user message and returns the text", func() {
		out, err := c.Complete(context.Background(), "extract findings")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("FINDING: more training"))
		Expect(captured.Model).To(Equal("gpt-4"))
		Expect(captured.Messages).To(HaveLen(1))
		Expect(captured.Messages[0].Role).To(Equal("user"))
		Expect(captured.Messages[0].Content).To(Equal("extract findings"))
	})

	It("decodes structured output into the result", func() {
		reply = completionBody(`{"findings":["a","b"]}`)

		var result struct {
			Findings []string `json:"findings"`
		}
		resp, err := c.Chat(context.Background(), llm.Request{
			SystemPrompt: "sys",
			UserPrompt:   "user",
			SchemaName:   "findings",
			Schema:       llm.GenerateSchema[struct{ Findings []string }](),
		}, &result)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Findings).To(Equal([]string{"a", "b"}))
		Expect(resp.PromptTokens).To(Equal(3))
		Expect(resp.CompletionTokens).To(Equal(5))
		Expect(captured.Messages).To(HaveLen(2))
		Expect(captured.ResponseFormat).NotTo(BeNil())
		Expect(captured.ResponseFormat.Type).To(Equal("json_schema"))
	})

	It("carries roles and participant names through a conversation", func() {
		reply = completionBody("Sounds like a busy week!")

		out, err := c.Converse(context.Background(), []llm.Message{
			{Role: llm.RoleSystem, Content: "be nice"},
			{Role: llm.RoleAssistant, Content: "Hey!"},
			{Role: llm.RoleUser, Name: "Jane_Doe", Content: "busy"},
		}, llm.Temp(0.2))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Sounds like a busy week!"))
		Expect(captured.Messages).To(HaveLen(3))
		Expect(captured.Messages[2].Name).To(Equal("Jane_Doe"))
	})

	It("reports an empty choice list as an error", func() {
		reply = `{"id":"x","object":"chat.completion","choices":[],"usage":{}}`

		_, err := c.Complete(context.Background(), "hi")
		Expect(err).To(MatchError(llm.ErrNoChoices))
	})

	It("surfaces server errors as retryable", func() {
		status = http.StatusServiceUnavailable
		reply = `{"error":{"message":"overloaded","type":"server_error"}}`

		_, err := c.Complete(context.Background(), "hi")
		Expect(err).To(HaveOccurred())
		Expect(llm.IsRetryable(context.Background(), err)).To(BeTrue())
	})

	It("treats bad requests as permanent", func() {
		status = http.StatusBadRequest
		reply = `{"error":{"message":"bad","type":"invalid_request_error"}}`

		_, err := c.Complete(context.Background(), "hi")
		Expect(err).To(HaveOccurred())
		Expect(llm.IsRetryable(context.Background(), err)).To(BeFalse())
	})
})

var _ = Describe("IsRetryable", func() {
	It("is false for nil", func() {
		Expect(llm.IsRetryable(context.Background(), nil)).To(BeFalse())
	})

	It("is false for cancellation", func() {
		Expect(llm.IsRetryable(context.Background(), context.Canceled)).To(BeFalse())
	})

	It("is true for deadline exceeded", func() {
		err := errors.Join(errors.New("call"), context.DeadlineExceeded)
		Expect(llm.IsRetryable(context.Background(), err)).To(BeTrue())
	})
})

type countingClient struct {
	llm.Client
	calls atomic.Int32
}

func (c *countingClient) Complete(_ context.Context, prompt string) (string, error) {
	c.calls.Add(1)
	return prompt, nil
}

var _ = Describe("WithRateLimit", func() {
	It("returns the client untouched without a limiter", func() {
		inner := &countingClient{}
		Expect(llm.WithRateLimit(inner, nil)).To(BeIdenticalTo(inner))
	})

	It("passes calls through once a token is available", func() {
		inner := &countingClient{}
		c := llm.WithRateLimit(inner, llm.NewLimiter(0, 0))

		out, err := c.Complete(context.Background(), "ping")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("ping"))
		Expect(inner.calls.Load()).To(Equal(int32(1)))
	})

	It("gives up when the context ends before a token frees up", func() {
		inner := &countingClient{}
		c := llm.WithRateLimit(inner, llm.NewLimiter(0.001, 1))

		_, err := c.Complete(context.Background(), "first")
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = c.Complete(ctx, "second")
		Expect(err).To(HaveOccurred())
		Expect(inner.calls.Load()).To(Equal(int32(1)))
	})
})
