package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/core/config"
)

var _ = Describe("Load", func() {
	setEnv := func(key, value string) {
		prev, had := os.LookupEnv(key)
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}

	BeforeEach(func() {
		setEnv("PULSE_ENV", "test")
	})

	It("falls back to defaults for the server", func() {
		cfg, err := config.Load(config.ServiceTypeServer)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Port).To(Equal("8080"))
		Expect(cfg.Feedback.ManagerUserID).To(Equal(int64(1)))
		Expect(cfg.Pipeline.RedisStream).To(Equal("pulse_feedback_runs"))
		Expect(cfg.Worker.MaxAttempts).To(Equal(3))
	})

	It("shares OPENAI_API_KEY across LLM configs", func() {
		setEnv("OPENAI_API_KEY", "sk-test")

		cfg, err := config.Load(config.ServiceTypeWorker)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AnalysisLLM.APIKey).To(Equal("sk-test"))
		Expect(cfg.CategorizerLLM.APIKey).To(Equal("sk-test"))
		Expect(cfg.ChatLLM.APIKey).To(Equal("sk-test"))
	})

	It("parses durations and booleans", func() {
		setEnv("OPENAI_API_KEY", "sk-test")
		setEnv("LLM_CALL_TIMEOUT", "5s")
		setEnv("FEEDBACK_STRUCTURED_FINDINGS", "true")
		setEnv("MANAGER_USER_ID", "42")

		cfg, err := config.Load(config.ServiceTypeWorker)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AnalysisLLM.CallTimeout).To(Equal(5 * time.Second))
		Expect(cfg.Feedback.StructuredFinding).To(BeTrue())
		Expect(cfg.Feedback.ManagerUserID).To(Equal(int64(42)))
	})

	It("requires an LLM key for the worker", func() {
		setEnv("OPENAI_API_KEY", "")
		setEnv("ANALYSIS_LLM_API_KEY", "")

		_, err := config.Load(config.ServiceTypeWorker)

		Expect(err).To(MatchError(ContainSubstring("API_KEY")))
	})
})
