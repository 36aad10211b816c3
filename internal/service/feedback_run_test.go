package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/service"
	"radbytes.org/pulse/internal/store"
)

var _ = Describe("FeedbackRunService", func() {
	var (
		ctx      context.Context
		users    *mockUserStore
		runs     *mockPipelineRunStore
		producer *mockProducer
		svc      service.FeedbackRunService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		runs = &mockPipelineRunStore{}
		producer = &mockProducer{}
		svc = service.NewFeedbackRunService(users, runs, producer)
	})

	Describe("Trigger", func() {
		It("records a queued run and enqueues a task for it", func() {
			run, err := svc.Trigger(ctx, 42)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.ID).NotTo(BeZero())
			Expect(run.Status).To(Equal(model.PipelineRunStatusQueued))
			Expect(runs.created).To(HaveLen(1))

			Expect(producer.tasks).To(HaveLen(1))
			task := producer.tasks[0]
			Expect(task.TaskType).To(Equal(queue.TaskTypeFeedbackRun))
			Expect(task.RunID).To(Equal(run.ID))
			Expect(task.UserID).To(Equal(int64(42)))
			Expect(task.UserName).To(Equal("Jane Doe"))
			Expect(task.TraceID).To(BeNil())
		})

		It("does not create a run for an unknown user", func() {
			users.getByIDFn = func(context.Context, int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Trigger(ctx, 42)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
			Expect(runs.created).To(BeEmpty())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("marks the run failed when the queue is unreachable", func() {
			producer.enqueueFn = func(context.Context, queue.Task) error {
				return errors.New("dial tcp: connection refused")
			}

			_, err := svc.Trigger(ctx, 42)

			Expect(err).To(MatchError(ContainSubstring("enqueueing feedback run")))
			Expect(runs.finished).To(Equal([]model.PipelineRunStatus{model.PipelineRunStatusFailed}))
		})
	})

	Describe("Get", func() {
		It("passes not found through", func() {
			_, err := svc.Get(ctx, 5)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})

		It("returns the stored run", func() {
			runs.getFn = func(_ context.Context, id int64) (*model.PipelineRun, error) {
				return &model.PipelineRun{ID: id, Status: model.PipelineRunStatusSucceeded}, nil
			}

			run, err := svc.Get(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Done()).To(BeTrue())
		})
	})
})
