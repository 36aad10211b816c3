package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/service"
	"radbytes.org/pulse/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc      service.UserService
		users    *mockUserStore
		chats    *mockChatStore
		plans    *mockPlanStore
		runs     *mockPipelineRunStore
		txRunner *mockTxRunner
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		chats = &mockChatStore{}
		plans = &mockPlanStore{}
		runs = &mockPipelineRunStore{}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{users: users, chats: chats, plans: plans, runs: runs}}
		svc = service.NewUserService(users, txRunner)
	})

	Describe("Create", func() {
		Context("when user data is valid", func() {
			It("should create user with generated snowflake ID", func() {
				var capturedUser *model.User
				users.createFn = func(_ context.Context, u *model.User) error {
					capturedUser = u
					return nil
				}

				user, err := svc.Create(ctx, "Jane Doe", false)

				Expect(err).NotTo(HaveOccurred())
				Expect(user).NotTo(BeNil())
				Expect(user.ID).NotTo(BeZero())
				Expect(user.Name).To(Equal("Jane Doe"))
				Expect(user.IsManager).To(BeFalse())

				Expect(capturedUser).NotTo(BeNil())
				Expect(capturedUser.ID).To(Equal(user.ID))
			})

			It("should carry the manager flag", func() {
				user, err := svc.Create(ctx, "Sam Boss", true)

				Expect(err).NotTo(HaveOccurred())
				Expect(user.IsManager).To(BeTrue())
			})
		})

		Context("when the name is already taken", func() {
			It("should return ErrUserExists without inserting", func() {
				users.getByNameFn = func(_ context.Context, name string) (*model.User, error) {
					return &model.User{ID: 7, Name: name}, nil
				}
				inserted := false
				users.createFn = func(_ context.Context, _ *model.User) error {
					inserted = true
					return nil
				}

				user, err := svc.Create(ctx, "Jane Doe", false)

				Expect(errors.Is(err, service.ErrUserExists)).To(BeTrue())
				Expect(user).To(BeNil())
				Expect(inserted).To(BeFalse())
			})
		})

		Context("when the name lookup fails", func() {
			It("should propagate the error", func() {
				users.getByNameFn = func(_ context.Context, _ string) (*model.User, error) {
					return nil, errors.New("connection refused")
				}

				_, err := svc.Create(ctx, "Jane Doe", false)

				Expect(err).To(MatchError(ContainSubstring("looking up user by name: connection refused")))
			})
		})

		Context("when store returns an error", func() {
			It("should propagate the error", func() {
				users.createFn = func(_ context.Context, _ *model.User) error {
					return errors.New("database connection failed")
				}

				user, err := svc.Create(ctx, "Jane Doe", false)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("database connection failed"))
				Expect(user).To(BeNil())
			})
		})
	})

	Describe("Get", func() {
		It("should wrap not found so callers can match it", func() {
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Get(ctx, 7)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should remove chats, feedback runs, authored plans and the user in one transaction", func() {
			var order []string
			chats.deleteByUserFn = func(_ context.Context, userID int64) error {
				Expect(userID).To(Equal(int64(42)))
				order = append(order, "chats")
				return nil
			}
			runs.deleteByUserFn = func(_ context.Context, userID int64) error {
				Expect(userID).To(Equal(int64(42)))
				order = append(order, "runs")
				return nil
			}
			plans.deleteByActingUserFn = func(_ context.Context, userID int64) error {
				Expect(userID).To(Equal(int64(42)))
				order = append(order, "plans")
				return nil
			}
			users.deleteFn = func(_ context.Context, userID int64) error {
				order = append(order, "user")
				return nil
			}

			Expect(svc.Delete(ctx, 42)).To(Succeed())
			Expect(order).To(Equal([]string{"chats", "runs", "plans", "user"}))
			Expect(txRunner.calls).To(Equal(1))
		})

		It("should report a missing user as not found without deleting anything", func() {
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}
			deleted := false
			users.deleteFn = func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			}

			err := svc.Delete(ctx, 42)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
			Expect(deleted).To(BeFalse())
		})

		It("should keep the user when queued runs cannot be removed", func() {
			runs.deleteByUserFn = func(_ context.Context, _ int64) error {
				return errors.New("statement timeout")
			}
			deleted := false
			users.deleteFn = func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			}

			err := svc.Delete(ctx, 42)

			Expect(err).To(MatchError(ContainSubstring("deleting feedback runs: statement timeout")))
			Expect(deleted).To(BeFalse())
		})

		It("should stop at the first failing step", func() {
			plans.deleteByActingUserFn = func(_ context.Context, _ int64) error {
				return errors.New("lock timeout")
			}
			deleted := false
			users.deleteFn = func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			}

			err := svc.Delete(ctx, 42)

			Expect(err).To(MatchError(ContainSubstring("deleting plans: lock timeout")))
			Expect(deleted).To(BeFalse())
		})
	})
})
