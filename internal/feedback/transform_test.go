package feedback_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
)

var _ = Describe("Transform", func() {
	var coached feedback.CoachResult

	BeforeEach(func() {
		coached = feedback.CoachResult{
			Employee: []feedback.CategoryPlans{
				{Category: "Work Style Preferences", Plans: []feedback.ActionPlan{{ActionTitle: "Protect Your Focus Time", Actions: []string{"Block mornings"}}}},
				{Category: "Career Growth", Plans: []feedback.ActionPlan{
					{ActionTitle: "Map Your Next Role", Actions: []string{"List target roles", "Ask for feedback"}},
					{ActionTitle: "Map Your Next Role", Actions: nil},
				}},
			},
			Manager: []feedback.CategoryPlans{
				{Category: "Team Development", Plans: []feedback.ActionPlan{{ActionTitle: "Fund Jane's Certification", Actions: []string{"Approve budget"}}}},
			},
		}
	})

	It("keeps category order and marks every item pending review", func() {
		result := feedback.Transform(coached, 42, "Jane Doe")

		Expect(result.Employee.ActingUserID).To(Equal(int64(42)))
		Expect(result.Employee.ActingUserName).To(Equal("Jane Doe"))
		Expect(result.Employee.CategorizedActionItems).To(HaveLen(2))
		Expect(result.Employee.CategorizedActionItems[0].Category).To(Equal("Work Style Preferences"))
		Expect(result.Employee.CategorizedActionItems[1].Category).To(Equal("Career Growth"))

		for _, view := range []feedback.PersistedView{result.Employee, result.Manager} {
			for _, cat := range view.CategorizedActionItems {
				for _, item := range cat.ActionItems {
					Expect(item.ActionStatus).To(Equal(model.ActionStatusPendingReview))
					Expect(item.ProgressNotes).To(BeEmpty())
					Expect(item.ProgressNotes).NotTo(BeNil())
					Expect(item.ActionPlan).NotTo(BeNil())
				}
			}
		}
	})

	It("does not deduplicate identical titles", func() {
		result := feedback.Transform(coached, 42, "Jane Doe")

		Expect(result.Employee.CategorizedActionItems[1].ActionItems).To(HaveLen(2))
	})

	It("is idempotent", func() {
		first := feedback.Transform(coached, 42, "Jane Doe")
		second := feedback.Transform(coached, 42, "Jane Doe")

		Expect(second).To(Equal(first))
	})

	It("serializes empty lists as [] rather than null", func() {
		result := feedback.Transform(coached, 42, "Jane Doe")

		raw, err := json.Marshal(result.Employee.CategorizedActionItems)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"progress_notes":[]`))
		Expect(string(raw)).To(ContainSubstring(`"action_plan":[]`))
		Expect(string(raw)).NotTo(ContainSubstring("null"))
	})

	It("does not share slices with its input", func() {
		result := feedback.Transform(coached, 42, "Jane Doe")
		result.Manager.CategorizedActionItems[0].ActionItems[0].ActionPlan[0] = "changed"

		Expect(coached.Manager[0].Plans[0].Actions[0]).To(Equal("Approve budget"))
	})

	It("assigns a target when turned into a plan", func() {
		result := feedback.Transform(coached, 42, "Jane Doe")

		plan := result.Manager.Plan(1)
		Expect(plan.TargetUserID).To(Equal(int64(1)))
		Expect(plan.ActingUserID).To(Equal(int64(42)))
		Expect(plan.CategorizedActionItems).To(Equal(result.Manager.CategorizedActionItems))
	})
})
