package feedback_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"radbytes.org/pulse/internal/feedback"
)

var _ = Describe("Taxonomy", func() {
	It("loads the built-in employee taxonomy in order", func() {
		t := feedback.EmployeeTaxonomy()

		Expect(t.Role).To(Equal(feedback.RoleEmployee))
		Expect(t.Names()).To(Equal([]string{
			"Professional Upskilling",
			"Leadership Development",
			"Career Growth",
			"Project Interests",
			"Work Style Preferences",
		}))
		for _, c := range t.Categories {
			Expect(c.Themes).To(HaveLen(8), c.Name)
		}
	})

	It("loads the built-in manager taxonomy in order", func() {
		t := feedback.ManagerTaxonomy()

		Expect(t.Role).To(Equal(feedback.RoleManager))
		Expect(t.Names()).To(Equal([]string{
			"Task Management",
			"Communication Effectiveness",
			"Team Development",
			"Process Improvement",
			"Work Environment",
		}))
	})

	It("keeps the two role taxonomies disjoint", func() {
		manager := feedback.ManagerTaxonomy()
		for _, name := range feedback.EmployeeTaxonomy().Names() {
			Expect(manager.Has(name)).To(BeFalse(), name)
		}
	})

	DescribeTable("keyword matching follows priority order",
		func(t *feedback.Taxonomy, finding, want string) {
			got, ok := t.Match(finding)
			if want == "" {
				Expect(ok).To(BeFalse())
				return
			}
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(want))
		},
		Entry("training is upskilling", feedback.EmployeeTaxonomy(), "Employee wants more Training", "Professional Upskilling"),
		Entry("upskilling outranks leadership", feedback.EmployeeTaxonomy(), "Employee wants leadership training", "Professional Upskilling"),
		Entry("mentor is leadership", feedback.EmployeeTaxonomy(), "Employee would like to mentor juniors", "Leadership Development"),
		Entry("multi-word keyword", feedback.EmployeeTaxonomy(), "Employee described their work style", "Work Style Preferences"),
		Entry("no employee keyword", feedback.EmployeeTaxonomy(), "Employee likes coffee", ""),
		Entry("workload is task management", feedback.ManagerTaxonomy(), "Employee mentioned a heavy workload", "Task Management"),
		Entry("meeting is communication", feedback.ManagerTaxonomy(), "Employee finds the weekly meeting unhelpful", "Communication Effectiveness"),
		Entry("career is team development", feedback.ManagerTaxonomy(), "Employee asked about career paths", "Team Development"),
		Entry("morale is environment", feedback.ManagerTaxonomy(), "Employee noted low morale", "Work Environment"),
	)

	Describe("ParseTaxonomy", func() {
		It("rejects the wrong number of categories", func() {
			_, err := feedback.ParseTaxonomy([]byte(`
role: employee
categories:
  - name: Only One
    themes: [a, b, c, d, e, f, g, h]
    keywords: [x]
`))
			Expect(err).To(MatchError(ContainSubstring("want 5 categories")))
		})

		It("rejects an unknown role", func() {
			_, err := feedback.ParseTaxonomy([]byte("role: intern\n"))
			Expect(err).To(MatchError(ContainSubstring("unknown role")))
		})

		It("rejects malformed yaml", func() {
			_, err := feedback.ParseTaxonomy([]byte("role: [employee"))
			Expect(err).To(HaveOccurred())
		})
	})
})
