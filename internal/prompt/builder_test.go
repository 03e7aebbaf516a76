package prompt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
	"github.com/frherrer/GoE2E-FlowGen/internal/prompt"
)

var _ = Describe("Builder", func() {
	step := domain.NormalizedStep{
		Index:       0,
		Kind:        "click",
		Target:      "#submit",
		ElementText: "Sign in",
		ElementTag:  "button",
	}

	categorized := []domain.CategorizedStep{
		{
			NormalizedStep: domain.NormalizedStep{Index: 0, Kind: "navigate", Target: "https://x.test"},
			Category:       domain.CategoryNavigation,
			Enriched:       "Open the login page",
		},
		{
			NormalizedStep: domain.NormalizedStep{Index: 1, Kind: "click", Target: "#submit"},
			Category:       domain.CategoryInteraction,
			Enriched:       "Click the submit button",
		},
	}

	Describe("BuildStepPrompt", func() {
		It("should be byte-identical across calls", func() {
			Expect(prompt.BuildStepPrompt(step)).To(Equal(prompt.BuildStepPrompt(step)))
		})

		It("should enumerate the closed category set", func() {
			p := prompt.BuildStepPrompt(step)
			for _, c := range domain.Categories() {
				Expect(p).To(ContainSubstring(string(c)))
			}
		})

		It("should include the step data", func() {
			p := prompt.BuildStepPrompt(step)
			Expect(p).To(ContainSubstring("Kind: click"))
			Expect(p).To(ContainSubstring("Target: #submit"))
			Expect(p).To(ContainSubstring("Element text: Sign in"))
		})

		It("should mark absent fields as N/A", func() {
			p := prompt.BuildStepPrompt(domain.NormalizedStep{Kind: "wait"})
			Expect(p).To(ContainSubstring("Target: N/A"))
		})

		It("should demand a bare JSON answer", func() {
			p := prompt.BuildStepPrompt(step)
			Expect(p).To(ContainSubstring(`"category"`))
			Expect(p).To(ContainSubstring(`"description"`))
			Expect(p).To(ContainSubstring("ONLY a JSON object"))
		})
	})

	Describe("BuildSummaryPrompt", func() {
		It("should be byte-identical across calls", func() {
			Expect(prompt.BuildSummaryPrompt(categorized)).To(Equal(prompt.BuildSummaryPrompt(categorized)))
		})

		It("should list every step in order with kind and category", func() {
			p := prompt.BuildSummaryPrompt(categorized)
			Expect(p).To(ContainSubstring("1. [navigate/navigation] Open the login page"))
			Expect(p).To(ContainSubstring("2. [click/interaction] Click the submit button"))
		})

		It("should pin the expected step count", func() {
			p := prompt.BuildSummaryPrompt(categorized)
			Expect(p).To(ContainSubstring("step_count must equal 2"))
		})
	})

	Describe("BuildInputSchemaPrompt", func() {
		It("should include feature and scenario context", func() {
			p := prompt.BuildInputSchemaPrompt("Authentication", "Successful login", categorized)
			Expect(p).To(ContainSubstring("Feature: Authentication"))
			Expect(p).To(ContainSubstring("Scenario: Successful login"))
		})

		It("should describe the expected parameters shape", func() {
			p := prompt.BuildInputSchemaPrompt("", "", categorized)
			Expect(p).To(ContainSubstring(`"parameters"`))
			Expect(p).To(ContainSubstring(`"required"`))
		})
	})
})
