package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
	"github.com/frherrer/GoE2E-FlowGen/internal/parser"
)

var _ = Describe("Parser", func() {
	Describe("Parse", func() {
		It("should produce one step per action in the same order", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "navigate", Target: "https://x.test"},
					{Kind: "click", Target: "#submit"},
					{Kind: "type", Target: "#email", Value: "a@b.test"},
					{Kind: "assert", ElementText: "Done"},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps).To(HaveLen(4))
			for i, step := range steps {
				Expect(step.Index).To(Equal(i))
				Expect(step.Kind).To(Equal(exec.Actions[i].Kind))
			}
		})

		It("should be deterministic for the same input", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "navigate", Target: "https://x.test", Timestamp: 1700000000.5},
					{Kind: "click", Selectors: []domain.RawSelector{
						{Type: "css", Value: "#go", Priority: "3"},
						{Type: "xpath", Value: "//a", Priority: 1},
					}},
				},
			}

			Expect(parser.Parse(exec)).To(Equal(parser.Parse(exec)))
		})

		It("should preserve unknown kinds with a passthrough rule", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "navigate", Target: "https://x.test"},
					{Kind: "drag_and_drop", Target: map[string]any{"from": "#a", "to": "#b"}},
					{Kind: "click", Target: "#ok"},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps).To(HaveLen(3))
			Expect(steps[1].Kind).To(Equal("drag_and_drop"))
			Expect(steps[1].Recognized).To(BeFalse())
			Expect(steps[1].Target).To(ContainSubstring(`"from":"#a"`))
			Expect(steps[0].Recognized).To(BeTrue())
			Expect(steps[2].Recognized).To(BeTrue())
		})

		It("should fall back to the navigation output URL when target is missing", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "navigate", Output: &domain.ActionOutput{URL: "https://fallback.test"}},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps[0].Target).To(Equal("https://fallback.test"))
		})

		It("should use the best-priority selector for element kinds without a target", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "click", Selectors: []domain.RawSelector{
						{Type: "xpath", Value: "//button[@id='go']", Priority: 2},
						{Type: "css", Value: "#go", Priority: 1},
					}},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps[0].Target).To(Equal("css=#go"))
		})

		It("should normalize numeric timestamps to strings", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "click", Target: "#a", Timestamp: 1700000000.25},
					{Kind: "click", Target: "#b", Timestamp: "2026-03-14T09:00:05Z"},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps[0].Timestamp).To(Equal("1700000000.25"))
			Expect(steps[1].Timestamp).To(Equal("2026-03-14T09:00:05Z"))
		})

		It("should fall back to element text for the assert value", func() {
			exec := &domain.RawExecution{
				Actions: []domain.RawAction{
					{Kind: "assert", ElementText: "Welcome back"},
					{Kind: "assert", Value: "200", ElementText: "ignored"},
				},
			}

			steps := parser.Parse(exec)
			Expect(steps[0].Value).To(Equal("Welcome back"))
			Expect(steps[1].Value).To(Equal("200"))
		})
	})

	Describe("NormalizeSelectors", func() {
		It("should coerce priorities and sort ascending", func() {
			selectors := []domain.RawSelector{
				{Type: "text", Value: "Sign in", Priority: "not-a-number"},
				{Type: "xpath", Value: "//a", Priority: "2"},
				{Type: "css", Value: "#go", Priority: 1},
			}

			normalized := parser.NormalizeSelectors(selectors)
			Expect(normalized).To(HaveLen(3))
			Expect(normalized[0]).To(Equal(domain.Selector{Type: "css", Value: "#go", Priority: 1}))
			Expect(normalized[1]).To(Equal(domain.Selector{Type: "xpath", Value: "//a", Priority: 2}))
			Expect(normalized[2].Priority).To(Equal(999))
		})

		It("should return nil for empty input", func() {
			Expect(parser.NormalizeSelectors(nil)).To(BeNil())
		})
	})
})
