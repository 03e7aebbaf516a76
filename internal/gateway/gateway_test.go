package gateway_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-FlowGen/internal/gateway"
)

var _ = Describe("Gateway", func() {
	Describe("Stub", func() {
		It("should return responses in order and count calls", func() {
			stub := gateway.NewStub("first", "second")

			text, err := stub.Complete(context.Background(), "p1")
			Expect(err).ToNot(HaveOccurred())
			Expect(text).To(Equal("first"))

			text, err = stub.Complete(context.Background(), "p2")
			Expect(err).ToNot(HaveOccurred())
			Expect(text).To(Equal("second"))

			Expect(stub.Calls()).To(Equal(2))
		})

		It("should fail at the configured call index", func() {
			stub := gateway.NewStub("first", "second", "third")
			stub.FailAt = 1

			_, err := stub.Complete(context.Background(), "p1")
			Expect(err).ToNot(HaveOccurred())

			_, err = stub.Complete(context.Background(), "p2")
			Expect(err).To(HaveOccurred())

			var gwErr *gateway.Error
			Expect(errors.As(err, &gwErr)).To(BeTrue())
		})

		It("should fail when responses are exhausted", func() {
			stub := gateway.NewStub("only")
			_, err := stub.Complete(context.Background(), "p1")
			Expect(err).ToNot(HaveOccurred())

			_, err = stub.Complete(context.Background(), "p2")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Error", func() {
		It("should report kind and attempts", func() {
			err := &gateway.Error{Kind: gateway.KindRateLimited, Attempts: 3, Cause: errors.New("429")}
			Expect(err.Error()).To(ContainSubstring("rate_limited"))
			Expect(err.Error()).To(ContainSubstring("3 attempt"))
			Expect(errors.Unwrap(err)).To(MatchError("429"))
		})

		It("should mark only transient kinds retryable", func() {
			Expect((&gateway.Error{Kind: gateway.KindTimeout}).Retryable()).To(BeTrue())
			Expect((&gateway.Error{Kind: gateway.KindRateLimited}).Retryable()).To(BeTrue())
			Expect((&gateway.Error{Kind: gateway.KindBackend}).Retryable()).To(BeTrue())
			Expect((&gateway.Error{Kind: gateway.KindUnauthorized}).Retryable()).To(BeFalse())
			Expect((&gateway.Error{Kind: gateway.KindMalformedResponse}).Retryable()).To(BeFalse())
		})
	})

	Describe("NewOpenAI", func() {
		It("should reject an empty API key", func() {
			_, err := gateway.NewOpenAI("", gateway.Options{}, logrus.New())
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("OPENAI_API_KEY"))
		})

		It("should apply option defaults", func() {
			gw, err := gateway.NewOpenAI("test-key", gateway.Options{}, logrus.New())
			Expect(err).ToNot(HaveOccurred())
			Expect(gw.Model()).To(Equal(gateway.DefaultModel))
		})
	})
})
