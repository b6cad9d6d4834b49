package validation_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errors "github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

type sampleDTO struct {
	Name     string  `json:"name" validate:"required"`
	Kind     string  `json:"kind" validate:"omitempty,oneof=income expense"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Count    int64   `json:"count"`
}

type companyDTO struct {
	Company string  `json:"company" validate:"required,notblank"`
	Label   *string `json:"label" validate:"omitnil,notblank"`
}

func fieldErrors(appErr *errors.AppError) []errors.ValidationError {
	details, ok := appErr.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors
}

var _ = Describe("Validation", func() {
	Describe("Struct", func() {
		It("accepts a valid value", func() {
			Expect(validation.Struct(sampleDTO{Name: "a", Password: "secret1"})).To(BeNil())
		})

		It("reports every failing field by JSON name", func() {
			bad := "not-an-email"
			appErr := validation.Struct(sampleDTO{Kind: "gift", Password: "123", Email: &bad})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))

			errs := fieldErrors(appErr)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("name", "kind", "password", "email"))
			Expect(errs[0].Message).To(Equal("name is required"))
			Expect(errs[0].Code).To(Equal("REQUIRED"))
		})

		It("rejects whitespace-only text", func() {
			blank := "  \t"
			appErr := validation.Struct(companyDTO{Company: "   ", Label: &blank})
			Expect(appErr).NotTo(BeNil())

			errs := fieldErrors(appErr)
			Expect(errs).To(HaveLen(2))
			Expect(errs[0].Field).To(Equal("company"))
			Expect(errs[0].Message).To(Equal("company must not be blank"))
			Expect(errs[0].Code).To(Equal("NOTBLANK"))
			Expect(errs[1].Field).To(Equal("label"))

			Expect(validation.Struct(companyDTO{Company: " Acme "})).To(BeNil())
		})
	})

	Describe("Decode", func() {
		It("decodes a valid body", func() {
			var dto sampleDTO
			Expect(validation.Decode(strings.NewReader(`{"name":"a","count":3}`), &dto)).To(BeNil())
			Expect(dto.Count).To(Equal(int64(3)))
		})

		It("reports a type mismatch against the field", func() {
			var dto sampleDTO
			appErr := validation.Decode(strings.NewReader(`{"name":42}`), &dto)
			Expect(appErr).NotTo(BeNil())
			errs := fieldErrors(appErr)
			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Field).To(Equal("name"))
			Expect(errs[0].Message).To(Equal("name must be of type string"))
		})

		It("rejects malformed and empty bodies", func() {
			var dto sampleDTO
			Expect(validation.Decode(strings.NewReader(`{"name":`), &dto).Code).To(Equal(errors.ErrCodeInvalidBody))
			Expect(validation.Decode(strings.NewReader(``), &dto).Code).To(Equal(errors.ErrCodeInvalidBody))
			Expect(validation.Decode(strings.NewReader(`[1,2]`), &dto).Code).To(Equal(errors.ErrCodeInvalidBody))
		})

		It("reports a body past the read limit as too large", func() {
			var dto sampleDTO
			body := http.MaxBytesReader(httptest.NewRecorder(),
				io.NopCloser(strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`)), 16)

			appErr := validation.Decode(body, &dto)
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusRequestEntityTooLarge))
			Expect(appErr.Code).To(Equal(errors.ErrCodeBodyTooLarge))
			Expect(appErr.Message).To(Equal("request body exceeds 16 bytes"))
		})
	})
})
