package check_zip

import (
	checkZip "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/check_zip"
)

// ZipEligibilityResponse HTTP response model
type ZipEligibilityResponse struct {
	Zip       string  `json:"zip"`
	Eligible  bool    `json:"eligible"`
	FirstDate *string `json:"firstDate,omitempty"`
	Message   string  `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkZip.Response) *ZipEligibilityResponse {
	message := "Same-day delivery is not available in your area yet."
	if resp.Eligible {
		message = "Great news! We deliver to your area."
	}
	return &ZipEligibilityResponse{
		Zip:       resp.Zip,
		Eligible:  resp.Eligible,
		FirstDate: resp.FirstDate,
		Message:   message,
	}
}
