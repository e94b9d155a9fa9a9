// internal/models/review.go
package models

// ReviewAcknowledgements is the step 8 entity. All four acknowledgements
// must be affirmed before submission.
type ReviewAcknowledgements struct {
	Truthfulness         bool   `json:"truthfulness"`
	ChangeReporting      bool   `json:"changeReporting"`
	Penalties            bool   `json:"penalties"`
	ConsentToDataSharing bool   `json:"consentToDataSharing"`
	CompletedBySelf      bool   `json:"completedBySelf"`
	CompletedByDetails   string `json:"completedByDetails,omitempty"`
	Signature            string `json:"signature"`
	Date                 string `json:"date"`
}
