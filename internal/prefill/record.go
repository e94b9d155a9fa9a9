// internal/prefill/record.go

// Package prefill is the document-scan collaborator: given opaque uploaded
// files it asynchronously produces a sparse record of applicant fields. The
// scanner here is a mock with simulated latency; results are cached by file
// digest so re-uploading the same document is instant.
package prefill

import (
	"benefits-wizard/internal/forms/field"
	"benefits-wizard/internal/models"
)

// Record is a partial applicant-info payload extracted from documents. Every
// field is optional; only keys the scanner actually found are set.
type Record struct {
	FirstName     *string `json:"firstName,omitempty"`
	MiddleName    *string `json:"middleName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	DateOfBirth   *string `json:"dateOfBirth,omitempty"`
	SSN           *string `json:"ssn,omitempty"`
	StreetAddress *string `json:"streetAddress,omitempty"`
	City          *string `json:"city,omitempty"`
	Zip           *string `json:"zip,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// IsEmpty reports whether the scan found nothing.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// merge overlays other on top of r, keeping r's value where other has none.
// Later files win when both set the same key.
func (r Record) merge(other Record) Record {
	out := r
	if other.FirstName != nil {
		out.FirstName = other.FirstName
	}
	if other.MiddleName != nil {
		out.MiddleName = other.MiddleName
	}
	if other.LastName != nil {
		out.LastName = other.LastName
	}
	if other.DateOfBirth != nil {
		out.DateOfBirth = other.DateOfBirth
	}
	if other.SSN != nil {
		out.SSN = other.SSN
	}
	if other.StreetAddress != nil {
		out.StreetAddress = other.StreetAddress
	}
	if other.City != nil {
		out.City = other.City
	}
	if other.Zip != nil {
		out.Zip = other.Zip
	}
	if other.Email != nil {
		out.Email = other.Email
	}
	if other.Phone != nil {
		out.Phone = other.Phone
	}
	return out
}

// ApplyToApplicant merges the record into an applicant draft: only keys
// present in the record are written, everything else in the draft is left
// untouched. Scanned SSNs are normalized to the XXX-XX-XXXX format.
func (r Record) ApplyToApplicant(draft models.ApplicantInfo) models.ApplicantInfo {
	out := draft
	if r.FirstName != nil {
		out.Name.First = *r.FirstName
	}
	if r.MiddleName != nil {
		out.Name.Middle = *r.MiddleName
	}
	if r.LastName != nil {
		out.Name.Last = *r.LastName
	}
	if r.StreetAddress != nil {
		out.StreetAddress = *r.StreetAddress
	}
	if r.City != nil {
		out.City = *r.City
	}
	if r.Zip != nil {
		out.Zip = *r.Zip
	}
	if r.Email != nil {
		out.Email = *r.Email
	}
	if r.Phone != nil {
		out.PrimaryPhone = *r.Phone
	}
	return out
}

// ApplyToMember merges the record into a household-member draft; used when a
// document is scanned while adding a member.
func (r Record) ApplyToMember(draft models.HouseholdMember) models.HouseholdMember {
	out := draft
	if r.FirstName != nil {
		out.Name.First = *r.FirstName
	}
	if r.MiddleName != nil {
		out.Name.Middle = *r.MiddleName
	}
	if r.LastName != nil {
		out.Name.Last = *r.LastName
	}
	if r.DateOfBirth != nil {
		out.DateOfBirth = *r.DateOfBirth
	}
	if r.SSN != nil {
		out.SSN = field.NormalizeSSN(*r.SSN)
	}
	return out
}
