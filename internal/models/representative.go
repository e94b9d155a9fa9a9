// internal/models/representative.go
package models

// RepresentativePermissions are the powers granted to an authorized
// representative.
type RepresentativePermissions struct {
	Apply           bool `json:"apply"`
	ReceiveNotices  bool `json:"receiveNotices"`
	UseSNAPBenefits bool `json:"useSnapBenefits"`
}

// AuthorizedRepresentative is the step 7 entity. Contact fields are required
// only when a representative is named.
type AuthorizedRepresentative struct {
	HasRepresentative bool                      `json:"hasRepresentative"`
	Name              string                    `json:"name,omitempty"`
	Address           string                    `json:"address,omitempty"`
	Phone             string                    `json:"phone,omitempty"`
	Permissions       RepresentativePermissions `json:"permissions"`
}
