package models

// Identity is the principal a booking is written under. Anonymous identities
// are minted on first use and reused for the remainder of the session.
type Identity struct {
	UID         string `json:"uid"`
	IsAnonymous bool   `json:"isAnonymous"`
}
