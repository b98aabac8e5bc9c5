package model

// Identity is the minimal view of a validated session. It is produced
// exclusively by the authentication middleware and recomputed per request.
type Identity struct {
	UserID string
	Name   string
}

func (i Identity) IsZero() bool {
	return i.UserID == ""
}
