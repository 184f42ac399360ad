// Package uuid provides a UUID type that binds from query strings.
//
// gin's form binding cannot unmarshal google/uuid's UUID type from a
// query parameter, so filter structs embed this wrapper instead.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam binds a query string value. The empty string binds to
// the Nil UUID so that optional filter fields can be left unset.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	id, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	u.UUID = id
	return nil
}
