package models

import "time"

type User struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// UserPatch carries the fields of a partial user update. Nil fields keep the stored value.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Apply returns a new snapshot of u with the non-nil patch fields merged in.
func (p UserPatch) Apply(u User) User {
	out := u
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	return out
}
