package model

import "time"

type User struct {
	Username string `json:"username"`
	ID       int64  `json:"id"` // unix millis at login, doubles as "member since"
}

func (u User) MemberSince() time.Time {
	return time.UnixMilli(u.ID)
}
