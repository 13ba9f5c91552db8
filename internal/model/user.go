package model

type User struct {
	ID         string
	Name       string
	Surname    string
	Middlename string
	Login      string
	RoleID     int
}

// DisplayName is the short form shown in table cells.
func (u User) DisplayName() string {
	return u.Name
}

// FullName is the long form used in selection lists: name, surname and
// patronymic when present.
func (u User) FullName() string {
	out := u.Name
	if u.Surname != "" {
		out += " " + u.Surname
	}
	if u.Middlename != "" {
		out += " " + u.Middlename
	}
	return out
}
