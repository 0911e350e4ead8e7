package entities

// Session is the client's record of the authenticated identity. An empty
// Token means unauthenticated; a Token without a User is unauthenticated for
// role routing until a login re-establishes the profile.
type Session struct {
	User  *UserProfile
	Token string
}

func (s Session) HasToken() bool {
	return s.Token != ""
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) IsStaff() bool {
	return s.Authenticated() && s.User.IsStaff
}
