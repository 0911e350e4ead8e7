package entities

type UserProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsStaff      bool   `json:"is_staff"`
	IsResident   bool   `json:"is_resident"`
	IsAltaMember bool   `json:"is_alta_member"`
	IsUstaMember bool   `json:"is_usta_member"`
}

// IsMember reports whether the user qualifies for the member rate.
func (u *UserProfile) IsMember() bool {
	if u == nil {
		return false
	}
	return u.IsResident || u.IsAltaMember || u.IsUstaMember
}

// ResidencyLabel is the status column used by the user activity export.
func (u UserProfile) ResidencyLabel() string {
	if u.IsResident {
		return "Resident"
	}
	return "Non-Resident"
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UsersList struct {
	Users []UserProfile `json:"users"`
}

// User attribute names accepted by the admin user update.
const (
	AttrResident   = "is_resident"
	AttrAltaMember = "is_alta_member"
	AttrUstaMember = "is_usta_member"
)

type UserAttributeUpdate struct {
	Field string
	Value bool
}

func (u UserAttributeUpdate) Valid() bool {
	switch u.Field {
	case AttrResident, AttrAltaMember, AttrUstaMember:
		return true
	}
	return false
}

// Body is the JSON payload sent to the backend: a single boolean field.
func (u UserAttributeUpdate) Body() map[string]bool {
	return map[string]bool{u.Field: u.Value}
}

type UserUpdateResponse struct {
	Message       string          `json:"message"`
	UpdatedFields map[string]bool `json:"updated_fields"`
}
