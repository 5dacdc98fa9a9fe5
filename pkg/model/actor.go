package model

type Role string

const (
	RoleRider    Role = "rider"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRider, RoleOperator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the caller's identity and role, resolved by the external auth
// collaborator and carried through the request context. Service code receives
// it explicitly; nothing reads identity from ambient state.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsRider() bool    { return a.Role == RoleRider }
func (a Actor) IsOperator() bool { return a.Role == RoleOperator }
func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
