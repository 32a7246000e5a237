// Package auth carries the per-request caller identity and the JWTs that
// encode it.
package auth

import "github.com/gin-gonic/gin"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleTutor Role = "tutor"
)

const contextKey = "auth.identity"

// Identity is the resolved caller of a request. The zero value is anonymous.
type Identity struct {
	UserID uint
	Role   Role
}

func (i Identity) IsAuthenticated() bool { return i.UserID != 0 }
func (i Identity) IsAdmin() bool         { return i.IsAuthenticated() && i.Role == RoleAdmin }
func (i Identity) IsTutor() bool         { return i.IsAuthenticated() && i.Role == RoleTutor }

// Owns reports whether the caller is the tutor referenced by tutorID.
func (i Identity) Owns(tutorID *uint) bool {
	return i.IsTutor() && tutorID != nil && *tutorID == i.UserID
}

func WithIdentity(c *gin.Context, id Identity) {
	c.Set(contextKey, id)
}

func FromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKey)
	if !ok {
		return Identity{}
	}
	id, _ := v.(Identity)
	return id
}
