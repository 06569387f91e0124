package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// ParseRole returns the role named by raw, if it is one.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCitizen, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	Points    int                `bson:"points" json:"points"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
