package model

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin               Role = "admin"
	RoleMerchant            Role = "merchant"
	RoleDeliveryPerson      Role = "delivery_person"
	RoleLogisticsTechnician Role = "logistics_technician"
)

// Roles lists every role in the order the user_role enum is declared.
var Roles = []Role{RoleAdmin, RoleMerchant, RoleDeliveryPerson, RoleLogisticsTechnician}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role sees every order and user.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleLogisticsTechnician
}

type User struct {
	BaseModel
	Name     string `json:"name" gorm:"column:name;not null;"`
	Email    string `json:"email" gorm:"column:email;type:varchar(320);uniqueIndex;not null;"`
	Password string `json:"-" gorm:"column:password;not null;"`
	Role     Role   `json:"role" sql:"index" gorm:"column:role;type:user_role;not null;default:'merchant'"`
}

func (User) TableName() string {
	return "users"
}

type CreateUserReq struct {
	Name     *string `json:"name" valid:"Required"`
	Email    *string `json:"email" valid:"Required"`
	Password *string `json:"password" valid:"Required"`
	Role     *string `json:"role"`
}

type UpdateUserReq struct {
	ID       uuid.UUID `json:"-"`
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	Role     *string   `json:"role"`
}

type UpdateRoleReq struct {
	ID   uuid.UUID `json:"-"`
	Role *string   `json:"role" valid:"Required"`
}

type UserParam struct {
	Role   string `json:"role" form:"role"`
	Search string `json:"search" form:"search"`
	Pagination
}

type ListUserResponse struct {
	Data []User                 `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

// Caller is the authenticated user as forwarded by the gateway.
type Caller struct {
	ID   uuid.UUID
	Role Role
}
