package utils

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"logiroute/ms-delivery/pkg/model"
)

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "happy flow: all four classes and 12 chars",
			password: "Delivery#2024",
			wantErr:  false,
		},
		{
			name:     "exactly 12 characters",
			password: "Abcdefgh1!xy",
			wantErr:  false,
		},
		{
			name:     "too short",
			password: "Abc1!xyz",
			wantErr:  true,
		},
		{
			name:     "11 characters",
			password: "Abcdefg1!xy",
			wantErr:  true,
		},
		{
			name:     "missing uppercase",
			password: "delivery#2024",
			wantErr:  true,
		},
		{
			name:     "missing lowercase",
			password: "DELIVERY#2024",
			wantErr:  true,
		},
		{
			name:     "missing digit",
			password: "Delivery#Home",
			wantErr:  true,
		},
		{
			name:     "missing special character",
			password: "Delivery20245",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := VerifyPassword(tt.password); (err != nil) != tt.wantErr {
				t.Errorf("VerifyPassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"merchant@shop.co", true},
		{"first.last+tag@example.com", true},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestCurrentCaller(t *testing.T) {
	id := uuid.MustParse("a354186a-8b2c-43f9-9ff0-3c404833d5a1")

	tests := []struct {
		name    string
		userID  string
		role    string
		want    model.Caller
		wantErr bool
	}{
		{
			name:   "happy flow",
			userID: id.String(),
			role:   "merchant",
			want:   model.Caller{ID: id, Role: model.RoleMerchant},
		},
		{
			name:   "user id with device suffix",
			userID: id.String() + "|web",
			role:   "delivery_person",
			want:   model.Caller{ID: id, Role: model.RoleDeliveryPerson},
		},
		{
			name:    "missing user id",
			role:    "admin",
			wantErr: true,
		},
		{
			name:    "unknown role",
			userID:  id.String(),
			role:    "superuser",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
			req.Header.Set(HeaderUserID, tt.userID)
			req.Header.Set(HeaderUserRole, tt.role)

			got, err := CurrentCaller(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CurrentCaller() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("CurrentCaller() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPermission(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		caller  model.Caller
		roles   []model.Role
		wantErr bool
	}{
		{
			name:   "owner passes",
			caller: model.Caller{ID: owner, Role: model.RoleMerchant},
		},
		{
			name:   "admin passes",
			caller: model.Caller{ID: other, Role: model.RoleAdmin},
			roles:  []model.Role{model.RoleAdmin},
		},
		{
			name:    "other merchant rejected",
			caller:  model.Caller{ID: other, Role: model.RoleMerchant},
			roles:   []model.Role{model.RoleAdmin, model.RoleLogisticsTechnician},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPermission(context.Background(), tt.caller, owner, tt.roles...)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPermission() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
