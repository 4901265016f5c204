package service

import (
	"context"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"logiroute/ms-delivery/pkg/mocks"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/repo"
)

// expectTransaction runs the transaction body against the same mock.
func expectTransaction(m *mocks.MockPGInterface) {
	m.EXPECT().Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, f func(rp repo.PGInterface) error) error {
			return f(m)
		}).AnyTimes()
}

func caller(role model.Role) model.Caller {
	return model.Caller{ID: uuid.New(), Role: role}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
