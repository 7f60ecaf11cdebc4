package middleware

import (
	"context"
	"sync"

	"github.com/clinicore/delegation/internal/domain"
)

var _ grantValidator = &grantValidatorMock{}

type grantValidatorMock struct {
	ValidateFunc func(ctx context.Context, token string) (domain.Grant, error)

	calls struct {
		Validate []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockValidate sync.RWMutex
}

func (mock *grantValidatorMock) Validate(ctx context.Context, token string) (domain.Grant, error) {
	if mock.ValidateFunc == nil {
		panic("grantValidatorMock.ValidateFunc: method is nil but grantValidator.Validate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(ctx, token)
}

func (mock *grantValidatorMock) ValidateCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
