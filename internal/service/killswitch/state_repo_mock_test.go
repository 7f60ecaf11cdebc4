package killswitch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

var _ stateRepo = &stateRepoMock{}

type stateRepoMock struct {
	GetFunc            func(ctx context.Context) (domain.KillSwitchState, error)
	SetDisabledFunc    func(ctx context.Context, adminID uuid.UUID, reason string, at time.Time) error
	SetEnabledFunc     func(ctx context.Context) error
	SetMaintenanceFunc func(ctx context.Context, message *string) error

	calls struct {
		Get         []struct{ Ctx context.Context }
		SetDisabled []struct {
			Ctx     context.Context
			AdminID uuid.UUID
			Reason  string
			At      time.Time
		}
		SetEnabled     []struct{ Ctx context.Context }
		SetMaintenance []struct {
			Ctx     context.Context
			Message *string
		}
	}
	lockGet            sync.RWMutex
	lockSetDisabled    sync.RWMutex
	lockSetEnabled     sync.RWMutex
	lockSetMaintenance sync.RWMutex
}

func (mock *stateRepoMock) Get(ctx context.Context) (domain.KillSwitchState, error) {
	if mock.GetFunc == nil {
		panic("stateRepoMock.GetFunc: method is nil but stateRepo.Get was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx)
}

func (mock *stateRepoMock) GetCalls() []struct{ Ctx context.Context } {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *stateRepoMock) SetDisabled(ctx context.Context, adminID uuid.UUID, reason string, at time.Time) error {
	if mock.SetDisabledFunc == nil {
		panic("stateRepoMock.SetDisabledFunc: method is nil but stateRepo.SetDisabled was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AdminID uuid.UUID
		Reason  string
		At      time.Time
	}{Ctx: ctx, AdminID: adminID, Reason: reason, At: at}
	mock.lockSetDisabled.Lock()
	mock.calls.SetDisabled = append(mock.calls.SetDisabled, callInfo)
	mock.lockSetDisabled.Unlock()
	return mock.SetDisabledFunc(ctx, adminID, reason, at)
}

func (mock *stateRepoMock) SetDisabledCalls() []struct {
	Ctx     context.Context
	AdminID uuid.UUID
	Reason  string
	At      time.Time
} {
	mock.lockSetDisabled.RLock()
	calls := mock.calls.SetDisabled
	mock.lockSetDisabled.RUnlock()
	return calls
}

func (mock *stateRepoMock) SetEnabled(ctx context.Context) error {
	if mock.SetEnabledFunc == nil {
		panic("stateRepoMock.SetEnabledFunc: method is nil but stateRepo.SetEnabled was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockSetEnabled.Lock()
	mock.calls.SetEnabled = append(mock.calls.SetEnabled, callInfo)
	mock.lockSetEnabled.Unlock()
	return mock.SetEnabledFunc(ctx)
}

func (mock *stateRepoMock) SetEnabledCalls() []struct{ Ctx context.Context } {
	mock.lockSetEnabled.RLock()
	calls := mock.calls.SetEnabled
	mock.lockSetEnabled.RUnlock()
	return calls
}

func (mock *stateRepoMock) SetMaintenance(ctx context.Context, message *string) error {
	if mock.SetMaintenanceFunc == nil {
		panic("stateRepoMock.SetMaintenanceFunc: method is nil but stateRepo.SetMaintenance was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Message *string
	}{Ctx: ctx, Message: message}
	mock.lockSetMaintenance.Lock()
	mock.calls.SetMaintenance = append(mock.calls.SetMaintenance, callInfo)
	mock.lockSetMaintenance.Unlock()
	return mock.SetMaintenanceFunc(ctx, message)
}

func (mock *stateRepoMock) SetMaintenanceCalls() []struct {
	Ctx     context.Context
	Message *string
} {
	mock.lockSetMaintenance.RLock()
	calls := mock.calls.SetMaintenance
	mock.lockSetMaintenance.RUnlock()
	return calls
}
