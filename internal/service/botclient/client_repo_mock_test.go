package botclient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

var _ clientRepo = &clientRepoMock{}

type clientRepoMock struct {
	CreateFunc           func(ctx context.Context, c domain.DelegateClient) (domain.DelegateClient, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error)
	UpdateSecretHashFunc func(ctx context.Context, id uuid.UUID, hash string) error
	SuspendFunc          func(ctx context.Context, id uuid.UUID, reason string) error
	ReactivateFunc       func(ctx context.Context, id uuid.UUID) error
	IncrementIssuedFunc  func(ctx context.Context, id uuid.UUID) error
	IncrementWindowFunc  func(ctx context.Context, clientID uuid.UUID, windowStart time.Time) (int, error)
	DecrementWindowFunc  func(ctx context.Context, clientID uuid.UUID, windowStart time.Time) error

	calls struct {
		Create []struct {
			Ctx context.Context
			C   domain.DelegateClient
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateSecretHash []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Hash string
		}
		Suspend []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Reason string
		}
		Reactivate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		IncrementIssued []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		IncrementWindow []struct {
			Ctx         context.Context
			ClientID    uuid.UUID
			WindowStart time.Time
		}
		DecrementWindow []struct {
			Ctx         context.Context
			ClientID    uuid.UUID
			WindowStart time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *clientRepoMock) Create(ctx context.Context, c domain.DelegateClient) (domain.DelegateClient, error) {
	if mock.CreateFunc == nil {
		panic("clientRepoMock.CreateFunc: method is nil but clientRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Ctx context.Context
		C   domain.DelegateClient
	}{Ctx: ctx, C: c})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *clientRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.DelegateClient
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *clientRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error) {
	if mock.GetByIDFunc == nil {
		panic("clientRepoMock.GetByIDFunc: method is nil but clientRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *clientRepoMock) UpdateSecretHash(ctx context.Context, id uuid.UUID, hash string) error {
	if mock.UpdateSecretHashFunc == nil {
		panic("clientRepoMock.UpdateSecretHashFunc: method is nil but clientRepo.UpdateSecretHash was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateSecretHash = append(mock.calls.UpdateSecretHash, struct {
		Ctx  context.Context
		ID   uuid.UUID
		Hash string
	}{Ctx: ctx, ID: id, Hash: hash})
	mock.lock.Unlock()
	return mock.UpdateSecretHashFunc(ctx, id, hash)
}

func (mock *clientRepoMock) UpdateSecretHashCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Hash string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateSecretHash
}

func (mock *clientRepoMock) Suspend(ctx context.Context, id uuid.UUID, reason string) error {
	if mock.SuspendFunc == nil {
		panic("clientRepoMock.SuspendFunc: method is nil but clientRepo.Suspend was just called")
	}
	mock.lock.Lock()
	mock.calls.Suspend = append(mock.calls.Suspend, struct {
		Ctx    context.Context
		ID     uuid.UUID
		Reason string
	}{Ctx: ctx, ID: id, Reason: reason})
	mock.lock.Unlock()
	return mock.SuspendFunc(ctx, id, reason)
}

func (mock *clientRepoMock) SuspendCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Reason string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Suspend
}

func (mock *clientRepoMock) Reactivate(ctx context.Context, id uuid.UUID) error {
	if mock.ReactivateFunc == nil {
		panic("clientRepoMock.ReactivateFunc: method is nil but clientRepo.Reactivate was just called")
	}
	mock.lock.Lock()
	mock.calls.Reactivate = append(mock.calls.Reactivate, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id})
	mock.lock.Unlock()
	return mock.ReactivateFunc(ctx, id)
}

func (mock *clientRepoMock) IncrementIssued(ctx context.Context, id uuid.UUID) error {
	if mock.IncrementIssuedFunc == nil {
		panic("clientRepoMock.IncrementIssuedFunc: method is nil but clientRepo.IncrementIssued was just called")
	}
	mock.lock.Lock()
	mock.calls.IncrementIssued = append(mock.calls.IncrementIssued, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id})
	mock.lock.Unlock()
	return mock.IncrementIssuedFunc(ctx, id)
}

func (mock *clientRepoMock) IncrementIssuedCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.IncrementIssued
}

func (mock *clientRepoMock) IncrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) (int, error) {
	if mock.IncrementWindowFunc == nil {
		panic("clientRepoMock.IncrementWindowFunc: method is nil but clientRepo.IncrementWindow was just called")
	}
	mock.lock.Lock()
	mock.calls.IncrementWindow = append(mock.calls.IncrementWindow, struct {
		Ctx         context.Context
		ClientID    uuid.UUID
		WindowStart time.Time
	}{Ctx: ctx, ClientID: clientID, WindowStart: windowStart})
	mock.lock.Unlock()
	return mock.IncrementWindowFunc(ctx, clientID, windowStart)
}

func (mock *clientRepoMock) IncrementWindowCalls() []struct {
	Ctx         context.Context
	ClientID    uuid.UUID
	WindowStart time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.IncrementWindow
}

func (mock *clientRepoMock) DecrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) error {
	if mock.DecrementWindowFunc == nil {
		panic("clientRepoMock.DecrementWindowFunc: method is nil but clientRepo.DecrementWindow was just called")
	}
	mock.lock.Lock()
	mock.calls.DecrementWindow = append(mock.calls.DecrementWindow, struct {
		Ctx         context.Context
		ClientID    uuid.UUID
		WindowStart time.Time
	}{Ctx: ctx, ClientID: clientID, WindowStart: windowStart})
	mock.lock.Unlock()
	return mock.DecrementWindowFunc(ctx, clientID, windowStart)
}

func (mock *clientRepoMock) DecrementWindowCalls() []struct {
	Ctx         context.Context
	ClientID    uuid.UUID
	WindowStart time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DecrementWindow
}
