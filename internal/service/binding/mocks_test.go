package binding

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

var (
	_ bindingRepo   = &bindingRepoMock{}
	_ clinicianRepo = &clinicianRepoMock{}
	_ auditRepo     = &auditRepoMock{}
)

type bindingRepoMock struct {
	CreateFunc                func(ctx context.Context, b domain.IdentityBinding) (domain.IdentityBinding, error)
	GetByExternalIdentityFunc func(ctx context.Context, externalIdentity string) (domain.IdentityBinding, error)
	GetByVerificationHashFunc func(ctx context.Context, hash string) (domain.IdentityBinding, error)
	MarkVerifiedFunc          func(ctx context.Context, id uuid.UUID) (domain.IdentityBinding, error)
	RevokeFunc                func(ctx context.Context, id uuid.UUID, reason string) error
	SetDelegationEnabledFunc  func(ctx context.Context, id uuid.UUID, enabled bool) error

	calls struct {
		Create []struct {
			Ctx context.Context
			B   domain.IdentityBinding
		}
		GetByVerificationHash []struct {
			Ctx  context.Context
			Hash string
		}
		MarkVerified []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Revoke []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Reason string
		}
	}
	lock sync.RWMutex
}

func (mock *bindingRepoMock) Create(ctx context.Context, b domain.IdentityBinding) (domain.IdentityBinding, error) {
	if mock.CreateFunc == nil {
		panic("bindingRepoMock.CreateFunc: method is nil but bindingRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Ctx context.Context
		B   domain.IdentityBinding
	}{Ctx: ctx, B: b})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, b)
}

func (mock *bindingRepoMock) CreateCalls() []struct {
	Ctx context.Context
	B   domain.IdentityBinding
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *bindingRepoMock) GetByExternalIdentity(ctx context.Context, externalIdentity string) (domain.IdentityBinding, error) {
	if mock.GetByExternalIdentityFunc == nil {
		panic("bindingRepoMock.GetByExternalIdentityFunc: method is nil but bindingRepo.GetByExternalIdentity was just called")
	}
	return mock.GetByExternalIdentityFunc(ctx, externalIdentity)
}

func (mock *bindingRepoMock) GetByVerificationHash(ctx context.Context, hash string) (domain.IdentityBinding, error) {
	if mock.GetByVerificationHashFunc == nil {
		panic("bindingRepoMock.GetByVerificationHashFunc: method is nil but bindingRepo.GetByVerificationHash was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByVerificationHash = append(mock.calls.GetByVerificationHash, struct {
		Ctx  context.Context
		Hash string
	}{Ctx: ctx, Hash: hash})
	mock.lock.Unlock()
	return mock.GetByVerificationHashFunc(ctx, hash)
}

func (mock *bindingRepoMock) GetByVerificationHashCalls() []struct {
	Ctx  context.Context
	Hash string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByVerificationHash
}

func (mock *bindingRepoMock) MarkVerified(ctx context.Context, id uuid.UUID) (domain.IdentityBinding, error) {
	if mock.MarkVerifiedFunc == nil {
		panic("bindingRepoMock.MarkVerifiedFunc: method is nil but bindingRepo.MarkVerified was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkVerified = append(mock.calls.MarkVerified, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id})
	mock.lock.Unlock()
	return mock.MarkVerifiedFunc(ctx, id)
}

func (mock *bindingRepoMock) Revoke(ctx context.Context, id uuid.UUID, reason string) error {
	if mock.RevokeFunc == nil {
		panic("bindingRepoMock.RevokeFunc: method is nil but bindingRepo.Revoke was just called")
	}
	mock.lock.Lock()
	mock.calls.Revoke = append(mock.calls.Revoke, struct {
		Ctx    context.Context
		ID     uuid.UUID
		Reason string
	}{Ctx: ctx, ID: id, Reason: reason})
	mock.lock.Unlock()
	return mock.RevokeFunc(ctx, id, reason)
}

func (mock *bindingRepoMock) RevokeCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Reason string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Revoke
}

func (mock *bindingRepoMock) SetDelegationEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	if mock.SetDelegationEnabledFunc == nil {
		panic("bindingRepoMock.SetDelegationEnabledFunc: method is nil but bindingRepo.SetDelegationEnabled was just called")
	}
	return mock.SetDelegationEnabledFunc(ctx, id, enabled)
}

type clinicianRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Clinician, error)
}

func (mock *clinicianRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Clinician, error) {
	if mock.GetByIDFunc == nil {
		panic("clinicianRepoMock.GetByIDFunc: method is nil but clinicianRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

type auditRepoMock struct {
	LogFunc func(ctx context.Context, rec domain.AuditRecord) error

	calls struct {
		Log []struct {
			Ctx context.Context
			Rec domain.AuditRecord
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditRepoMock) Log(ctx context.Context, rec domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditRepoMock.LogFunc: method is nil but auditRepo.Log was just called")
	}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, struct {
		Ctx context.Context
		Rec domain.AuditRecord
	}{Ctx: ctx, Rec: rec})
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, rec)
}

func (mock *auditRepoMock) LogCalls() []struct {
	Ctx context.Context
	Rec domain.AuditRecord
} {
	mock.lockLog.RLock()
	defer mock.lockLog.RUnlock()
	return mock.calls.Log
}
