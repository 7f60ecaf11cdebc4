package delegation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

var (
	_ clientRegistry    = &clientRegistryMock{}
	_ delegatorResolver = &delegatorResolverMock{}
	_ switchReader      = &switchReaderMock{}
	_ auditRepo         = &auditRepoMock{}
	_ issuanceMetrics   = &metricsMock{}
)

type clientRegistryMock struct {
	ValidateCredentialsFunc func(ctx context.Context, clientID uuid.UUID, secret string) (domain.DelegateClient, error)
	ConsumeWindowFunc       func(ctx context.Context, clientID uuid.UUID, limit int, now time.Time) (bool, error)
	ReleaseWindowFunc       func(ctx context.Context, clientID uuid.UUID, now time.Time) error
	RecordIssuanceFunc      func(ctx context.Context, clientID uuid.UUID) error

	calls struct {
		ValidateCredentials []struct {
			Ctx      context.Context
			ClientID uuid.UUID
			Secret   string
		}
		ConsumeWindow []struct {
			Ctx      context.Context
			ClientID uuid.UUID
			Limit    int
			Now      time.Time
		}
		ReleaseWindow []struct {
			Ctx      context.Context
			ClientID uuid.UUID
			Now      time.Time
		}
		RecordIssuance []struct {
			Ctx      context.Context
			ClientID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *clientRegistryMock) ValidateCredentials(ctx context.Context, clientID uuid.UUID, secret string) (domain.DelegateClient, error) {
	if mock.ValidateCredentialsFunc == nil {
		panic("clientRegistryMock.ValidateCredentialsFunc: method is nil but clientRegistry.ValidateCredentials was just called")
	}
	mock.lock.Lock()
	mock.calls.ValidateCredentials = append(mock.calls.ValidateCredentials, struct {
		Ctx      context.Context
		ClientID uuid.UUID
		Secret   string
	}{Ctx: ctx, ClientID: clientID, Secret: secret})
	mock.lock.Unlock()
	return mock.ValidateCredentialsFunc(ctx, clientID, secret)
}

func (mock *clientRegistryMock) ConsumeWindow(ctx context.Context, clientID uuid.UUID, limit int, now time.Time) (bool, error) {
	if mock.ConsumeWindowFunc == nil {
		panic("clientRegistryMock.ConsumeWindowFunc: method is nil but clientRegistry.ConsumeWindow was just called")
	}
	mock.lock.Lock()
	mock.calls.ConsumeWindow = append(mock.calls.ConsumeWindow, struct {
		Ctx      context.Context
		ClientID uuid.UUID
		Limit    int
		Now      time.Time
	}{Ctx: ctx, ClientID: clientID, Limit: limit, Now: now})
	mock.lock.Unlock()
	return mock.ConsumeWindowFunc(ctx, clientID, limit, now)
}

func (mock *clientRegistryMock) ConsumeWindowCalls() []struct {
	Ctx      context.Context
	ClientID uuid.UUID
	Limit    int
	Now      time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ConsumeWindow
}

func (mock *clientRegistryMock) ReleaseWindow(ctx context.Context, clientID uuid.UUID, now time.Time) error {
	if mock.ReleaseWindowFunc == nil {
		panic("clientRegistryMock.ReleaseWindowFunc: method is nil but clientRegistry.ReleaseWindow was just called")
	}
	mock.lock.Lock()
	mock.calls.ReleaseWindow = append(mock.calls.ReleaseWindow, struct {
		Ctx      context.Context
		ClientID uuid.UUID
		Now      time.Time
	}{Ctx: ctx, ClientID: clientID, Now: now})
	mock.lock.Unlock()
	return mock.ReleaseWindowFunc(ctx, clientID, now)
}

func (mock *clientRegistryMock) ReleaseWindowCalls() []struct {
	Ctx      context.Context
	ClientID uuid.UUID
	Now      time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ReleaseWindow
}

func (mock *clientRegistryMock) RecordIssuance(ctx context.Context, clientID uuid.UUID) error {
	if mock.RecordIssuanceFunc == nil {
		panic("clientRegistryMock.RecordIssuanceFunc: method is nil but clientRegistry.RecordIssuance was just called")
	}
	mock.lock.Lock()
	mock.calls.RecordIssuance = append(mock.calls.RecordIssuance, struct {
		Ctx      context.Context
		ClientID uuid.UUID
	}{Ctx: ctx, ClientID: clientID})
	mock.lock.Unlock()
	return mock.RecordIssuanceFunc(ctx, clientID)
}

func (mock *clientRegistryMock) RecordIssuanceCalls() []struct {
	Ctx      context.Context
	ClientID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RecordIssuance
}

type delegatorResolverMock struct {
	ResolveFunc func(ctx context.Context, externalIdentity string) (domain.Clinician, error)
}

func (mock *delegatorResolverMock) Resolve(ctx context.Context, externalIdentity string) (domain.Clinician, error) {
	if mock.ResolveFunc == nil {
		panic("delegatorResolverMock.ResolveFunc: method is nil but delegatorResolver.Resolve was just called")
	}
	return mock.ResolveFunc(ctx, externalIdentity)
}

type switchReaderMock struct {
	CurrentFunc func(ctx context.Context) (domain.KillSwitchState, error)
}

func (mock *switchReaderMock) Current(ctx context.Context) (domain.KillSwitchState, error) {
	if mock.CurrentFunc == nil {
		panic("switchReaderMock.CurrentFunc: method is nil but switchReader.Current was just called")
	}
	return mock.CurrentFunc(ctx)
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

// metricsMock counts calls without a registry.
type metricsMock struct {
	mu     sync.Mutex
	issued int
	denied map[string]int
}

func (m *metricsMock) RecordTokenIssued() {
	m.mu.Lock()
	m.issued++
	m.mu.Unlock()
}

func (m *metricsMock) RecordTokenDenied(reason string) {
	m.mu.Lock()
	if m.denied == nil {
		m.denied = make(map[string]int)
	}
	m.denied[reason]++
	m.mu.Unlock()
}
