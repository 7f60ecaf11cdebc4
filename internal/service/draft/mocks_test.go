package draft

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

var (
	_ actionRepo    = &actionRepoMock{}
	_ clinicianRepo = &clinicianRepoMock{}
	_ clientRepo    = &clientRepoMock{}
	_ auditRepo     = &auditRepoMock{}
	_ draftMetrics  = &metricsMock{}
)

type actionRepoMock struct {
	CreateDraftFunc       func(ctx context.Context, a domain.ClinicalAction) (domain.ClinicalAction, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (domain.ClinicalAction, error)
	ListPendingForFunc    func(ctx context.Context, clinicianID uuid.UUID, now time.Time) ([]domain.ClinicalAction, error)
	ListAuthoritativeFunc func(ctx context.Context, patientID uuid.UUID, actionType *domain.ActionType) ([]domain.ClinicalAction, error)
	PromoteFunc           func(ctx context.Context, id, approverID uuid.UUID, description string, payload map[string]any, now time.Time) (domain.ClinicalAction, error)
	DeleteDraftFunc       func(ctx context.Context, id uuid.UUID) error
	PurgeExpiredFunc      func(ctx context.Context, now time.Time) (int64, error)
	CountExpiredFunc      func(ctx context.Context, now time.Time) (int64, error)

	calls struct {
		CreateDraft []struct {
			Ctx context.Context
			A   domain.ClinicalAction
		}
		Promote []struct {
			Ctx         context.Context
			ID          uuid.UUID
			ApproverID  uuid.UUID
			Description string
			Payload     map[string]any
			Now         time.Time
		}
		DeleteDraft []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *actionRepoMock) CreateDraft(ctx context.Context, a domain.ClinicalAction) (domain.ClinicalAction, error) {
	if mock.CreateDraftFunc == nil {
		panic("actionRepoMock.CreateDraftFunc: method is nil but actionRepo.CreateDraft was just called")
	}
	mock.lock.Lock()
	mock.calls.CreateDraft = append(mock.calls.CreateDraft, struct {
		Ctx context.Context
		A   domain.ClinicalAction
	}{Ctx: ctx, A: a})
	mock.lock.Unlock()
	return mock.CreateDraftFunc(ctx, a)
}

func (mock *actionRepoMock) CreateDraftCalls() []struct {
	Ctx context.Context
	A   domain.ClinicalAction
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CreateDraft
}

func (mock *actionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.ClinicalAction, error) {
	if mock.GetByIDFunc == nil {
		panic("actionRepoMock.GetByIDFunc: method is nil but actionRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *actionRepoMock) ListPendingFor(ctx context.Context, clinicianID uuid.UUID, now time.Time) ([]domain.ClinicalAction, error) {
	if mock.ListPendingForFunc == nil {
		panic("actionRepoMock.ListPendingForFunc: method is nil but actionRepo.ListPendingFor was just called")
	}
	return mock.ListPendingForFunc(ctx, clinicianID, now)
}

func (mock *actionRepoMock) ListAuthoritative(ctx context.Context, patientID uuid.UUID, actionType *domain.ActionType) ([]domain.ClinicalAction, error) {
	if mock.ListAuthoritativeFunc == nil {
		panic("actionRepoMock.ListAuthoritativeFunc: method is nil but actionRepo.ListAuthoritative was just called")
	}
	return mock.ListAuthoritativeFunc(ctx, patientID, actionType)
}

func (mock *actionRepoMock) Promote(ctx context.Context, id, approverID uuid.UUID, description string, payload map[string]any, now time.Time) (domain.ClinicalAction, error) {
	if mock.PromoteFunc == nil {
		panic("actionRepoMock.PromoteFunc: method is nil but actionRepo.Promote was just called")
	}
	mock.lock.Lock()
	mock.calls.Promote = append(mock.calls.Promote, struct {
		Ctx         context.Context
		ID          uuid.UUID
		ApproverID  uuid.UUID
		Description string
		Payload     map[string]any
		Now         time.Time
	}{Ctx: ctx, ID: id, ApproverID: approverID, Description: description, Payload: payload, Now: now})
	mock.lock.Unlock()
	return mock.PromoteFunc(ctx, id, approverID, description, payload, now)
}

func (mock *actionRepoMock) PromoteCalls() []struct {
	Ctx         context.Context
	ID          uuid.UUID
	ApproverID  uuid.UUID
	Description string
	Payload     map[string]any
	Now         time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Promote
}

func (mock *actionRepoMock) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteDraftFunc == nil {
		panic("actionRepoMock.DeleteDraftFunc: method is nil but actionRepo.DeleteDraft was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteDraft = append(mock.calls.DeleteDraft, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id})
	mock.lock.Unlock()
	return mock.DeleteDraftFunc(ctx, id)
}

func (mock *actionRepoMock) DeleteDraftCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteDraft
}

func (mock *actionRepoMock) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if mock.PurgeExpiredFunc == nil {
		panic("actionRepoMock.PurgeExpiredFunc: method is nil but actionRepo.PurgeExpired was just called")
	}
	return mock.PurgeExpiredFunc(ctx, now)
}

func (mock *actionRepoMock) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	if mock.CountExpiredFunc == nil {
		panic("actionRepoMock.CountExpiredFunc: method is nil but actionRepo.CountExpired was just called")
	}
	return mock.CountExpiredFunc(ctx, now)
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

type clientRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error)
}

func (mock *clientRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error) {
	if mock.GetByIDFunc == nil {
		panic("clientRepoMock.GetByIDFunc: method is nil but clientRepo.GetByID was just called")
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

// metricsMock counts calls without a registry.
type metricsMock struct {
	mu       sync.Mutex
	created  int
	promoted int
	rejected int
	purged   int64
}

func (m *metricsMock) RecordDraftCreated() {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *metricsMock) RecordDraftPromoted() {
	m.mu.Lock()
	m.promoted++
	m.mu.Unlock()
}

func (m *metricsMock) RecordDraftRejected() {
	m.mu.Lock()
	m.rejected++
	m.mu.Unlock()
}

func (m *metricsMock) RecordDraftsPurged(count int64) {
	m.mu.Lock()
	m.purged += count
	m.mu.Unlock()
}
