package credit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	CreateFunc        func(ctx context.Context, a domain.Account) (*domain.Account, error)
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateBalanceFunc func(ctx context.Context, id uuid.UUID, expected int, next int, at time.Time) error
	ListIDsFunc       func(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			A   domain.Account
		}
		FindByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateBalance []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Expected int
			Next     int
			At       time.Time
		}
		ListIDs []struct {
			Ctx   context.Context
			After uuid.UUID
			Limit int
		}
	}
	lockCreate        sync.RWMutex
	lockFindByID      sync.RWMutex
	lockUpdateBalance sync.RWMutex
	lockListIDs       sync.RWMutex
}

func (mock *accountRepoMock) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	if mock.CreateFunc == nil {
		panic("accountRepoMock.CreateFunc: method is nil but accountRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Account
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *accountRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.Account
} {
	var calls []struct {
		Ctx context.Context
		A   domain.Account
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *accountRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.FindByIDFunc == nil {
		panic("accountRepoMock.FindByIDFunc: method is nil but accountRepo.FindByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockFindByID.Lock()
	mock.calls.FindByID = append(mock.calls.FindByID, callInfo)
	mock.lockFindByID.Unlock()
	return mock.FindByIDFunc(ctx, id)
}

func (mock *accountRepoMock) FindByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockFindByID.RLock()
	calls = mock.calls.FindByID
	mock.lockFindByID.RUnlock()
	return calls
}

func (mock *accountRepoMock) UpdateBalance(ctx context.Context, id uuid.UUID, expected int, next int, at time.Time) error {
	if mock.UpdateBalanceFunc == nil {
		panic("accountRepoMock.UpdateBalanceFunc: method is nil but accountRepo.UpdateBalance was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Expected int
		Next     int
		At       time.Time
	}{
		Ctx:      ctx,
		ID:       id,
		Expected: expected,
		Next:     next,
		At:       at,
	}
	mock.lockUpdateBalance.Lock()
	mock.calls.UpdateBalance = append(mock.calls.UpdateBalance, callInfo)
	mock.lockUpdateBalance.Unlock()
	return mock.UpdateBalanceFunc(ctx, id, expected, next, at)
}

func (mock *accountRepoMock) UpdateBalanceCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Expected int
	Next     int
	At       time.Time
} {
	var calls []struct {
		Ctx      context.Context
		ID       uuid.UUID
		Expected int
		Next     int
		At       time.Time
	}
	mock.lockUpdateBalance.RLock()
	calls = mock.calls.UpdateBalance
	mock.lockUpdateBalance.RUnlock()
	return calls
}

func (mock *accountRepoMock) ListIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("accountRepoMock.ListIDsFunc: method is nil but accountRepo.ListIDs was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After uuid.UUID
		Limit int
	}{
		Ctx:   ctx,
		After: after,
		Limit: limit,
	}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx, after, limit)
}

func (mock *accountRepoMock) ListIDsCalls() []struct {
	Ctx   context.Context
	After uuid.UUID
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		After uuid.UUID
		Limit int
	}
	mock.lockListIDs.RLock()
	calls = mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	RecordFunc         func(ctx context.Context, entry domain.TransactionEntry) error
	ListByAccountFunc  func(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.TransactionEntry, error)
	CountByAccountFunc func(ctx context.Context, accountID uuid.UUID) (int, error)
	SumByAccountFunc   func(ctx context.Context, accountID uuid.UUID) (int, error)

	calls struct {
		Record []struct {
			Ctx   context.Context
			Entry domain.TransactionEntry
		}
		ListByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Limit     int
			Offset    int
		}
		CountByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
		SumByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
	}
	lockRecord         sync.RWMutex
	lockListByAccount  sync.RWMutex
	lockCountByAccount sync.RWMutex
	lockSumByAccount   sync.RWMutex
}

func (mock *ledgerRepoMock) Record(ctx context.Context, entry domain.TransactionEntry) error {
	if mock.RecordFunc == nil {
		panic("ledgerRepoMock.RecordFunc: method is nil but ledgerRepo.Record was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry domain.TransactionEntry
	}{
		Ctx:   ctx,
		Entry: entry,
	}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, entry)
}

func (mock *ledgerRepoMock) RecordCalls() []struct {
	Ctx   context.Context
	Entry domain.TransactionEntry
} {
	var calls []struct {
		Ctx   context.Context
		Entry domain.TransactionEntry
	}
	mock.lockRecord.RLock()
	calls = mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.TransactionEntry, error) {
	if mock.ListByAccountFunc == nil {
		panic("ledgerRepoMock.ListByAccountFunc: method is nil but ledgerRepo.ListByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Limit     int
		Offset    int
	}{
		Ctx:       ctx,
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	}
	mock.lockListByAccount.Lock()
	mock.calls.ListByAccount = append(mock.calls.ListByAccount, callInfo)
	mock.lockListByAccount.Unlock()
	return mock.ListByAccountFunc(ctx, accountID, limit, offset)
}

func (mock *ledgerRepoMock) ListByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
	Limit     int
	Offset    int
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Limit     int
		Offset    int
	}
	mock.lockListByAccount.RLock()
	calls = mock.calls.ListByAccount
	mock.lockListByAccount.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	if mock.CountByAccountFunc == nil {
		panic("ledgerRepoMock.CountByAccountFunc: method is nil but ledgerRepo.CountByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockCountByAccount.Lock()
	mock.calls.CountByAccount = append(mock.calls.CountByAccount, callInfo)
	mock.lockCountByAccount.Unlock()
	return mock.CountByAccountFunc(ctx, accountID)
}

func (mock *ledgerRepoMock) CountByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockCountByAccount.RLock()
	calls = mock.calls.CountByAccount
	mock.lockCountByAccount.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) SumByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	if mock.SumByAccountFunc == nil {
		panic("ledgerRepoMock.SumByAccountFunc: method is nil but ledgerRepo.SumByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockSumByAccount.Lock()
	mock.calls.SumByAccount = append(mock.calls.SumByAccount, callInfo)
	mock.lockSumByAccount.Unlock()
	return mock.SumByAccountFunc(ctx, accountID)
}

func (mock *ledgerRepoMock) SumByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockSumByAccount.RLock()
	calls = mock.calls.SumByAccount
	mock.lockSumByAccount.RUnlock()
	return calls
}

var _ balanceCache = &balanceCacheMock{}

type balanceCacheMock struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value []byte
			Ttl   time.Duration
		}
		Delete []struct {
			Ctx context.Context
			Key string
		}
	}
	lockGet    sync.RWMutex
	lockSet    sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *balanceCacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if mock.GetFunc == nil {
		panic("balanceCacheMock.GetFunc: method is nil but balanceCache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *balanceCacheMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	var calls []struct {
		Ctx context.Context
		Key string
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *balanceCacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if mock.SetFunc == nil {
		panic("balanceCacheMock.SetFunc: method is nil but balanceCache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value []byte
		Ttl   time.Duration
	}{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		Ttl:   ttl,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value, ttl)
}

func (mock *balanceCacheMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value []byte
	Ttl   time.Duration
} {
	var calls []struct {
		Ctx   context.Context
		Key   string
		Value []byte
		Ttl   time.Duration
	}
	mock.lockSet.RLock()
	calls = mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *balanceCacheMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("balanceCacheMock.DeleteFunc: method is nil but balanceCache.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *balanceCacheMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	var calls []struct {
		Ctx context.Context
		Key string
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc     func(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnlyFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		RunReadOnly []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx     sync.RWMutex
	lockRunReadOnly sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTx.RLock()
	calls = mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunReadOnlyFunc == nil {
		panic("txManagerMock.RunReadOnlyFunc: method is nil but txManager.RunReadOnly was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunReadOnly.Lock()
	mock.calls.RunReadOnly = append(mock.calls.RunReadOnly, callInfo)
	mock.lockRunReadOnly.Unlock()
	return mock.RunReadOnlyFunc(ctx, fn)
}

func (mock *txManagerMock) RunReadOnlyCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunReadOnly.RLock()
	calls = mock.calls.RunReadOnly
	mock.lockRunReadOnly.RUnlock()
	return calls
}

var _ recorder = &recorderMock{}

type recorderMock struct {
	BalanceCacheLookupFunc func(hit bool)
	LedgerWriteFailedFunc  func(phase domain.LedgerPhase)

	calls struct {
		BalanceCacheLookup []struct {
			Hit bool
		}
		LedgerWriteFailed []struct {
			Phase domain.LedgerPhase
		}
	}
	lockBalanceCacheLookup sync.RWMutex
	lockLedgerWriteFailed  sync.RWMutex
}

func (mock *recorderMock) BalanceCacheLookup(hit bool) {
	if mock.BalanceCacheLookupFunc == nil {
		panic("recorderMock.BalanceCacheLookupFunc: method is nil but recorder.BalanceCacheLookup was just called")
	}
	callInfo := struct {
		Hit bool
	}{
		Hit: hit,
	}
	mock.lockBalanceCacheLookup.Lock()
	mock.calls.BalanceCacheLookup = append(mock.calls.BalanceCacheLookup, callInfo)
	mock.lockBalanceCacheLookup.Unlock()
	mock.BalanceCacheLookupFunc(hit)
}

func (mock *recorderMock) BalanceCacheLookupCalls() []struct {
	Hit bool
} {
	var calls []struct {
		Hit bool
	}
	mock.lockBalanceCacheLookup.RLock()
	calls = mock.calls.BalanceCacheLookup
	mock.lockBalanceCacheLookup.RUnlock()
	return calls
}

func (mock *recorderMock) LedgerWriteFailed(phase domain.LedgerPhase) {
	if mock.LedgerWriteFailedFunc == nil {
		panic("recorderMock.LedgerWriteFailedFunc: method is nil but recorder.LedgerWriteFailed was just called")
	}
	callInfo := struct {
		Phase domain.LedgerPhase
	}{
		Phase: phase,
	}
	mock.lockLedgerWriteFailed.Lock()
	mock.calls.LedgerWriteFailed = append(mock.calls.LedgerWriteFailed, callInfo)
	mock.lockLedgerWriteFailed.Unlock()
	mock.LedgerWriteFailedFunc(phase)
}

func (mock *recorderMock) LedgerWriteFailedCalls() []struct {
	Phase domain.LedgerPhase
} {
	var calls []struct {
		Phase domain.LedgerPhase
	}
	mock.lockLedgerWriteFailed.RLock()
	calls = mock.calls.LedgerWriteFailed
	mock.lockLedgerWriteFailed.RUnlock()
	return calls
}
