package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/service/credit"
	"github.com/heartmarshall/ideascore-backend/internal/service/generation"
)

var _ creditService = &creditServiceMock{}

type creditServiceMock struct {
	GetBalanceFunc       func(ctx context.Context, accountID uuid.UUID) (domain.Balance, error)
	CheckEligibilityFunc func(ctx context.Context, accountID uuid.UUID, op domain.OperationKind) (credit.Eligibility, error)
	ListTransactionsFunc func(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.TransactionEntry, int, error)

	calls struct {
		GetBalance []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
		CheckEligibility []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Op        domain.OperationKind
		}
		ListTransactions []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Limit     int
			Offset    int
		}
	}
	lockGetBalance       sync.RWMutex
	lockCheckEligibility sync.RWMutex
	lockListTransactions sync.RWMutex
}

func (mock *creditServiceMock) GetBalance(ctx context.Context, accountID uuid.UUID) (domain.Balance, error) {
	if mock.GetBalanceFunc == nil {
		panic("creditServiceMock.GetBalanceFunc: method is nil but creditService.GetBalance was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockGetBalance.Lock()
	mock.calls.GetBalance = append(mock.calls.GetBalance, callInfo)
	mock.lockGetBalance.Unlock()
	return mock.GetBalanceFunc(ctx, accountID)
}

func (mock *creditServiceMock) GetBalanceCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockGetBalance.RLock()
	calls = mock.calls.GetBalance
	mock.lockGetBalance.RUnlock()
	return calls
}

func (mock *creditServiceMock) CheckEligibility(ctx context.Context, accountID uuid.UUID, op domain.OperationKind) (credit.Eligibility, error) {
	if mock.CheckEligibilityFunc == nil {
		panic("creditServiceMock.CheckEligibilityFunc: method is nil but creditService.CheckEligibility was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Op        domain.OperationKind
	}{
		Ctx:       ctx,
		AccountID: accountID,
		Op:        op,
	}
	mock.lockCheckEligibility.Lock()
	mock.calls.CheckEligibility = append(mock.calls.CheckEligibility, callInfo)
	mock.lockCheckEligibility.Unlock()
	return mock.CheckEligibilityFunc(ctx, accountID, op)
}

func (mock *creditServiceMock) CheckEligibilityCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
	Op        domain.OperationKind
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Op        domain.OperationKind
	}
	mock.lockCheckEligibility.RLock()
	calls = mock.calls.CheckEligibility
	mock.lockCheckEligibility.RUnlock()
	return calls
}

func (mock *creditServiceMock) ListTransactions(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.TransactionEntry, int, error) {
	if mock.ListTransactionsFunc == nil {
		panic("creditServiceMock.ListTransactionsFunc: method is nil but creditService.ListTransactions was just called")
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
	mock.lockListTransactions.Lock()
	mock.calls.ListTransactions = append(mock.calls.ListTransactions, callInfo)
	mock.lockListTransactions.Unlock()
	return mock.ListTransactionsFunc(ctx, accountID, limit, offset)
}

func (mock *creditServiceMock) ListTransactionsCalls() []struct {
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
	mock.lockListTransactions.RLock()
	calls = mock.calls.ListTransactions
	mock.lockListTransactions.RUnlock()
	return calls
}

var _ generationService = &generationServiceMock{}

type generationServiceMock struct {
	ExecuteFunc       func(ctx context.Context, in generation.ExecuteInput) (*generation.Result, error)
	GetArtifactFunc   func(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (*domain.Artifact, error)
	ListArtifactsFunc func(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.Artifact, error)

	calls struct {
		Execute []struct {
			Ctx context.Context
			In  generation.ExecuteInput
		}
		GetArtifact []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			ID        uuid.UUID
		}
		ListArtifacts []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Limit     int
			Offset    int
		}
	}
	lockExecute       sync.RWMutex
	lockGetArtifact   sync.RWMutex
	lockListArtifacts sync.RWMutex
}

func (mock *generationServiceMock) Execute(ctx context.Context, in generation.ExecuteInput) (*generation.Result, error) {
	if mock.ExecuteFunc == nil {
		panic("generationServiceMock.ExecuteFunc: method is nil but generationService.Execute was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  generation.ExecuteInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockExecute.Lock()
	mock.calls.Execute = append(mock.calls.Execute, callInfo)
	mock.lockExecute.Unlock()
	return mock.ExecuteFunc(ctx, in)
}

func (mock *generationServiceMock) ExecuteCalls() []struct {
	Ctx context.Context
	In  generation.ExecuteInput
} {
	var calls []struct {
		Ctx context.Context
		In  generation.ExecuteInput
	}
	mock.lockExecute.RLock()
	calls = mock.calls.Execute
	mock.lockExecute.RUnlock()
	return calls
}

func (mock *generationServiceMock) GetArtifact(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (*domain.Artifact, error) {
	if mock.GetArtifactFunc == nil {
		panic("generationServiceMock.GetArtifactFunc: method is nil but generationService.GetArtifact was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
		ID        uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
		ID:        id,
	}
	mock.lockGetArtifact.Lock()
	mock.calls.GetArtifact = append(mock.calls.GetArtifact, callInfo)
	mock.lockGetArtifact.Unlock()
	return mock.GetArtifactFunc(ctx, accountID, id)
}

func (mock *generationServiceMock) GetArtifactCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
	ID        uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
		ID        uuid.UUID
	}
	mock.lockGetArtifact.RLock()
	calls = mock.calls.GetArtifact
	mock.lockGetArtifact.RUnlock()
	return calls
}

func (mock *generationServiceMock) ListArtifacts(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.Artifact, error) {
	if mock.ListArtifactsFunc == nil {
		panic("generationServiceMock.ListArtifactsFunc: method is nil but generationService.ListArtifacts was just called")
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
	mock.lockListArtifacts.Lock()
	mock.calls.ListArtifacts = append(mock.calls.ListArtifacts, callInfo)
	mock.lockListArtifacts.Unlock()
	return mock.ListArtifactsFunc(ctx, accountID, limit, offset)
}

func (mock *generationServiceMock) ListArtifactsCalls() []struct {
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
	mock.lockListArtifacts.RLock()
	calls = mock.calls.ListArtifacts
	mock.lockListArtifacts.RUnlock()
	return calls
}

var _ accountAdmin = &accountAdminMock{}

type accountAdminMock struct {
	OpenAccountFunc func(ctx context.Context, in credit.OpenAccountInput) (*domain.Account, bool, error)
	TopUpFunc       func(ctx context.Context, in credit.TopUpInput) (*domain.Account, error)
	AdjustFunc      func(ctx context.Context, in credit.AdjustInput) (*domain.Account, error)

	calls struct {
		OpenAccount []struct {
			Ctx context.Context
			In  credit.OpenAccountInput
		}
		TopUp []struct {
			Ctx context.Context
			In  credit.TopUpInput
		}
		Adjust []struct {
			Ctx context.Context
			In  credit.AdjustInput
		}
	}
	lockOpenAccount sync.RWMutex
	lockTopUp       sync.RWMutex
	lockAdjust      sync.RWMutex
}

func (mock *accountAdminMock) OpenAccount(ctx context.Context, in credit.OpenAccountInput) (*domain.Account, bool, error) {
	if mock.OpenAccountFunc == nil {
		panic("accountAdminMock.OpenAccountFunc: method is nil but accountAdmin.OpenAccount was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  credit.OpenAccountInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockOpenAccount.Lock()
	mock.calls.OpenAccount = append(mock.calls.OpenAccount, callInfo)
	mock.lockOpenAccount.Unlock()
	return mock.OpenAccountFunc(ctx, in)
}

func (mock *accountAdminMock) OpenAccountCalls() []struct {
	Ctx context.Context
	In  credit.OpenAccountInput
} {
	var calls []struct {
		Ctx context.Context
		In  credit.OpenAccountInput
	}
	mock.lockOpenAccount.RLock()
	calls = mock.calls.OpenAccount
	mock.lockOpenAccount.RUnlock()
	return calls
}

func (mock *accountAdminMock) TopUp(ctx context.Context, in credit.TopUpInput) (*domain.Account, error) {
	if mock.TopUpFunc == nil {
		panic("accountAdminMock.TopUpFunc: method is nil but accountAdmin.TopUp was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  credit.TopUpInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockTopUp.Lock()
	mock.calls.TopUp = append(mock.calls.TopUp, callInfo)
	mock.lockTopUp.Unlock()
	return mock.TopUpFunc(ctx, in)
}

func (mock *accountAdminMock) TopUpCalls() []struct {
	Ctx context.Context
	In  credit.TopUpInput
} {
	var calls []struct {
		Ctx context.Context
		In  credit.TopUpInput
	}
	mock.lockTopUp.RLock()
	calls = mock.calls.TopUp
	mock.lockTopUp.RUnlock()
	return calls
}

func (mock *accountAdminMock) Adjust(ctx context.Context, in credit.AdjustInput) (*domain.Account, error) {
	if mock.AdjustFunc == nil {
		panic("accountAdminMock.AdjustFunc: method is nil but accountAdmin.Adjust was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  credit.AdjustInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockAdjust.Lock()
	mock.calls.Adjust = append(mock.calls.Adjust, callInfo)
	mock.lockAdjust.Unlock()
	return mock.AdjustFunc(ctx, in)
}

func (mock *accountAdminMock) AdjustCalls() []struct {
	Ctx context.Context
	In  credit.AdjustInput
} {
	var calls []struct {
		Ctx context.Context
		In  credit.AdjustInput
	}
	mock.lockAdjust.RLock()
	calls = mock.calls.Adjust
	mock.lockAdjust.RUnlock()
	return calls
}
