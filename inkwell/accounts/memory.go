package accounts

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps accounts in process memory. Used with
// STORAGE_DRIVER=memory and in tests.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
	now      func() time.Time
}

// creates an empty in-memory account store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]*Account),
		now:      time.Now,
	}
}

// finds the account for an owner; returns nil when none exists
func (m *MemoryRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[email]
	if !ok {
		return nil, nil
	}

	cp := *a
	return &cp, nil
}

// creates an account on the given plan if the owner has none
func (m *MemoryRepository) Ensure(_ context.Context, email, plan string, ceiling int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[email]; ok {
		return nil
	}

	now := m.now()
	m.accounts[email] = &Account{
		OwnerEmail:    email,
		Plan:          plan,
		CreditCeiling: ceiling,
		PaymentStatus: PaymentStatusNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return nil
}

// adds credits to an owner's ceiling, creating the account when absent
func (m *MemoryRepository) Credit(_ context.Context, p CreditParams) (*CreditResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	paidAt := p.PaidAt

	a, ok := m.accounts[p.OwnerEmail]
	if !ok {
		a = &Account{
			OwnerEmail: p.OwnerEmail,
			CreatedAt:  now,
		}
		m.accounts[p.OwnerEmail] = a
	}

	a.CreditCeiling += p.Credits
	a.Plan = p.Plan
	a.LastPaymentAt = &paidAt
	a.PaymentStatus = PaymentStatusCompleted
	a.UpdatedAt = now

	cp := *a
	return &CreditResult{Account: &cp, Created: !ok}, nil
}
