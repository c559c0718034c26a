package reconciler

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/internal/billing"
	"codeberg.org/inkwell/billing/internal/gateway"
	"codeberg.org/inkwell/billing/internal/logger"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/ownerlock"
	"codeberg.org/inkwell/billing/internal/plans"
)

const minorUnitsPerMajor = 100

// creates a reconciler
func New(gw Gateway, accountStore AccountStore, ledger Ledger, locker ownerlock.Locker, catalog *plans.Catalog, cfg Config, m *metrics.Metrics) *Reconciler {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}

	return &Reconciler{
		gateway:  gw,
		accounts: accountStore,
		ledger:   ledger,
		locker:   locker,
		catalog:  catalog,
		cfg:      cfg,
		metrics:  m,
		now:      time.Now,
	}
}

// asks the gateway for an order of req.Amount major units and returns its
// handle unchanged. Nothing local is written.
func (r *Reconciler) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Amount <= 0 {
		return nil, billing.Validation(billing.OpCreateOrder, "amount must be positive")
	}

	if req.Amount > math.MaxInt64/minorUnitsPerMajor {
		return nil, billing.Validation(billing.OpCreateOrder, "amount is too large")
	}

	a := newAttempt(StateInitiated)
	receipt := BuildReceipt(strings.TrimSpace(req.OwnerID), r.now())

	if r.cfg.GatewayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.GatewayTimeout)
		defer cancel()
	}

	start := time.Now()
	order, err := r.gateway.CreateOrder(ctx, req.Amount*minorUnitsPerMajor, r.cfg.Currency, receipt)
	r.metrics.GatewayDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.OrdersTotal.WithLabelValues(metrics.ResultFailed).Inc()
		logger.ErrorErr(err, "order creation failed", "receipt", receipt, "amount", req.Amount)

		return nil, billing.Gateway(billing.OpCreateOrder, err)
	}

	if err := a.advance(StateOrderCreated); err != nil {
		return nil, err
	}

	r.metrics.OrdersTotal.WithLabelValues(metrics.ResultCreated).Inc()
	logger.Info("order created", "order_id", order.ID, "receipt", order.Receipt, "amount", order.Amount)

	return toOrder(order), nil
}

func toOrder(o *gateway.Order) *Order {
	return &Order{
		OrderID:  o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
	}
}

// verifies a checkout signature and adds the purchased credits to the
// owner's ceiling. A bad signature never touches the stores. A payment
// already in the ledger is answered from the ledger without a second grant.
func (r *Reconciler) VerifyPayment(ctx context.Context, p PaymentConfirmation) (*Upgrade, error) {
	p = normalize(p)

	if err := validateConfirmation(p); err != nil {
		r.metrics.UpgradesTotal.WithLabelValues(metrics.OutcomeInvalidRequest).Inc()
		return nil, err
	}

	a := newAttempt(StateOrderCreated)
	if err := a.advance(StatePaymentReceived); err != nil {
		return nil, err
	}

	log := logger.With("order_id", p.OrderID, "payment_id", p.PaymentID, "email", p.Email)

	if !gateway.VerifySignature(r.cfg.SecretKey, p.OrderID, p.PaymentID, p.Signature) {
		if err := a.advance(StateSignatureInvalid); err != nil {
			return nil, err
		}
		if err := a.advance(StateRejected); err != nil {
			return nil, err
		}

		r.metrics.UpgradesTotal.WithLabelValues(metrics.OutcomeInvalidSignature).Inc()
		log.Warn("payment signature rejected")

		return nil, billing.InvalidSignature(billing.OpVerifyPayment)
	}

	if err := a.advance(StateSignatureValid); err != nil {
		return nil, err
	}

	grant, fromCatalog := r.catalog.ResolveGrant(p.Credits, p.PlanName)
	if fromCatalog {
		log.Warn("credits value unusable, using plan grant", "credits", p.Credits, "plan", p.PlanName, "grant", grant)
	}

	upgrade, err := r.apply(ctx, p, grant)
	if err != nil {
		r.metrics.UpgradesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		r.metrics.StoreFailuresTotal.WithLabelValues(billing.OpVerifyPayment).Inc()
		log.Error("upgrade failed", "error", err)

		return nil, err
	}

	if err := a.advance(StateApplied); err != nil {
		return nil, err
	}

	if upgrade.Replayed {
		r.metrics.UpgradesTotal.WithLabelValues(metrics.OutcomeReplayed).Inc()
		log.Info("payment already applied", "credits", upgrade.Credits, "plan", upgrade.Plan)

		return upgrade, nil
	}

	r.metrics.UpgradesTotal.WithLabelValues(metrics.OutcomeApplied).Inc()
	r.metrics.CreditsGrantedTotal.WithLabelValues(upgrade.Plan).Add(float64(upgrade.Credits))
	log.Info("plan upgraded",
		"credits", upgrade.Credits,
		"plan", upgrade.Plan,
		"ceiling", upgrade.Ceiling,
		"ledger_recorded", upgrade.LedgerRecorded,
	)

	return upgrade, nil
}

// runs the replay check, the credit and the ledger append while holding the
// payment's lock and then the owner's lock. The payment lock keeps one payment
// id from being credited to two owners.
func (r *Reconciler) apply(ctx context.Context, p PaymentConfirmation, grant int64) (*Upgrade, error) {
	if r.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.StoreTimeout)
		defer cancel()
	}

	paymentLock, err := r.acquire(ctx, paymentLockKey(p.PaymentID))
	if err != nil {
		return nil, err
	}
	defer r.release(ctx, paymentLock, paymentLockKey(p.PaymentID))

	ownerLock, err := r.acquire(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	defer r.release(ctx, ownerLock, p.Email)

	replayed, err := r.replay(ctx, p)
	if err != nil {
		return nil, err
	}

	if replayed != nil {
		return replayed, nil
	}

	paidAt := r.now().UTC()

	res, err := r.accounts.Credit(ctx, accounts.CreditParams{
		OwnerEmail: p.Email,
		Plan:       p.PlanName,
		Credits:    grant,
		PaidAt:     paidAt,
	})
	if err != nil {
		return nil, billing.StoreUnavailable(billing.OpVerifyPayment, err)
	}

	recorded := r.record(ctx, p, grant, paidAt)

	return &Upgrade{
		Credits:        grant,
		Plan:           p.PlanName,
		Ceiling:        res.Account.CreditCeiling,
		LedgerRecorded: recorded,
	}, nil
}

func paymentLockKey(paymentID string) string {
	return "payment:" + paymentID
}

func (r *Reconciler) acquire(ctx context.Context, key string) (ownerlock.Lock, error) {
	waitStart := time.Now()
	lock, err := r.locker.Acquire(ctx, key)
	r.metrics.LockWaitDuration.Observe(time.Since(waitStart).Seconds())

	if err != nil {
		return nil, billing.StoreUnavailable(billing.OpVerifyPayment, err)
	}

	return lock, nil
}

// releases even when ctx has expired
func (r *Reconciler) release(ctx context.Context, lock ownerlock.Lock, key string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	if err := lock.Release(releaseCtx); err != nil {
		logger.Warn("failed to release lock", "key", key, "error", err)
	}
}

// returns the earlier outcome when this payment id is already in the ledger.
// A failed lookup is logged and treated as a first delivery.
func (r *Reconciler) replay(ctx context.Context, p PaymentConfirmation) (*Upgrade, error) {
	entry, err := r.ledger.FindByTransactionID(ctx, p.PaymentID)
	if err != nil {
		logger.Warn("ledger lookup failed, applying payment", "payment_id", p.PaymentID, "error", err)
		return nil, nil
	}

	if entry == nil {
		return nil, nil
	}

	if entry.PayerEmail != p.Email {
		logger.Warn("payment replayed for another owner", "payment_id", p.PaymentID, "credited", entry.PayerEmail, "email", p.Email)
	}

	account, err := r.accounts.FindByEmail(ctx, entry.PayerEmail)
	if err != nil {
		return nil, billing.StoreUnavailable(billing.OpVerifyPayment, err)
	}

	var ceiling int64
	if account != nil {
		ceiling = account.CreditCeiling
	}

	return &Upgrade{
		Credits:        entry.CreditsAdded,
		Plan:           entry.PlanName,
		Ceiling:        ceiling,
		LedgerRecorded: true,
		Replayed:       true,
	}, nil
}

// appends the ledger entry; failures are logged and counted, never returned
func (r *Reconciler) record(ctx context.Context, p PaymentConfirmation, grant int64, paidAt time.Time) bool {
	payer := p.OwnerID
	if payer == "" {
		payer = p.Email
	}

	err := r.ledger.Append(ctx, &payments.Entry{
		TransactionID: p.PaymentID,
		OrderID:       p.OrderID,
		PayerID:       payer,
		PayerEmail:    p.Email,
		Amount:        p.Amount,
		Currency:      r.cfg.Currency,
		PlanName:      p.PlanName,
		CreditsAdded:  grant,
		CreatedAt:     paidAt,
	})
	if err == nil {
		return true
	}

	r.metrics.LedgerFailuresTotal.Inc()
	logger.ErrorErr(billing.LedgerWrite(billing.OpVerifyPayment, err), "payment ledger write failed, credit grant kept",
		"payment_id", p.PaymentID,
		"email", p.Email,
		"credits", grant,
		"duplicate", errors.Is(err, payments.ErrDuplicateTransaction),
	)

	return false
}

func normalize(p PaymentConfirmation) PaymentConfirmation {
	p.OrderID = strings.TrimSpace(p.OrderID)
	p.PaymentID = strings.TrimSpace(p.PaymentID)
	p.Signature = strings.TrimSpace(p.Signature)
	p.OwnerID = strings.TrimSpace(p.OwnerID)
	p.Email = strings.TrimSpace(p.Email)
	p.PlanName = strings.TrimSpace(p.PlanName)

	return p
}

func validateConfirmation(p PaymentConfirmation) error {
	var missing []string

	if p.OrderID == "" {
		missing = append(missing, "orderId")
	}
	if p.PaymentID == "" {
		missing = append(missing, "paymentId")
	}
	if p.Signature == "" {
		missing = append(missing, "signature")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.PlanName == "" {
		missing = append(missing, "planName")
	}

	if len(missing) > 0 {
		return billing.Validation(billing.OpVerifyPayment, "missing "+strings.Join(missing, ", "))
	}

	if p.Amount < 0 {
		return billing.Validation(billing.OpVerifyPayment, "amount must not be negative")
	}

	return nil
}
