package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dummy-data/internal/adapters/journal"
	"dummy-data/internal/adapters/reaction"
	"dummy-data/internal/domain/model"
	"dummy-data/internal/logging"
	"dummy-data/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrShopUnresolved = errors.New("shop is not resolved")

const msgShopUnresolved = "Shop is not resolved yet."

type DummyDataService interface {
	Dispatch(ctx context.Context, op model.Operation, form model.FormState) model.Outcome
	GenerateProductsAndTags(ctx context.Context, form model.FormState) model.Outcome
	GenerateOrders(ctx context.Context, form model.FormState) model.Outcome
	GenerateProductImages(ctx context.Context, form model.FormState) model.Outcome
	RemoveAllData(ctx context.Context, form model.FormState) model.Outcome
}

type Option func(*DummyData)

// WithSingleFlight shares one round trip between identical invocations
// that overlap in time.
func WithSingleFlight() Option {
	return func(d *DummyData) {
		d.flight = &singleflight.Group{}
	}
}

func WithJournal(store journal.Store) Option {
	return func(d *DummyData) {
		d.journal = store
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *DummyData) {
		d.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *DummyData) {
		if now != nil {
			d.now = now
		}
	}
}

type DummyData struct {
	api     reaction.MutationService
	logger  logging.LoggerService
	journal journal.Store
	metrics *metrics.Metrics
	flight  *singleflight.Group
	now     func() time.Time
}

func NewDummyData(api reaction.MutationService, logger logging.LoggerService, opts ...Option) DummyDataService {
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &DummyData{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DummyData) GenerateProductsAndTags(ctx context.Context, form model.FormState) model.Outcome {
	return d.Dispatch(ctx, model.OpLoadProductsAndTags, form)
}

func (d *DummyData) GenerateOrders(ctx context.Context, form model.FormState) model.Outcome {
	return d.Dispatch(ctx, model.OpLoadOrders, form)
}

func (d *DummyData) GenerateProductImages(ctx context.Context, form model.FormState) model.Outcome {
	return d.Dispatch(ctx, model.OpLoadProductImages, form)
}

func (d *DummyData) RemoveAllData(ctx context.Context, form model.FormState) model.Outcome {
	return d.Dispatch(ctx, model.OpRemoveAllData, form)
}

// Dispatch checks the form locally, sends the mutation and turns the
// settlement into an outcome. It never returns an error; failures become
// error-severity outcomes.
func (d *DummyData) Dispatch(ctx context.Context, op model.Operation, form model.FormState) model.Outcome {
	if form.CurrentShopID == "" {
		d.logger.LogWarning(fmt.Sprintf("%s rejected: shop not resolved", op), zap.String("operation", string(op)))
		return model.Outcome{Operation: op, Message: msgShopUnresolved, Severity: model.SeverityError, Err: ErrShopUnresolved}
	}
	if err := form.FirstInputError(op.Fields()...); err != nil {
		d.logger.LogWarning(fmt.Sprintf("%s rejected: %v", op, err), zap.String("operation", string(op)))
		return model.Outcome{Operation: op, Message: err.Error(), Severity: model.SeverityError, Err: err}
	}

	if d.flight == nil {
		return d.settle(ctx, op, form)
	}
	v, _, shared := d.flight.Do(flightKey(op, form), func() (any, error) {
		return d.settle(ctx, op, form), nil
	})
	if shared {
		d.logger.Log(fmt.Sprintf("%s shared an in-flight request", op), zap.String("operation", string(op)))
	}
	return v.(model.Outcome)
}

func flightKey(op model.Operation, form model.FormState) string {
	switch op {
	case model.OpLoadProductsAndTags:
		return fmt.Sprintf("%s|%s|%d|%d", op, form.CurrentShopID, form.DesiredProductCount, form.DesiredTagCount)
	case model.OpLoadOrders:
		return fmt.Sprintf("%s|%s|%d", op, form.CurrentShopID, form.DesiredOrderCount)
	}
	return fmt.Sprintf("%s|%s", op, form.CurrentShopID)
}

func (d *DummyData) settle(ctx context.Context, op model.Operation, form model.FormState) model.Outcome {
	start := d.now()
	outcome := d.call(ctx, op, form)
	elapsed := d.now().Sub(start)

	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.String("shop_id", form.CurrentShopID),
		zap.Duration("elapsed", elapsed),
	}
	switch {
	case outcome.Err != nil:
		d.logger.LogError(fmt.Sprintf("%s failed", op), outcome.Err, fields...)
	case outcome.OK():
		d.logger.LogSuccess(outcome.Message, fields...)
	default:
		d.logger.LogWarning(outcome.Message, fields...)
	}

	d.metrics.Observe(op, outcome.Severity, elapsed)

	if d.journal != nil {
		entry := journal.Entry{
			Operation: op,
			ShopID:    form.CurrentShopID,
			Severity:  outcome.Severity,
			Message:   outcome.Message,
			SettledAt: d.now(),
		}
		if err := d.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
			d.logger.LogError("journal record failed", err, fields...)
		}
	}
	return outcome
}

func (d *DummyData) call(ctx context.Context, op model.Operation, form model.FormState) model.Outcome {
	shopID := form.CurrentShopID
	switch op {
	case model.OpLoadProductsAndTags:
		payload, err := d.api.LoadProductsAndTags(ctx, model.LoadProductsAndTagsInput{
			ShopID:              shopID,
			DesiredProductCount: form.DesiredProductCount,
			DesiredTagCount:     form.DesiredTagCount,
		})
		if err != nil {
			return failed(op, err)
		}
		return succeeded(op, productsAndTagsMessage(payload))

	case model.OpLoadOrders:
		payload, err := d.api.LoadOrders(ctx, model.LoadOrdersInput{
			ShopID:            shopID,
			DesiredOrderCount: form.DesiredOrderCount,
		})
		if err != nil {
			return failed(op, err)
		}
		return succeeded(op, ordersMessage(payload))

	case model.OpLoadProductImages:
		payload, err := d.api.LoadProductImages(ctx, model.LoadProductImagesInput{ShopID: shopID})
		if err != nil {
			return failed(op, err)
		}
		if !payload.WasDataLoaded {
			return model.Outcome{Operation: op, Message: msgImagesNotLoaded, Severity: model.SeverityError}
		}
		return succeeded(op, msgImagesLoaded)

	case model.OpRemoveAllData:
		payload, err := d.api.RemoveAllData(ctx, model.RemoveAllDataInput{ShopID: shopID})
		if err != nil {
			return failed(op, err)
		}
		if !payload.WasDataRemoved {
			return model.Outcome{Operation: op, Message: msgDataNotRemoved, Severity: model.SeverityError}
		}
		return succeeded(op, msgDataRemoved)
	}
	return failed(op, fmt.Errorf("unknown operation %q", op))
}

func succeeded(op model.Operation, message string) model.Outcome {
	return model.Outcome{Operation: op, Message: message, Severity: model.SeveritySuccess}
}

func failed(op model.Operation, err error) model.Outcome {
	return model.Outcome{Operation: op, Message: err.Error(), Severity: model.SeverityError, Err: err}
}
