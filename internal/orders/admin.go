package orders

import (
	"context"
	"fmt"
	"io"
	"time"

	"printit-bot/internal/export"
	"printit-bot/internal/pricing"
	"printit-bot/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) requireAdmin(actor int64) error {
	if !s.IsAdmin(actor) {
		s.logger.Warn("Admin action refused", zap.Int64("chat_id", actor))
		return ErrForbidden
	}
	return nil
}

// AllOrders lists every job matching query, newest first.
func (s *Service) AllOrders(ctx context.Context, actor int64, query string) ([]storage.Job, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	jobs, err := s.store.ListJobs(ctx, storage.JobFilter{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return Filter(jobs, query, AdminFields), nil
}

// Order returns any job by id.
func (s *Service) Order(ctx context.Context, actor, jobID int64) (*storage.Job, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.GetJob(ctx, jobID)
}

func (s *Service) SetStatus(ctx context.Context, actor, jobID int64, status string) (string, error) {
	if err := s.requireAdmin(actor); err != nil {
		return "", err
	}
	st, ok := ParseStatus(status)
	if !ok {
		return "", fmt.Errorf("unknown status %q", status)
	}
	if err := s.store.UpdateJobStatus(ctx, jobID, st); err != nil {
		return "", err
	}

	s.logger.Info("Job status changed",
		zap.Int64("chat_id", actor),
		zap.Int64("job_id", jobID),
		zap.String("status", st))
	return st, nil
}

func (s *Service) SetPaymentStatus(ctx context.Context, actor, jobID int64, status string) (string, error) {
	if err := s.requireAdmin(actor); err != nil {
		return "", err
	}
	st, ok := ParsePaymentStatus(status)
	if !ok {
		return "", fmt.Errorf("unknown payment status %q", status)
	}
	if err := s.store.UpdatePaymentStatus(ctx, jobID, st); err != nil {
		return "", err
	}

	s.logger.Info("Payment status changed",
		zap.Int64("chat_id", actor),
		zap.Int64("job_id", jobID),
		zap.String("payment_status", st))
	return st, nil
}

func (s *Service) Delete(ctx context.Context, actor, jobID int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	return s.store.DeleteJob(ctx, jobID)
}

func (s *Service) Users(ctx context.Context, actor int64) ([]storage.UserJobCount, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.UserJobCounts(ctx)
}

// Export writes every job in format ("csv" or "xlsx") to w.
func (s *Service) Export(ctx context.Context, actor int64, w io.Writer, format string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	jobs, err := s.store.ListJobs(ctx, storage.JobFilter{})
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	return export.Write(w, format, jobs)
}

func (s *Service) Overrides(ctx context.Context, actor int64) (pricing.Overrides, pricing.Config, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, pricing.Config{}, err
	}
	o, err := s.store.GetPricingOverrides(ctx)
	if err != nil {
		return nil, pricing.Config{}, fmt.Errorf("load overrides: %w", err)
	}
	return o, s.table.Apply(o), nil
}

// SetOverrides validates and stores each key=value pair. Nothing is
// saved if any pair is rejected.
func (s *Service) SetOverrides(ctx context.Context, actor int64, values map[string]string) (pricing.Overrides, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	o, err := s.store.GetPricingOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	for k, v := range values {
		if err := o.Set(k, v); err != nil {
			return nil, err
		}
	}

	if err := s.store.SavePricingOverrides(ctx, o, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Pricing overrides updated",
		zap.Int64("chat_id", actor),
		zap.Any("overrides", o))
	return o, nil
}

func (s *Service) ResetOverrides(ctx context.Context, actor int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	return s.store.ResetPricingOverrides(ctx)
}

type sample struct {
	fileName      string
	pages, copies int
	color         pricing.ColorMode
	sides         pricing.Sidedness
	binding       pricing.Binding
	payment       string
	price         int64
	status        string
}

var samples = []sample{
	{"Report.pdf", 24, 1, pricing.ColorBW, pricing.SidedTwo, pricing.BindingSpiral, storage.PaymentOnline, 120, storage.StatusProcessing},
	{"Handout.docx", 4, 20, pricing.ColorBW, pricing.SidedOne, pricing.BindingStaple, storage.PaymentCash, 80, storage.StatusSubmitted},
	{"Photos.zip", 10, 2, pricing.ColorColor, pricing.SidedOne, pricing.BindingNone, storage.PaymentOnline, 300, storage.StatusReady},
}

// SimulateOrders adds three demo jobs owned by actor, an hour apart, at
// fixed prices and without reward points.
func (s *Service) SimulateOrders(ctx context.Context, actor int64) ([]storage.Job, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := make([]storage.Job, 0, len(samples))
	for i, sm := range samples {
		opts := pricing.DefaultOptions()
		opts.FileName = sm.fileName
		opts.Pages, opts.Copies = sm.pages, sm.copies
		opts.ColorMode, opts.Sidedness, opts.Binding = sm.color, sm.sides, sm.binding

		job := storage.NewJob(actor, opts, decimal.NewFromInt(sm.price), 0)
		job.PaymentMethod = sm.payment
		if sm.payment == storage.PaymentOnline {
			job.PaymentStatus = storage.PaymentPaid
		}
		job.Status = sm.status
		job.CreatedAt = now.Add(-time.Duration(i) * time.Hour)

		id, err := s.store.SaveJob(ctx, job)
		if err != nil {
			return out, fmt.Errorf("save sample %s: %w", sm.fileName, err)
		}
		job.ID = id
		out = append(out, job)
	}
	return out, nil
}

func (s *Service) ClearAll(ctx context.Context, actor int64) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	s.logger.Warn("All orders and rewards cleared", zap.Int64("chat_id", actor))
	return nil
}

func (s *Service) Stats(ctx context.Context, actor int64) (*storage.OrderStatistics, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.GetOrderStatistics(ctx)
}
