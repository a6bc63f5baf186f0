package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"
	"printit-bot/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrRateLimited = errors.New("too many orders, try again later")
	ErrForbidden   = errors.New("admin rights required")
)

// Store is the persistence the service depends on. It is satisfied by
// *storage.PostgresStorage.
type Store interface {
	UpsertUser(ctx context.Context, u storage.User) error
	GetUser(ctx context.Context, id int64) (*storage.User, error)
	UserJobCounts(ctx context.Context) ([]storage.UserJobCount, error)

	SaveJob(ctx context.Context, job storage.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*storage.Job, error)
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]storage.Job, error)
	CountUserJobs(ctx context.Context, userID int64) (int, error)
	UpdateJobStatus(ctx context.Context, id int64, status string) error
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	DeleteJob(ctx context.Context, id int64) error
	DeleteUserJobs(ctx context.Context, userID int64) (int64, error)
	ClearAll(ctx context.Context) error

	GetRewards(ctx context.Context, userID int64) (*storage.Rewards, error)
	AddPoints(ctx context.Context, userID int64, points float64) (float64, error)
	RedeemPoints(ctx context.Context, userID int64, redeem func(balance float64) (rewards.Outcome, error)) (rewards.Outcome, error)

	GetPricingOverrides(ctx context.Context) (pricing.Overrides, error)
	SavePricingOverrides(ctx context.Context, o pricing.Overrides, updatedBy int64) error
	ResetPricingOverrides(ctx context.Context) error

	GetOrderStatistics(ctx context.Context) (*storage.OrderStatistics, error)
	CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

type Settings struct {
	// Table is the price list overrides are applied on top of.
	Table           pricing.Config
	Mode            pricing.Mode
	RedeemCost      float64
	AdminIDs        []int64
	OrdersPerWindow int64
	Window          time.Duration
}

type Service struct {
	store    Store
	table    pricing.Config
	mode     pricing.Mode
	redeemer *rewards.Redeemer
	admins   map[int64]bool
	limit    int64
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(store Store, settings Settings, logger *zap.Logger) *Service {
	admins := make(map[int64]bool, len(settings.AdminIDs))
	for _, id := range settings.AdminIDs {
		admins[id] = true
	}

	table := settings.Table
	if table.Quality == nil {
		table = pricing.DefaultConfig()
	}

	return &Service{
		store:    store,
		table:    table,
		mode:     settings.Mode,
		redeemer: rewards.NewRedeemer(settings.RedeemCost),
		admins:   admins,
		limit:    settings.OrdersPerWindow,
		window:   settings.Window,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Service) IsAdmin(userID int64) bool {
	return s.admins[userID]
}

func (s *Service) RedeemCost() float64 {
	return s.redeemer.Cost
}

// Register records a user on first contact. Admin role follows the
// configured admin ids.
func (s *Service) Register(ctx context.Context, userID int64, name, username string) (*storage.User, error) {
	u := storage.User{ID: userID, Name: name, Username: username, Role: storage.RoleUser}
	if s.IsAdmin(userID) {
		u.Role = storage.RoleAdmin
	}
	if err := s.store.UpsertUser(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &u, nil
}

// ParseOptions applies the configured validation mode to form input.
func (s *Service) ParseOptions(raw map[string]string) (pricing.Options, error) {
	return pricing.ParseOptions(raw, s.mode)
}

// PriceConfig builds the config for one estimate from the table and the
// current overrides.
func (s *Service) PriceConfig(ctx context.Context) (pricing.Config, error) {
	o, err := s.store.GetPricingOverrides(ctx)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("load overrides: %w", err)
	}
	return s.table.Apply(o), nil
}

func (s *Service) Quote(ctx context.Context, opts pricing.Options) (pricing.Quote, error) {
	cfg, err := s.PriceConfig(ctx)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Breakdown(opts, cfg), nil
}

// Details are the non-pricing fields captured with an order.
type Details struct {
	Address       string
	PaymentMethod string
	Notes         string
}

// Submit prices opts with a fresh config, stores the job and credits the
// reward points.
func (s *Service) Submit(ctx context.Context, userID int64, opts pricing.Options, d Details) (*storage.Job, error) {
	if s.limit > 0 {
		limited, err := s.store.CheckRateLimit(ctx, userID, "order", s.limit, s.window)
		if err != nil {
			s.logger.Warn("Rate limit check failed",
				zap.Int64("chat_id", userID),
				zap.Error(err))
		} else if limited {
			return nil, ErrRateLimited
		}
	}

	if s.mode == pricing.Strict {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
	}

	q, err := s.Quote(ctx, opts)
	if err != nil {
		return nil, err
	}

	job := storage.NewJob(userID, opts, q.Total, q.Points)
	job.Pages, job.Copies = q.Pages, q.Copies
	job.Address = d.Address
	job.Notes = d.Notes
	if d.PaymentMethod == storage.PaymentOnline {
		job.PaymentMethod = storage.PaymentOnline
	}
	job.CreatedAt = s.now().UTC()

	return s.save(ctx, job)
}

// Repeat places a copy of one of the user's own jobs at its original
// price.
func (s *Service) Repeat(ctx context.Context, userID, jobID int64) (*storage.Job, error) {
	orig, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if orig.UserID != userID {
		return nil, fmt.Errorf("job %d: %w", jobID, storage.ErrNotFound)
	}

	job := *orig
	job.ID = 0
	job.Status = storage.StatusSubmitted
	job.PaymentStatus = storage.PaymentPending
	job.CreatedAt = s.now().UTC()
	job.Points = pricing.RewardPoints(orig.Options())

	return s.save(ctx, job)
}

func (s *Service) save(ctx context.Context, job storage.Job) (*storage.Job, error) {
	id, err := s.store.SaveJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	job.ID = id

	if job.Points > 0 {
		if _, err := s.store.AddPoints(ctx, job.UserID, job.Points); err != nil {
			return nil, fmt.Errorf("credit points for job %d: %w", id, err)
		}
	}

	s.logger.Info("Job submitted",
		zap.Int64("chat_id", job.UserID),
		zap.Int64("job_id", id),
		zap.String("price", job.Price.StringFixed(2)),
		zap.Float64("points", job.Points))

	return &job, nil
}

// History lists the user's jobs matching query, newest first.
func (s *Service) History(ctx context.Context, userID int64, query string) ([]storage.Job, error) {
	jobs, err := s.store.ListJobs(ctx, storage.JobFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return Filter(jobs, query, HistoryFields), nil
}

func (s *Service) ClearHistory(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.DeleteUserJobs(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return n, nil
}

func (s *Service) Rewards(ctx context.Context, userID int64) (rewards.Summary, error) {
	r, err := s.store.GetRewards(ctx, userID)
	if err != nil {
		return rewards.Summary{}, fmt.Errorf("load rewards: %w", err)
	}
	n, err := s.store.CountUserJobs(ctx, userID)
	if err != nil {
		return rewards.Summary{}, fmt.Errorf("count orders: %w", err)
	}
	return rewards.NewSummary(r.Points, n, r.Redemptions), nil
}

// Redeem spends the redemption cost. A short balance surfaces as
// *rewards.InsufficientPointsError.
func (s *Service) Redeem(ctx context.Context, userID int64) (rewards.Outcome, error) {
	out, err := s.store.RedeemPoints(ctx, userID, s.redeemer.Redeem)
	if err != nil {
		return rewards.Outcome{}, err
	}
	return out, nil
}
