package storage

import (
	"errors"
	"time"

	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Job statuses, in workflow order.
const (
	StatusSubmitted  = "Submitted"
	StatusProcessing = "Processing"
	StatusReady      = "Ready"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

var JobStatuses = []string{StatusSubmitted, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled}

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRefunded = "Refunded"
)

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentRefunded}

const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Job struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	FileName      string          `db:"file_name" json:"file_name"`
	Pages         int             `db:"pages" json:"pages"`
	Copies        int             `db:"copies" json:"copies"`
	ColorMode     string          `db:"color_mode" json:"color_mode"`
	Sidedness     string          `db:"sidedness" json:"sidedness"`
	PrintQuality  string          `db:"print_quality" json:"print_quality"`
	PaperType     string          `db:"paper_type" json:"paper_type"`
	PaperSize     string          `db:"paper_size" json:"paper_size"`
	Orientation   string          `db:"orientation" json:"orientation"`
	Binding       string          `db:"binding" json:"binding"`
	Finishing     string          `db:"finishing" json:"finishing"`
	Delivery      string          `db:"delivery" json:"delivery"`
	Address       string          `db:"address" json:"address"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	PaymentStatus string          `db:"payment_status" json:"payment_status"`
	Notes         string          `db:"notes" json:"notes"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Points        float64         `db:"points" json:"points"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewJob builds an unsaved job from priced options.
func NewJob(userID int64, opts pricing.Options, price decimal.Decimal, points float64) Job {
	return Job{
		UserID:        userID,
		FileName:      opts.FileName,
		Pages:         opts.Pages,
		Copies:        opts.Copies,
		ColorMode:     string(opts.ColorMode),
		Sidedness:     string(opts.Sidedness),
		PrintQuality:  string(opts.PrintQuality),
		PaperType:     string(opts.PaperType),
		PaperSize:     opts.PaperSize,
		Orientation:   opts.Orientation,
		Binding:       string(opts.Binding),
		Finishing:     string(opts.Finishing),
		Delivery:      string(opts.Delivery),
		PaymentMethod: PaymentCash,
		PaymentStatus: PaymentPending,
		Price:         price,
		Points:        points,
		Status:        StatusSubmitted,
	}
}

// Options returns the print options the job was priced with.
func (j Job) Options() pricing.Options {
	return pricing.Options{
		FileName:     j.FileName,
		Pages:        j.Pages,
		Copies:       j.Copies,
		ColorMode:    pricing.ColorMode(j.ColorMode),
		Sidedness:    pricing.Sidedness(j.Sidedness),
		PrintQuality: pricing.Quality(j.PrintQuality),
		PaperType:    pricing.PaperType(j.PaperType),
		PaperSize:    j.PaperSize,
		Orientation:  j.Orientation,
		Binding:      pricing.Binding(j.Binding),
		Finishing:    pricing.Finishing(j.Finishing),
		Delivery:     pricing.Delivery(j.Delivery),
	}
}

// JobFilter narrows ListJobs. A zero UserID lists every user's jobs.
type JobFilter struct {
	UserID int64
	Limit  int
}

type UserJobCount struct {
	UserID int64  `db:"user_id" json:"user_id"`
	Name   string `db:"name" json:"name"`
	Jobs   int    `db:"jobs" json:"jobs"`
}

// Rewards is a user's balance together with the redemption log, newest
// first.
type Rewards struct {
	UserID      int64                `json:"user_id"`
	Points      float64              `json:"points"`
	Redemptions []rewards.Redemption `json:"redemptions"`
}

type OrderStatistics struct {
	TotalOrders  int             `db:"total_orders" json:"total_orders"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	TodayOrders  int             `json:"today_orders"`
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	WeekOrders   int             `json:"week_orders"`
	WeekRevenue  decimal.Decimal `json:"week_revenue"`
	MonthOrders  int             `json:"month_orders"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	StatusCounts map[string]int  `json:"status_counts"`
}

func ValidStatus(s string) bool {
	return contains(JobStatuses, s)
}

func ValidPaymentStatus(s string) bool {
	return contains(PaymentStatuses, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
