package orders

import (
	"strconv"
	"strings"

	"printit-bot/internal/storage"
)

// Field extracts one searchable value from a job.
type Field func(storage.Job) string

var (
	// HistoryFields are searched on a customer's own history.
	HistoryFields = []Field{
		func(j storage.Job) string { return j.FileName },
		func(j storage.Job) string { return j.ColorMode },
		func(j storage.Job) string { return j.Binding },
		func(j storage.Job) string { return j.Sidedness },
		func(j storage.Job) string { return j.Status },
	}

	// AdminFields are searched on the all-orders view.
	AdminFields = []Field{
		func(j storage.Job) string { return j.FileName },
		func(j storage.Job) string { return j.Status },
		func(j storage.Job) string { return strconv.FormatInt(j.UserID, 10) },
		func(j storage.Job) string { return j.PaymentMethod },
	}
)

// Filter keeps jobs whose joined fields contain query, ignoring case.
// An empty query keeps everything.
func Filter(jobs []storage.Job, query string, fields []Field) []storage.Job {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return jobs
	}

	out := make([]storage.Job, 0, len(jobs))
	for _, j := range jobs {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f(j)
		}
		if strings.Contains(strings.ToLower(strings.Join(parts, " ")), q) {
			out = append(out, j)
		}
	}
	return out
}

// ParseStatus matches a job status case-insensitively.
func ParseStatus(s string) (string, bool) {
	return match(storage.JobStatuses, s)
}

// ParsePaymentStatus matches a payment status case-insensitively.
func ParsePaymentStatus(s string) (string, bool) {
	return match(storage.PaymentStatuses, s)
}

func match(list []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return v, true
		}
	}
	return "", false
}
