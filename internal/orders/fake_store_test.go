package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"
	"printit-bot/internal/storage"
)

type fakeStore struct {
	mu          sync.Mutex
	users       map[int64]storage.User
	jobs        map[int64]storage.Job
	nextID      int64
	points      map[int64]float64
	redemptions map[int64][]rewards.Redemption
	overrides   []byte
	hits        map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[int64]storage.User{},
		jobs:        map[int64]storage.Job{},
		points:      map[int64]float64{},
		redemptions: map[int64][]rewards.Redemption{},
		hits:        map[string]int64{},
	}
}

func (f *fakeStore) UpsertUser(_ context.Context, u storage.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) UserJobCounts(_ context.Context) ([]storage.UserJobCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[int64]int{}
	for _, j := range f.jobs {
		counts[j.UserID]++
	}
	var out []storage.UserJobCount
	for id, n := range counts {
		out = append(out, storage.UserJobCount{UserID: id, Name: f.users[id].Name, Jobs: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeStore) SaveJob(_ context.Context, job storage.Job) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	job.ID = f.nextID
	f.jobs[job.ID] = job
	return job.ID, nil
}

func (f *fakeStore) GetJob(_ context.Context, id int64) (*storage.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %d: %w", id, storage.ErrNotFound)
	}
	return &j, nil
}

func (f *fakeStore) ListJobs(_ context.Context, filter storage.JobFilter) ([]storage.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.Job
	for _, j := range f.jobs {
		if filter.UserID == 0 || j.UserID == filter.UserID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].ID > out[k].ID
		}
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) CountUserJobs(ctx context.Context, userID int64) (int, error) {
	jobs, _ := f.ListJobs(ctx, storage.JobFilter{UserID: userID})
	return len(jobs), nil
}

func (f *fakeStore) update(id int64, fn func(*storage.Job)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return storage.ErrNotFound
	}
	fn(&j)
	f.jobs[id] = j
	return nil
}

func (f *fakeStore) UpdateJobStatus(_ context.Context, id int64, status string) error {
	return f.update(id, func(j *storage.Job) { j.Status = status })
}

func (f *fakeStore) UpdatePaymentStatus(_ context.Context, id int64, status string) error {
	return f.update(id, func(j *storage.Job) { j.PaymentStatus = status })
}

func (f *fakeStore) DeleteJob(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeStore) DeleteUserJobs(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, j := range f.jobs {
		if j.UserID == userID {
			delete(f.jobs, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ClearAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = map[int64]storage.Job{}
	f.points = map[int64]float64{}
	f.redemptions = map[int64][]rewards.Redemption{}
	return nil
}

func (f *fakeStore) GetRewards(_ context.Context, userID int64) (*storage.Rewards, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &storage.Rewards{UserID: userID, Points: f.points[userID], Redemptions: f.redemptions[userID]}, nil
}

func (f *fakeStore) AddPoints(_ context.Context, userID int64, points float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[userID] += points
	return f.points[userID], nil
}

func (f *fakeStore) RedeemPoints(_ context.Context, userID int64, redeem func(float64) (rewards.Outcome, error)) (rewards.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := redeem(f.points[userID])
	if err != nil {
		return rewards.Outcome{}, err
	}
	f.points[userID] = out.Balance
	f.redemptions[userID] = append([]rewards.Redemption{out.Redemption}, f.redemptions[userID]...)
	return out, nil
}

func (f *fakeStore) GetPricingOverrides(_ context.Context) (pricing.Overrides, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pricing.ParseOverrides(f.overrides)
}

func (f *fakeStore) SavePricingOverrides(_ context.Context, o pricing.Overrides, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	f.overrides = data
	return nil
}

func (f *fakeStore) ResetPricingOverrides(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides = nil
	return nil
}

func (f *fakeStore) GetOrderStatistics(ctx context.Context) (*storage.OrderStatistics, error) {
	jobs, _ := f.ListJobs(ctx, storage.JobFilter{})
	stats := &storage.OrderStatistics{StatusCounts: map[string]int{}}
	for _, j := range jobs {
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(j.Price)
		stats.StatusCounts[j.Status]++
	}
	return stats, nil
}

func (f *fakeStore) CheckRateLimit(_ context.Context, userID int64, action string, limit int64, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d:%s", userID, action)
	f.hits[key]++
	return f.hits[key] > limit, nil
}
