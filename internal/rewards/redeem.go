package rewards

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCost   = 50
	DefaultReward = "Sample ₹100 Off"
)

var ErrInsufficientPoints = errors.New("insufficient points")

type InsufficientPointsError struct {
	Balance float64
	Cost    float64
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: have %s, need %s", formatPoints(e.Balance), formatPoints(e.Cost))
}

func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}

// Redemption is one entry of a customer's redemption log.
type Redemption struct {
	ID   string    `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Cost float64   `json:"cost" db:"cost"`
	At   time.Time `json:"at" db:"redeemed_at"`
}

// Outcome is the result of a successful redemption. Persisting it is
// up to the caller.
type Outcome struct {
	Balance    float64
	Redemption Redemption
}

// Redeemer spends a fixed number of points on a fixed reward.
type Redeemer struct {
	Cost   float64
	Reward string
	Now    func() time.Time
	NewID  func() string
}

// NewRedeemer returns a Redeemer for the default reward. A non-positive
// cost falls back to DefaultCost.
func NewRedeemer(cost float64) *Redeemer {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Redeemer{
		Cost:   cost,
		Reward: DefaultReward,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

func (r *Redeemer) Redeem(balance float64) (Outcome, error) {
	if balance < r.Cost {
		return Outcome{}, &InsufficientPointsError{Balance: balance, Cost: r.Cost}
	}

	return Outcome{
		Balance: balance - r.Cost,
		Redemption: Redemption{
			ID:   r.NewID(),
			Name: r.Reward,
			Cost: r.Cost,
			At:   r.Now().UTC(),
		},
	}, nil
}
