package rewards

import (
	"errors"
	"testing"
	"time"
)

func fixedRedeemer() *Redeemer {
	r := NewRedeemer(DefaultCost)
	r.Now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	r.NewID = func() string { return "r-1" }
	return r
}

func TestRedeem_Insufficient(t *testing.T) {
	_, err := fixedRedeemer().Redeem(40)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	var insufficient *InsufficientPointsError
	if !errors.As(err, &insufficient) || insufficient.Balance != 40 || insufficient.Cost != 50 {
		t.Errorf("Incorrect error details: %v", err)
	}
	if err.Error() != "insufficient points: have 40, need 50" {
		t.Errorf("Incorrect message: %q", err.Error())
	}
}

func TestRedeem_ExactBalance(t *testing.T) {
	out, err := fixedRedeemer().Redeem(50)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if out.Balance != 0 {
		t.Errorf("Incorrect balance, got %v, want 0", out.Balance)
	}

	r := out.Redemption
	if r.ID != "r-1" || r.Name != DefaultReward || r.Cost != 50 {
		t.Errorf("Incorrect redemption: %+v", r)
	}
	if !r.At.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Incorrect timestamp: %v", r.At)
	}
}

func TestNewRedeemer_Defaults(t *testing.T) {
	r := NewRedeemer(0)
	if r.Cost != DefaultCost {
		t.Errorf("Incorrect default cost, got %v", r.Cost)
	}

	a, err := r.Redeem(120)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	b, err := r.Redeem(120)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if a.Redemption.ID == "" || a.Redemption.ID == b.Redemption.ID {
		t.Errorf("redemption ids not unique: %q %q", a.Redemption.ID, b.Redemption.ID)
	}
	if a.Balance != 70 {
		t.Errorf("Incorrect balance, got %v", a.Balance)
	}
}
