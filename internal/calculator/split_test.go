package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		mode         SplitMode
		shares       []Share
		wantErr      error
		validateFunc func(t *testing.T, got []contributionView)
	}{
		{
			name:  "amount split matching total",
			total: 50,
			mode:  SplitByAmount,
			shares: []Share{
				{RoommateID: "alice", Value: 30},
				{RoommateID: "bob", Value: 20, Paid: true},
			},
			validateFunc: func(t *testing.T, got []contributionView) {
				if len(got) != 2 {
					t.Fatalf("expected 2 contributions, got %d", len(got))
				}
				if got[0].id != "alice" || math.Abs(got[0].amount-30) > 0.01 || got[0].paid {
					t.Errorf("alice contribution = %+v", got[0])
				}
				if got[1].id != "bob" || math.Abs(got[1].amount-20) > 0.01 || !got[1].paid {
					t.Errorf("bob contribution = %+v", got[1])
				}
			},
		},
		{
			name:  "amount split within one cent is accepted",
			total: 100,
			mode:  SplitByAmount,
			shares: []Share{
				{RoommateID: "alice", Value: 33.33},
				{RoommateID: "bob", Value: 33.33},
				{RoommateID: "carol", Value: 33.33},
			},
			validateFunc: func(t *testing.T, got []contributionView) {
				if !SumWithin(viewAmounts(got), 100) {
					t.Errorf("sum = %s, want 100 within 0.01", FormatAmount(Add(viewAmounts(got)...)))
				}
			},
		},
		{
			name:  "amount split off by more than a cent",
			total: 50,
			mode:  SplitByAmount,
			shares: []Share{
				{RoommateID: "alice", Value: 30},
				{RoommateID: "bob", Value: 15},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:  "percentage split converts to amounts",
			total: 80,
			mode:  SplitByPercentage,
			shares: []Share{
				{RoommateID: "alice", Value: 25},
				{RoommateID: "bob", Value: 75},
			},
			validateFunc: func(t *testing.T, got []contributionView) {
				// alice: 80 * 25 / 100 = 20, bob: 80 * 75 / 100 = 60
				if math.Abs(got[0].amount-20) > 1e-9 {
					t.Errorf("alice amount = %v, want 20", got[0].amount)
				}
				if math.Abs(got[1].amount-60) > 1e-9 {
					t.Errorf("bob amount = %v, want 60", got[1].amount)
				}
				if Add(viewAmounts(got)...) != 80 {
					t.Errorf("sum = %v, want 80", Add(viewAmounts(got)...))
				}
			},
		},
		{
			name:  "percentages not summing to 100",
			total: 80,
			mode:  SplitByPercentage,
			shares: []Share{
				{RoommateID: "alice", Value: 50},
				{RoommateID: "bob", Value: 40},
			},
			wantErr: ErrPercentageMismatch,
		},
		{
			name:    "non-positive total",
			total:   0,
			mode:    SplitByAmount,
			shares:  []Share{{RoommateID: "alice", Value: 0}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN total",
			total:   math.NaN(),
			mode:    SplitByAmount,
			shares:  []Share{{RoommateID: "alice", Value: 1}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "no shares",
			total:   10,
			mode:    SplitByAmount,
			wantErr: ErrNoParticipants,
		},
		{
			name:  "duplicate roommate",
			total: 10,
			mode:  SplitByAmount,
			shares: []Share{
				{RoommateID: "alice", Value: 5},
				{RoommateID: "alice", Value: 5},
			},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:  "negative share",
			total: 10,
			mode:  SplitByAmount,
			shares: []Share{
				{RoommateID: "alice", Value: 15},
				{RoommateID: "bob", Value: -5},
			},
			wantErr: ErrNegativeShare,
		},
		{
			name:    "unknown mode",
			total:   10,
			mode:    "shares",
			shares:  []Share{{RoommateID: "alice", Value: 10}},
			wantErr: ErrUnknownSplitMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSplit(tt.total, tt.mode, tt.shares)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CalculateSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateSplit() unexpected error: %v", err)
			}
			views := make([]contributionView, len(got))
			for i, c := range got {
				views[i] = contributionView{id: c.RoommateID, amount: c.Amount, paid: c.Paid}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, views)
			}
		})
	}
}

type contributionView struct {
	id     string
	amount float64
	paid   bool
}

func viewAmounts(views []contributionView) []float64 {
	amounts := make([]float64, len(views))
	for i, v := range views {
		amounts[i] = v.amount
	}
	return amounts
}

func TestSplitEvenly(t *testing.T) {
	ids := []string{"alice", "bob", "carol"}

	t.Run("amount mode rounds to cents", func(t *testing.T) {
		shares := SplitEvenly(100, ids, SplitByAmount)
		if len(shares) != 3 {
			t.Fatalf("expected 3 shares, got %d", len(shares))
		}
		for i, s := range shares {
			if s.RoommateID != ids[i] {
				t.Errorf("share %d roommate = %s, want %s", i, s.RoommateID, ids[i])
			}
			if s.Value != 33.33 {
				t.Errorf("share %d value = %v, want 33.33", i, s.Value)
			}
		}
		// The rounded pre-fill still passes validation.
		if _, err := CalculateSplit(100, SplitByAmount, shares); err != nil {
			t.Errorf("rounded even split rejected: %v", err)
		}
	})

	t.Run("percentage mode ignores total", func(t *testing.T) {
		shares := SplitEvenly(42, ids, SplitByPercentage)
		for _, s := range shares {
			if s.Value != 33.33 {
				t.Errorf("value = %v, want 33.33", s.Value)
			}
		}
	})

	t.Run("two roommates", func(t *testing.T) {
		shares := SplitEvenly(45.5, ids[:2], SplitByAmount)
		for _, s := range shares {
			if s.Value != 22.75 {
				t.Errorf("value = %v, want 22.75", s.Value)
			}
		}
	})

	t.Run("nothing to split", func(t *testing.T) {
		if got := SplitEvenly(0, ids, SplitByAmount); got != nil {
			t.Errorf("zero total: got %v, want nil", got)
		}
		if got := SplitEvenly(10, nil, SplitByAmount); got != nil {
			t.Errorf("no roommates: got %v, want nil", got)
		}
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyHelpers(t *testing.T) {
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Errorf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Remaining(100, 66.66); got != 33.34 {
		t.Errorf("Remaining(100, 66.66) = %v, want 33.34", got)
	}
	if Exceeds(33.34, 33.34) {
		t.Error("Exceeds(33.34, 33.34) = true, want false")
	}
	if !Exceeds(33.35, 33.34) {
		t.Error("Exceeds(33.35, 33.34) = false, want true")
	}
	if got := FormatAmount(5); got != "5.00" {
		t.Errorf("FormatAmount(5) = %q, want 5.00", got)
	}
	if got := Round2(2.345); got != 2.35 {
		t.Errorf("Round2(2.345) = %v, want 2.35", got)
	}
}

func TestSumWithin(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{"exact", []float64{60, 40}, 100, true},
		{"three thirds one cent short", []float64{33.33, 33.33, 33.33}, 100, true},
		{"three thirds four cents short", []float64{33.32, 33.32, 33.32}, 100, false},
		{"two shares one cent short", []float64{33.33, 66.66}, 100, true},
		{"one cent over", []float64{50.01, 50}, 100, true},
		{"two cents short", []float64{49.99, 49.99}, 100, false},
		{"percentages", []float64{33.33, 33.33, 33.34}, 100, true},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SumWithin(tt.values, tt.want); got != tt.ok {
				t.Errorf("SumWithin(%v, %v) = %v, want %v", tt.values, tt.want, got, tt.ok)
			}
		})
	}
}
