package monthlyreview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/application/adapter"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

func assertDecimal(t *testing.T, name, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", name, want, got.String())
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	ctx := context.Background()
	march := valueobject.NewMonthWindow(day(2024, time.March, 15))

	t.Run("window bounds are inclusive on both ends", func(t *testing.T) {
		f := newFixture("25")
		groceries := f.ledger.addCategory(f.user.ID, "Groceries")
		f.ledger.addExpense(f.user.ID, groceries.ID, "100", day(2024, time.February, 29))
		f.ledger.addExpense(f.user.ID, groceries.ID, "200", day(2024, time.March, 1))
		f.ledger.addExpense(f.user.ID, groceries.ID, "300", day(2024, time.March, 31))
		f.ledger.addExpense(f.user.ID, groceries.ID, "400", day(2024, time.April, 1))
		f.ledger.addIncome(f.user.ID, "1000", day(2024, time.March, 31))
		f.ledger.addIncome(f.user.ID, "9999", day(2024, time.April, 1))

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "total expenses", "500", result.TotalExpenses)
		assertDecimal(t, "total income", "1000", result.TotalIncome)
		assertDecimal(t, "total hours", "20", result.TotalLifeEnergyHours)
		if len(result.Categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(result.Categories))
		}
	})

	t.Run("sums income and converts spend per category", func(t *testing.T) {
		f := newFixture("25")
		dining := f.ledger.addCategory(f.user.ID, "Dining")
		rent := f.ledger.addCategory(f.user.ID, "Rent")
		f.ledger.addExpense(f.user.ID, rent.ID, "1200", day(2024, time.March, 1))
		f.ledger.addExpense(f.user.ID, dining.ID, "200", day(2024, time.March, 10))
		f.ledger.addExpense(f.user.ID, dining.ID, "150", day(2024, time.March, 20))
		f.ledger.addIncome(f.user.ID, "3000", day(2024, time.March, 5))
		f.ledger.addIncome(f.user.ID, "500", day(2024, time.March, 25))

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "total income", "3500", result.TotalIncome)
		assertDecimal(t, "total expenses", "1550", result.TotalExpenses)
		assertDecimal(t, "total hours", "62", result.TotalLifeEnergyHours)

		if len(result.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(result.Categories))
		}
		if result.Categories[0].Spend.CategoryName != "Dining" {
			t.Errorf("expected Dining first, got %s", result.Categories[0].Spend.CategoryName)
		}
		assertDecimal(t, "dining hours", "14", result.Categories[0].LifeEnergyHours)
		assertDecimal(t, "rent hours", "48", result.Categories[1].LifeEnergyHours)
	})

	t.Run("zero or absent wage yields zero hours", func(t *testing.T) {
		for _, wage := range []string{"", "0", "-5"} {
			f := newFixture(wage)
			groceries := f.ledger.addCategory(f.user.ID, "Groceries")
			f.ledger.addExpense(f.user.ID, groceries.ID, "350", day(2024, time.March, 3))

			result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
			if err != nil {
				t.Fatalf("wage %q: unexpected error: %v", wage, err)
			}
			assertDecimal(t, "total expenses", "350", result.TotalExpenses)
			assertDecimal(t, "total hours", "0", result.TotalLifeEnergyHours)
			assertDecimal(t, "category hours", "0", result.Categories[0].LifeEnergyHours)
		}
	})

	t.Run("categories without spend produce no breakdown", func(t *testing.T) {
		f := newFixture("25")
		f.ledger.addCategory(f.user.ID, "Travel")
		groceries := f.ledger.addCategory(f.user.ID, "Groceries")
		f.ledger.addExpense(f.user.ID, groceries.ID, "10", day(2024, time.March, 3))
		// Cancels out to zero.
		refunds := f.ledger.addCategory(f.user.ID, "Refunds")
		f.ledger.addExpense(f.user.ID, refunds.ID, "0", day(2024, time.March, 3))

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(result.Categories))
		}
		if result.Categories[0].Spend.CategoryID != groceries.ID {
			t.Errorf("expected groceries breakdown, got %s", result.Categories[0].Spend.CategoryName)
		}
	})

	t.Run("empty month aggregates to zero", func(t *testing.T) {
		f := newFixture("25")

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "total income", "0", result.TotalIncome)
		assertDecimal(t, "total expenses", "0", result.TotalExpenses)
		assertDecimal(t, "total hours", "0", result.TotalLifeEnergyHours)
		if len(result.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(result.Categories))
		}
	})

	t.Run("month hours sum the rounded category hours", func(t *testing.T) {
		f := newFixture("3")
		a := f.ledger.addCategory(f.user.ID, "A")
		b := f.ledger.addCategory(f.user.ID, "B")
		f.ledger.addExpense(f.user.ID, a.ID, "1", day(2024, time.March, 3))
		f.ledger.addExpense(f.user.ID, b.ID, "1", day(2024, time.March, 3))

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 2/3 would round to 0.67; the running sum of 0.33 + 0.33 is kept.
		assertDecimal(t, "total hours", "0.66", result.TotalLifeEnergyHours)
	})

	t.Run("negative spend is a computation error", func(t *testing.T) {
		f := newFixture("25")
		refunds := f.ledger.addCategory(f.user.ID, "Refunds")
		f.ledger.addExpense(f.user.ID, refunds.ID, "-20", day(2024, time.March, 3))

		_, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if !errors.Is(err, domainerror.ErrLifeEnergyComputation) {
			t.Fatalf("expected life energy computation error, got %v", err)
		}
	})

	t.Run("ignores other users", func(t *testing.T) {
		f := newFixture("25")
		other := newFixture("25").user
		groceries := f.ledger.addCategory(other.ID, "Groceries")
		f.ledger.addExpense(other.ID, groceries.ID, "10", day(2024, time.March, 3))
		f.ledger.addIncome(other.ID, "10", day(2024, time.March, 3))

		result, err := f.agg.Aggregate(ctx, f.user.ID, march, f.user.HourlyWage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "total income", "0", result.TotalIncome)
		if len(result.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(result.Categories))
		}
	})
}

func TestAggregator_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newFixture("25")
		orphan := newFixture("25").user

		r, err := f.resolver.FindOrCreate(ctx, orphan.ID, valueobject.NewMonthWindow(day(2024, time.March, 1)))
		if r != nil {
			t.Fatal("expected no review for unknown user")
		}
		var reviewErr *domainerror.ReviewError
		if !errors.As(err, &reviewErr) || reviewErr.Code != domainerror.ErrCodeReviewUserNotFound {
			t.Fatalf("expected %s, got %v", domainerror.ErrCodeReviewUserNotFound, err)
		}
	})

	t.Run("keeps notes and completion", func(t *testing.T) {
		f := newFixture("25")
		result, err := f.resolver.FindOrCreate(ctx, f.user.ID, valueobject.NewMonthWindow(day(2024, time.March, 1)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		notes := "tight month"
		completed := true
		_ = f.reviews.UpdateMetadata(ctx, result.Review.ID, adapter.ReviewMetadata{Notes: &notes, Completed: &completed})

		review, _ := f.reviews.FindByID(ctx, result.Review.ID)
		if err := f.agg.Refresh(ctx, review); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, _ := f.reviews.FindByID(ctx, result.Review.ID)
		if stored.Notes != notes || !stored.Completed {
			t.Errorf("expected notes and completion kept, got %q %v", stored.Notes, stored.Completed)
		}
	})
}
