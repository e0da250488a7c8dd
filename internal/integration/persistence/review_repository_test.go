package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
)

type reviewFixture struct {
	repo     adapter.ReviewRepository
	ledger   *LedgerRepository
	user     *entity.User
	category *entity.Category
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)
	f := &reviewFixture{
		repo:   NewReviewRepository(db),
		ledger: NewLedgerRepository(db),
		user:   seedUser(t, ctx, NewUserRepository(db), "25"),
	}
	f.category = entity.NewCategory(f.user.ID, "Groceries", true)
	if err := f.ledger.CreateCategory(ctx, f.category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return f
}

func (f *reviewFixture) create(t *testing.T, monthStart time.Time, code string) *entity.MonthlyReview {
	t.Helper()
	review := entity.NewMonthlyReview(f.user.ID, monthStart, code)
	if err := f.repo.Create(context.Background(), review); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

func (f *reviewFixture) populate(review *entity.MonthlyReview, spent, hours string) {
	spend := entity.CategorySpend{
		CategoryID:   f.category.ID,
		CategoryName: f.category.Name,
		TotalSpent:   decimal.RequireFromString(spent),
	}
	review.TotalExpenses = spend.TotalSpent
	review.TotalLifeEnergyHours = decimal.RequireFromString(hours)
	review.CategoryReviews = []*entity.MonthlyCategoryReview{
		entity.NewMonthlyCategoryReview(review, 0, spend, review.TotalLifeEnergyHours),
	}
}

func TestReviewRepository_Create(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	review := f.create(t, date(2024, time.March, 1), "032024")

	found, err := f.repo.FindByMonthCode(ctx, f.user.ID, "032024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != review.ID {
		t.Errorf("expected review %s, got %s", review.ID, found.ID)
	}
	if !found.MonthStart.Equal(date(2024, time.March, 1)) {
		t.Errorf("expected month start 2024-03-01, got %s", found.MonthStart)
	}
	if !found.TotalIncome.IsZero() || len(found.CategoryReviews) != 0 {
		t.Error("expected an empty review")
	}

	duplicate := entity.NewMonthlyReview(f.user.ID, date(2024, time.March, 1), "032024")
	err = f.repo.Create(ctx, duplicate)
	if !errors.Is(err, domainerror.ErrReviewConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = f.repo.FindByMonthCode(ctx, f.user.ID, "042024")
	if !errors.Is(err, domainerror.ErrReviewNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	_, err = f.repo.FindByID(ctx, uuid.New())
	if !errors.Is(err, domainerror.ErrReviewNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestReviewRepository_ReplaceCategoryReviews(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	review := f.create(t, date(2024, time.March, 1), "032024")

	notes := "keep me"
	if err := f.repo.UpdateMetadata(ctx, review.ID, adapter.ReviewMetadata{Notes: &notes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.populate(review, "350", "14")
	if err := f.repo.ReplaceCategoryReviews(ctx, review); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstChild := review.CategoryReviews[0].ID

	f.populate(review, "500", "20")
	if err := f.repo.ReplaceCategoryReviews(ctx, review); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := f.repo.FindByID(ctx, review.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.CategoryReviews) != 1 {
		t.Fatalf("expected 1 breakdown, got %d", len(stored.CategoryReviews))
	}
	if stored.CategoryReviews[0].ID == firstChild {
		t.Error("expected previous breakdown to be replaced")
	}
	if !stored.TotalExpenses.Equal(decimal.RequireFromString("500")) {
		t.Errorf("expected total 500, got %s", stored.TotalExpenses)
	}
	if !stored.CategoryReviews[0].TotalLifeEnergyHours.Equal(decimal.RequireFromString("20")) {
		t.Errorf("expected hours 20, got %s", stored.CategoryReviews[0].TotalLifeEnergyHours)
	}
	if stored.Notes != notes {
		t.Errorf("expected notes kept, got %q", stored.Notes)
	}

	_, err = f.repo.FindCategoryReviewByID(ctx, firstChild)
	if !errors.Is(err, domainerror.ErrCategoryReviewNotFound) {
		t.Errorf("expected old breakdown gone, got %v", err)
	}

	review.CategoryReviews = nil
	review.TotalExpenses = decimal.Zero
	if err := f.repo.ReplaceCategoryReviews(ctx, review); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ = f.repo.FindByID(ctx, review.ID)
	if len(stored.CategoryReviews) != 0 {
		t.Errorf("expected no breakdowns, got %d", len(stored.CategoryReviews))
	}

	missing := entity.NewMonthlyReview(f.user.ID, date(2024, time.May, 1), "052024")
	if err := f.repo.ReplaceCategoryReviews(ctx, missing); !errors.Is(err, domainerror.ErrReviewNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestReviewRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	f.create(t, date(2023, time.December, 1), "122023")
	f.create(t, date(2024, time.March, 1), "032024")
	f.create(t, date(2024, time.January, 1), "012024")

	reviews, err := f.repo.ListByUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"032024", "012024", "122023"}
	if len(reviews) != len(want) {
		t.Fatalf("expected %d reviews, got %d", len(want), len(reviews))
	}
	for i, code := range want {
		if reviews[i].MonthCode != code {
			t.Errorf("position %d: expected %s, got %s", i, code, reviews[i].MonthCode)
		}
	}
}

func TestReviewRepository_UpdateMetadataAndReflection(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	review := f.create(t, date(2024, time.March, 1), "032024")
	f.populate(review, "350", "14")
	if err := f.repo.ReplaceCategoryReviews(ctx, review); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := true
	if err := f.repo.UpdateMetadata(ctx, review.ID, adapter.ReviewMetadata{Completed: &completed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := f.repo.FindByID(ctx, review.ID)
	if !stored.Completed {
		t.Error("expected review to be completed")
	}
	if !stored.TotalExpenses.Equal(decimal.RequireFromString("350")) {
		t.Errorf("expected totals untouched, got %s", stored.TotalExpenses)
	}

	positive := entity.MarkPositive
	childID := review.CategoryReviews[0].ID
	if err := f.repo.UpdateCategoryReflection(ctx, childID, adapter.CategoryReflection{AlignedWithValues: &positive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child, err := f.repo.FindCategoryReviewByID(ctx, childID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.AlignedWithValues != entity.MarkPositive {
		t.Errorf("expected positive, got %s", child.AlignedWithValues)
	}
	if child.ReceivedFulfillment != entity.MarkNeutral {
		t.Errorf("expected neutral, got %s", child.ReceivedFulfillment)
	}
	if child.UserID != f.user.ID || child.MonthlyReviewID != review.ID {
		t.Error("expected breakdown to reference its review and user")
	}

	if err := f.repo.UpdateMetadata(ctx, uuid.New(), adapter.ReviewMetadata{Completed: &completed}); !errors.Is(err, domainerror.ErrReviewNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := f.repo.UpdateCategoryReflection(ctx, uuid.New(), adapter.CategoryReflection{AlignedWithValues: &positive}); !errors.Is(err, domainerror.ErrCategoryReviewNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
