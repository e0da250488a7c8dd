package monthlyreview

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

type fakeLedger struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
	expenses   []*entity.Expense
	incomes    []*entity.Income
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{categories: map[uuid.UUID]*entity.Category{}}
}

func (l *fakeLedger) addCategory(userID uuid.UUID, name string) *entity.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	category := entity.NewCategory(userID, name, false)
	l.categories[category.ID] = category
	return category
}

func (l *fakeLedger) addExpense(userID, categoryID uuid.UUID, amount string, on time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append(l.expenses, entity.NewExpense(userID, categoryID, "expense", decimal.RequireFromString(amount), on))
}

func (l *fakeLedger) addIncome(userID uuid.UUID, amount string, on time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.incomes = append(l.incomes, entity.NewIncome(userID, "salary", decimal.RequireFromString(amount), on))
}

func within(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

func (l *fakeLedger) SumIncome(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := decimal.Zero
	for _, income := range l.incomes {
		if income.UserID == userID && within(income.ReceivedOn, start, end) {
			total = total.Add(income.Amount)
		}
	}
	return total, nil
}

func (l *fakeLedger) ExpensesByCategory(_ context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CategorySpend, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	totals := map[uuid.UUID]decimal.Decimal{}
	for _, expense := range l.expenses {
		if expense.UserID == userID && within(expense.OccurredOn, start, end) {
			totals[expense.CategoryID] = totals[expense.CategoryID].Add(expense.Amount)
		}
	}
	spends := make([]entity.CategorySpend, 0, len(totals))
	for id, total := range totals {
		if total.IsZero() {
			continue
		}
		spends = append(spends, entity.CategorySpend{
			CategoryID:   id,
			CategoryName: l.categories[id].Name,
			TotalSpent:   total,
		})
	}
	sort.Slice(spends, func(i, j int) bool {
		if spends[i].CategoryName != spends[j].CategoryName {
			return spends[i].CategoryName < spends[j].CategoryName
		}
		return spends[i].CategoryID.String() < spends[j].CategoryID.String()
	})
	return spends, nil
}

// fakeReviewRepo keeps copies so callers never share memory with the store.
type fakeReviewRepo struct {
	mu       sync.Mutex
	reviews  map[uuid.UUID]*entity.MonthlyReview
	creates  int
	replaces int

	// beforeCreate runs before the uniqueness check of Create.
	beforeCreate func()
	// beforeFind runs first in FindByMonthCode; a non-nil error is returned as is.
	beforeFind func(ctx context.Context) error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*entity.MonthlyReview{}}
}

func cloneReview(review *entity.MonthlyReview) *entity.MonthlyReview {
	c := *review
	c.CategoryReviews = make([]*entity.MonthlyCategoryReview, len(review.CategoryReviews))
	for i, child := range review.CategoryReviews {
		cc := *child
		c.CategoryReviews[i] = &cc
	}
	return &c
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.MonthlyReview) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.MonthCode == review.MonthCode {
			return domainerror.ErrReviewConflict
		}
	}
	r.creates++
	r.reviews[review.ID] = cloneReview(review)
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MonthlyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, domainerror.ErrReviewNotFound
	}
	return cloneReview(review), nil
}

func (r *fakeReviewRepo) FindByMonthCode(ctx context.Context, userID uuid.UUID, monthCode string) (*entity.MonthlyReview, error) {
	if r.beforeFind != nil {
		if err := r.beforeFind(ctx); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.UserID == userID && review.MonthCode == monthCode {
			return cloneReview(review), nil
		}
	}
	return nil, domainerror.ErrReviewNotFound
}

func (r *fakeReviewRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []*entity.MonthlyReview
	for _, review := range r.reviews {
		if review.UserID == userID {
			reviews = append(reviews, cloneReview(review))
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].MonthStart.After(reviews[j].MonthStart)
	})
	return reviews, nil
}

func (r *fakeReviewRepo) ReplaceCategoryReviews(_ context.Context, review *entity.MonthlyReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reviews[review.ID]
	if !ok {
		return domainerror.ErrReviewNotFound
	}
	r.replaces++
	updated := cloneReview(review)
	updated.Notes = stored.Notes
	updated.Completed = stored.Completed
	r.reviews[review.ID] = updated
	return nil
}

func (r *fakeReviewRepo) UpdateMetadata(_ context.Context, id uuid.UUID, metadata adapter.ReviewMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return domainerror.ErrReviewNotFound
	}
	if metadata.Notes != nil {
		review.Notes = *metadata.Notes
	}
	if metadata.Completed != nil {
		review.Completed = *metadata.Completed
	}
	return nil
}

func (r *fakeReviewRepo) findChild(id uuid.UUID) *entity.MonthlyCategoryReview {
	for _, review := range r.reviews {
		for _, child := range review.CategoryReviews {
			if child.ID == id {
				return child
			}
		}
	}
	return nil
}

func (r *fakeReviewRepo) FindCategoryReviewByID(_ context.Context, id uuid.UUID) (*entity.MonthlyCategoryReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	child := r.findChild(id)
	if child == nil {
		return nil, domainerror.ErrCategoryReviewNotFound
	}
	c := *child
	return &c, nil
}

func (r *fakeReviewRepo) UpdateCategoryReflection(_ context.Context, id uuid.UUID, reflection adapter.CategoryReflection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	child := r.findChild(id)
	if child == nil {
		return domainerror.ErrCategoryReviewNotFound
	}
	if reflection.ReceivedFulfillment != nil {
		child.ReceivedFulfillment = *reflection.ReceivedFulfillment
	}
	if reflection.AlignedWithValues != nil {
		child.AlignedWithValues = *reflection.AlignedWithValues
	}
	if reflection.WouldChangePostFI != nil {
		child.WouldChangePostFI = *reflection.WouldChangePostFI
	}
	return nil
}

func (r *fakeReviewRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

type fakeLocker struct {
	mu    sync.Mutex
	err   error
	locks int
}

func (l *fakeLocker) Lock(_ context.Context, _ string) (adapter.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locks++
	return func(context.Context) error {
		l.mu.Unlock()
		return nil
	}, nil
}

// fixture wires the use cases over in-memory collaborators.
type fixture struct {
	users    *fakeUserRepo
	ledger   *fakeLedger
	reviews  *fakeReviewRepo
	locker   *fakeLocker
	agg      *Aggregator
	resolver *MonthResolver
	user     *entity.User
}

func newFixture(wage string) *fixture {
	f := &fixture{
		users:   newFakeUserRepo(),
		ledger:  newFakeLedger(),
		reviews: newFakeReviewRepo(),
		locker:  &fakeLocker{},
	}
	var hourlyWage *decimal.Decimal
	if wage != "" {
		w := decimal.RequireFromString(wage)
		hourlyWage = &w
	}
	f.user = entity.NewUser("saver@example.com", hourlyWage)
	_ = f.users.Create(context.Background(), f.user)
	f.agg = NewAggregator(f.ledger, f.reviews, f.users)
	f.resolver = NewMonthResolver(f.reviews, f.agg, f.locker)
	return f
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
