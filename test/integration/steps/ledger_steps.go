package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/domain/entity"
	"github.com/lifeenergy/backend/internal/integration/persistence"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmailAndHourlyWage(email, wage string) error {
	hourlyWage, err := decimal.NewFromString(wage)
	if err != nil {
		return fmt.Errorf("invalid hourly wage %q: %w", wage, err)
	}
	return t.createUser(email, &hourlyWage)
}

func (t *testContext) aUserExistsWithEmailWithoutAnHourlyWage(email string) error {
	return t.createUser(email, nil)
}

func (t *testContext) createUser(email string, hourlyWage *decimal.Decimal) error {
	user := entity.NewUser(email, hourlyWage)
	if err := persistence.NewUserRepository(t.db.DbConn).Create(context.Background(), user); err != nil {
		return fmt.Errorf("failed to create user %s: %w", email, err)
	}
	t.users[email] = user.ID
	t.categories[email] = make(map[string]uuid.UUID)
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	userID, err := t.userID(email)
	if err != nil {
		return err
	}
	token, err := injector.TokenService.GenerateAccessToken(context.Background(), userID, email)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) hasACategory(email, name string) error {
	userID, err := t.userID(email)
	if err != nil {
		return err
	}
	category := entity.NewCategory(userID, name, false)
	if err := persistence.NewLedgerRepository(t.db.DbConn).CreateCategory(context.Background(), category); err != nil {
		return fmt.Errorf("failed to create category %s: %w", name, err)
	}
	t.categories[email][name] = category.ID
	return nil
}

func (t *testContext) spentOnOn(email, amount, categoryName, date string) error {
	userID, err := t.userID(email)
	if err != nil {
		return err
	}
	categoryID, ok := t.categories[email][categoryName]
	if !ok {
		return fmt.Errorf("category %s of %s was not created in this scenario", categoryName, email)
	}
	value, on, err := parseAmountAndDate(amount, date)
	if err != nil {
		return err
	}
	expense := entity.NewExpense(userID, categoryID, categoryName, value, on)
	return persistence.NewLedgerRepository(t.db.DbConn).CreateExpense(context.Background(), expense)
}

func (t *testContext) earnedOn(email, amount, date string) error {
	userID, err := t.userID(email)
	if err != nil {
		return err
	}
	value, on, err := parseAmountAndDate(amount, date)
	if err != nil {
		return err
	}
	income := entity.NewIncome(userID, "salary", value, on)
	return persistence.NewLedgerRepository(t.db.DbConn).CreateIncome(context.Background(), income)
}

func (t *testContext) deletedTheCategory(email, name string) error {
	categoryID, ok := t.categories[email][name]
	if !ok {
		return fmt.Errorf("category %s of %s was not created in this scenario", name, email)
	}
	return t.db.DbConn.Delete(&model.CategoryModel{}, "id = ?", categoryID).Error
}

func (t *testContext) userID(email string) (uuid.UUID, error) {
	id, ok := t.users[email]
	if !ok {
		return uuid.Nil, fmt.Errorf("user %s was not created in this scenario", email)
	}
	return id, nil
}

func parseAmountAndDate(amount, date string) (decimal.Decimal, time.Time, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	on, err := time.Parse("2006-01-02", date)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return value, on, nil
}
