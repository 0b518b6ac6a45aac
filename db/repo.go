package db

import (
	"context"
	"errors"
	"strings"

	"libstack/models"

	"gorm.io/gorm"
)

// LoanPolicy is the knob set of the lending engine. Explicit config rather
// than package constants so tests can run with a tiny limit.
type LoanPolicy struct {
	MaxActiveLoans int
	LoanPeriodDays int
}

func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{MaxActiveLoans: 5, LoanPeriodDays: 14}
}

type Repo struct {
	DB     *gorm.DB
	Policy LoanPolicy
}

func NewRepo(db *gorm.DB, policy LoanPolicy) *Repo {
	if policy.MaxActiveLoans <= 0 {
		policy.MaxActiveLoans = DefaultLoanPolicy().MaxActiveLoans
	}
	if policy.LoanPeriodDays <= 0 {
		policy.LoanPeriodDays = DefaultLoanPolicy().LoanPeriodDays
	}
	return &Repo{DB: db, Policy: policy}
}

// Users

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

// FindOrCreateUser backs the login path: first sign-in creates the account.
func (r *Repo) FindOrCreateUser(ctx context.Context, email, name, newID string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if name == "" {
			name = email
		}
		u = models.User{ID: newID, Email: email, Name: name, Provider: "local", Role: models.RoleUser}
		if err := r.DB.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	return &u, err
}

func (r *Repo) TouchUserLogin(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": gorm.Expr("NOW()"),
			"last_seen_at":  gorm.Expr("NOW()"),
			"login_count":   gorm.Expr("COALESCE(login_count, 0) + 1"),
		}).Error
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}

type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, err
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, err
	}
	return ListUsersResult{Users: users, Total: total}, nil
}

func (r *Repo) SetUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, errors.New("unknown role: " + role)
	}
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindUserByID(ctx, userID)
}

// DeleteUserByID refuses while the user still holds books; the loan rows
// themselves are kept as history.
func (r *Repo) DeleteUserByID(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND status = ?", id, models.LoanActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBooksStillOnLoan
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *Repo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&n).Error
	return n, err
}
