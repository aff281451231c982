// Package servicetest holds in-memory repositories and helpers shared by the
// service tests.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/require"
)

const Secret = "service-test-secret"

// ActorContext returns a context carrying a verified access token for the user.
func ActorContext(t *testing.T, userID int64, role user.Role) context.Context {
	t.Helper()

	svc := jwt.NewJWTService(Secret, "1h", "24h")
	tokenString, _, err := svc.GenerateAccessToken(userID, fmt.Sprintf("user%d", userID), role)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// Transactor runs fn directly and counts the transactions it was asked for.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// ── ActivityRepository ──

type ActivityRepo struct {
	mu      sync.Mutex
	Entries []activity.Entry
}

func (m *ActivityRepo) Create(_ context.Context, entry activity.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = int64(len(m.Entries) + 1)
	entry.CreatedAt = time.Now()
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *ActivityRepo) List(_ context.Context, filter activity.Filter) ([]activity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []activity.Entry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		e := m.Entries[i]
		if filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID) {
			continue
		}
		if filter.Action != nil && e.Action != *filter.Action {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// Actions lists the recorded actions in order.
func (m *ActivityRepo) Actions() []activity.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]activity.Action, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Action)
	}
	return out
}

// ── EmployeeRepository ──

type EmployeeRepo struct {
	mu        sync.Mutex
	employees map[int64]employee.Employee
	nextID    int64
}

func NewEmployeeRepo(seed ...employee.Employee) *EmployeeRepo {
	m := &EmployeeRepo{employees: make(map[int64]employee.Employee)}
	for _, e := range seed {
		if e.ID == 0 {
			m.nextID++
			e.ID = m.nextID
		} else if e.ID > m.nextID {
			m.nextID = e.ID
		}
		if e.Status == "" {
			e.Status = employee.StatusActive
		}
		m.employees[e.ID] = e
	}
	return m
}

func (m *EmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.employees[e.ID] = e
	return e, nil
}

func (m *EmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *EmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []employee.Employee
	for _, e := range m.employees {
		if filter.Company != nil && e.Company != *filter.Company {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Department != nil && (e.Department == nil || *e.Department != *filter.Department) {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(e.FullName), q) && !strings.Contains(strings.ToLower(e.EmployeeCode), q) {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *EmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.UpdatedAt = time.Now()
	m.employees[e.ID] = e
	return e, nil
}

func (m *EmployeeRepo) UpdateStatus(_ context.Context, id int64, status employee.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = status
	m.employees[id] = e
	return nil
}

func (m *EmployeeRepo) ExistsByCode(_ context.Context, code string, excludeID *int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if strings.EqualFold(e.EmployeeCode, code) {
			return true, nil
		}
	}
	return false, nil
}

// ── UserRepository ──

type UserRepo struct {
	mu     sync.Mutex
	users  map[int64]user.User
	nextID int64
	Logins []int64
}

func NewUserRepo(seed ...user.User) *UserRepo {
	m := &UserRepo{users: make(map[int64]user.User)}
	for _, u := range seed {
		m.nextID++
		if u.ID == 0 {
			u.ID = m.nextID
		} else if u.ID > m.nextID {
			m.nextID = u.ID
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *UserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *UserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *UserRepo) List(_ context.Context, filter user.UserFilter) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []user.User
	for _, u := range m.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *UserRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *UserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return user.User{}, user.ErrUsernameExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return u, nil
}

func (m *UserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *UserRepo) UpdateLastLogin(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	m.users[id] = u
	m.Logins = append(m.Logins, id)
	return nil
}

// TokenStore is an in-memory auth.RefreshTokenStore.
type TokenStore struct {
	mu      sync.Mutex
	Tokens  map[string]int64
	Revoked map[string]bool
}

func NewTokenStore() *TokenStore {
	return &TokenStore{Tokens: make(map[string]int64), Revoked: make(map[string]bool)}
}

func (m *TokenStore) Save(_ context.Context, issued auth.IssuedRefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens[issued.Token] = issued.UserID
	return nil
}

func (m *TokenStore) Active(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Tokens[token]
	return ok && !m.Revoked[token], nil
}

func (m *TokenStore) Revoke(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tokens[token]; !ok || m.Revoked[token] {
		return false, nil
	}
	m.Revoked[token] = true
	return true, nil
}

func (m *TokenStore) RevokeAllForUser(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, owner := range m.Tokens {
		if owner == userID && !m.Revoked[token] {
			m.Revoked[token] = true
			n++
		}
	}
	return n, nil
}
