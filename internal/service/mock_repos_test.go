package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"classtrack/internal/model"
	"classtrack/internal/repository"
	pkgerrors "classtrack/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextID++
		user.UserID = fmt.Sprintf("user-%d", m.nextID)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var ids []string
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.User
	for i, id := range ids {
		if i < offset || len(result) >= limit {
			continue
		}
		result = append(result, *m.users[id])
	}
	return result, int64(len(m.users)), nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	u, ok := m.users[id]
	if !ok {
		return pkgerrors.ErrNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleRepo struct {
	entries map[string]*model.ScheduleEntry
	nextID  int
	failAll bool // 模拟存储不可用
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.ScheduleEntry)}
}

var errStorageDown = fmt.Errorf("存储不可用")

func (m *mockScheduleRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if m.failAll {
		return errStorageDown
	}
	if entry.EntryID == "" {
		m.nextID++
		entry.EntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.ScheduleEntry, error) {
	if m.failAll {
		return nil, errStorageDown
	}
	if e, ok := m.entries[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.ScheduleEntry, error) {
	if m.failAll {
		return nil, errStorageDown
	}
	var ids []string
	for id, e := range m.entries {
		if e.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var result []model.ScheduleEntry
	for _, id := range ids {
		result = append(result, *m.entries[id])
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	if m.failAll {
		return errStorageDown
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id, userID string) error {
	if e, ok := m.entries[id]; ok && e.UserID == userID {
		delete(m.entries, id)
		return nil
	}
	return pkgerrors.ErrNotFound
}

func (m *mockScheduleRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, e := range m.entries {
		if e.UserID == userID {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *mockScheduleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *mockScheduleRepo) BusiestWeekday(_ context.Context) (*repository.WeekdayCount, error) {
	counts := make(map[string]int64)
	for _, e := range m.entries {
		if e.Recurrence == model.RecurrenceWeekly && e.Day != nil {
			counts[*e.Day]++
		}
	}

	var best *repository.WeekdayCount
	for day, n := range counts {
		if best == nil || n > best.Count {
			best = &repository.WeekdayCount{Day: day, Count: n}
		}
	}
	return best, nil
}

// ── 测试辅助 ──

// newTestRepos 构造 mock 聚合
func newTestRepos() (*repository.Repository, *mockUserRepo, *mockScheduleRepo) {
	userRepo := newMockUserRepo()
	scheduleRepo := newMockScheduleRepo()
	return &repository.Repository{
		User:     userRepo,
		Schedule: scheduleRepo,
	}, userRepo, scheduleRepo
}
