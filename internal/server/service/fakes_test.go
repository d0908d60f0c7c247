package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
)

// fakeStore is an in-memory store.Store for service tests.
type fakeStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	entries   []domain.JournalEntry
	plans     map[int64]domain.Plan
	profiles  []domain.InsuranceProfile
	products  []domain.InsuranceProduct
	snapshots map[int64]domain.InsuranceSnapshot
	requests  []domain.InsuranceRequest
	nextID    int64

	// usersErr, when set, is returned by every Users operation to simulate
	// a backend outage.
	usersErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]domain.User),
		plans:     make(map[int64]domain.Plan),
		snapshots: make(map[int64]domain.InsuranceSnapshot),
		nextID:    1,
	}
}

func (f *fakeStore) seedUser(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	} else if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) Users() store.Users         { return (*fakeUsers)(f) }
func (f *fakeStore) Journal() store.Journal     { return (*fakeJournal)(f) }
func (f *fakeStore) Plans() store.Plans         { return (*fakePlans)(f) }
func (f *fakeStore) Insurance() store.Insurance { return (*fakeInsurance)(f) }

func (f *fakeStore) ApplyMigrations() error { return nil }

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(f)
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) Info(context.Context) (string, string, error) {
	return "fake", "0", nil
}

func (f *fakeStore) Close() error { return nil }

type fakeUsers fakeStore

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return domain.User{}, f.usersErr
	}
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return domain.User{}, f.usersErr
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (f *fakeUsers) CreateUser(_ context.Context, u domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return 0, f.usersErr
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return 0, store.ErrAlreadyExists
		}
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	out := make([]domain.User, 0, len(f.users))
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateUserInfo(_ context.Context, id int64, firstName, lastName, phone, ssn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.FirstName, u.LastName, u.Phone, u.SSN = firstName, lastName, phone, ssn
	f.users[id] = u
	return nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id int64, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = newHash
	f.users[id] = u
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id int64, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	f.users[id] = u
	return nil
}

type fakeJournal fakeStore

func (f *fakeJournal) CreateEntry(_ context.Context, e domain.JournalEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Now()
	f.entries = append(f.entries, e)
	return e.ID, nil
}

func (f *fakeJournal) ListEntriesByUser(_ context.Context, userID int64) ([]domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JournalEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

type fakePlans fakeStore

func (f *fakePlans) GetPlanByUser(_ context.Context, userID int64) (domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[userID]
	if !ok {
		return domain.Plan{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakePlans) UpsertPlan(_ context.Context, p domain.Plan) (domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.plans[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = f.nextID
		f.nextID++
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	f.plans[p.UserID] = p
	return p, nil
}

type fakeInsurance fakeStore

func (f *fakeInsurance) ListProducts(context.Context) ([]domain.InsuranceProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.InsuranceProduct(nil), f.products...), nil
}

func (f *fakeInsurance) ListProfilesByUser(_ context.Context, userID int64) ([]domain.InsuranceProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.InsuranceProfile
	for i := len(f.profiles) - 1; i >= 0; i-- {
		if f.profiles[i].UserID == userID {
			out = append(out, f.profiles[i])
		}
	}
	return out, nil
}

func (f *fakeInsurance) CreateProfile(_ context.Context, p domain.InsuranceProfile) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	f.profiles = append(f.profiles, p)
	return p.ID, nil
}

func (f *fakeInsurance) GetSnapshotByUser(_ context.Context, userID int64) (domain.InsuranceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.snapshots[userID]
	if !ok {
		return domain.InsuranceSnapshot{}, store.ErrNotFound
	}
	return s, nil
}

func (f *fakeInsurance) ReplaceSnapshot(_ context.Context, s domain.InsuranceSnapshot) (domain.InsuranceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.snapshots[s.UserID]; ok {
		s.ID = existing.ID
	} else {
		s.ID = f.nextID
		f.nextID++
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	f.snapshots[s.UserID] = s
	return s, nil
}

func (f *fakeInsurance) CreateRequest(_ context.Context, req domain.InsuranceRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = f.nextID
	f.nextID++
	f.requests = append(f.requests, req)
	return req.ID, nil
}
