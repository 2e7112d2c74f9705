package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/mailer"
	"github.com/blucialabs/backend/internal/models"
)

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperrors.Conflict("User already exists with this email")
		}
		if user.Username != "" && u.Username == user.Username {
			return apperrors.Conflict("Username already taken")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserStore) find(pred func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *mockUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *mockUserStore) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.GoogleID == googleID })
}

func (m *mockUserStore) LinkGoogleAccount(_ context.Context, email, googleID, avatarURL string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u.GoogleID = googleID
			if avatarURL != "" {
				u.AvatarURL = avatarURL
			}
			u.UpdatedAt = time.Now()
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) UpdateProfile(_ context.Context, id uuid.UUID, patch *models.ProfilePatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *mockUserStore) EmailTaken(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) UsernameTaken(_ context.Context, username string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) CountByRole(_ context.Context) (total, clients, admins int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		total++
		switch u.Role {
		case models.RoleClient:
			clients++
		case models.RoleAdmin:
			admins++
		}
	}
	return
}

// mockRequestStore is an in-memory RequestStore.
type mockRequestStore struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*models.ServiceRequest
	owners   map[uuid.UUID]*models.User // for joined reads
}

func newMockRequestStore() *mockRequestStore {
	return &mockRequestStore{
		requests: make(map[uuid.UUID]*models.ServiceRequest),
		owners:   make(map[uuid.UUID]*models.User),
	}
}

func (m *mockRequestStore) setOwner(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[u.ID] = u
}

func (m *mockRequestStore) Create(_ context.Context, req *models.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *mockRequestStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ServiceRequest, 0)
	for _, r := range m.requests {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockRequestStore) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*models.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockRequestStore) withOwner(r *models.ServiceRequest) models.AdminRequest {
	ar := models.AdminRequest{ServiceRequest: *r}
	if owner, ok := m.owners[r.UserID]; ok {
		ar.UserName = owner.Name
		ar.UserEmail = owner.Email
	}
	return ar
}

func (m *mockRequestStore) ListAllWithOwner(_ context.Context) ([]models.AdminRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AdminRequest, 0)
	for _, r := range m.requests {
		out = append(out, m.withOwner(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockRequestStore) FindByIDWithOwner(_ context.Context, id uuid.UUID) (*models.AdminRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	ar := m.withOwner(r)
	return &ar, nil
}

func (m *mockRequestStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status) (*models.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (m *mockRequestStore) StatusCounts(_ context.Context) (*models.RequestCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counts models.RequestCounts
	for _, r := range m.requests {
		counts.Total++
		switch r.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusCompleted:
			counts.Completed++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	return &counts, nil
}

func (m *mockRequestStore) ListRecentWithOwner(ctx context.Context, limit int) ([]models.AdminRequest, error) {
	all, err := m.ListAllWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}



// recordingDispatcher collects dispatched mail synchronously so tests can
// assert on side effects without goroutine races.
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (d *recordingDispatcher) Dispatch(mail mailer.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, mail)
}

func (d *recordingDispatcher) messages() []mailer.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]mailer.Message(nil), d.sent...)
}

// stubMailer is a synchronous Mailer with a programmable outcome.
type stubMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *stubMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
