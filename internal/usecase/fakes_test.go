package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/internal/data/repository"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
		Order: utils.OrderConfig{
			StoreTimeout:      time.Second,
			TransitionRetries: 3,
		},
	}
}

type fakeStore struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	orders   *fakeOrderRepo
	reviews  *fakeReviewRepo
	cats     *fakeCategoryRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		sessions: &fakeSessionRepo{sessions: map[string]*entity.Session{}},
		orders:   &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{}},
		reviews:  &fakeReviewRepo{reviews: map[uuid.UUID]*entity.Review{}},
		cats:     &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{}},
	}
}

func (f *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		User:     f.users,
		Session:  f.sessions,
		Order:    f.orders,
		Review:   f.reviews,
		Category: f.cats,
	}
}

func (f *fakeStore) service() *Service {
	return NewService(f.repository(), testConfig(), zap.NewNop())
}

// ==================== USERS ====================

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) add(name string, role entity.UserRole) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	u := &entity.User{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	r.users[u.ID] = u
	cp := *u
	return &cp
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) live() []*entity.User {
	var out []*entity.User
	for _, u := range r.users {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.User) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.live()
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live(), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.live())), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user", user.ID.String())
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email && u.DeletedAt == nil {
			return apperr.InvalidField("email", "already in use")
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return apperr.NotFound("user", id.String())
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

// ==================== SESSIONS ====================

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token.String()] = &cp
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return apperr.NotFound("session", "token")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

// ==================== ORDERS ====================

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order

	// beforeSwap runs ahead of every compare-and-swap, outside the lock.
	beforeSwap func()
	// loseSwaps makes that many compare-and-swaps fail without writing.
	loseSwaps int
	swaps     int
}

func (r *fakeOrderRepo) add(userID uuid.UUID, status entity.OrderStatus, items ...entity.OrderItem) *entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	o := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       userID,
		Status:       status,
		Items:        items,
	}
	r.orders[o.ID] = o
	return cloneOrder(o)
}

func (r *fakeOrderRepo) status(id uuid.UUID) entity.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Status
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = slices.Clone(o.Items)
	return &cp
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *fakeOrderRepo) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b *entity.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true }), nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

func (r *fakeOrderRepo) CompareAndSwapStatus(_ context.Context, id uuid.UUID, prev, next entity.OrderStatus) (bool, error) {
	if hook := r.beforeSwap; hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.swaps++
	if r.loseSwaps > 0 {
		r.loseSwaps--
		return false, nil
	}

	o, ok := r.orders[id]
	if !ok || o.Status != prev {
		return false, nil
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return true, nil
}

// ==================== REVIEWS ====================

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
}

func (r *fakeReviewRepo) add(userID, productID uuid.UUID, rating int, createdAt time.Time) *entity.Review {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: createdAt},
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
	}
	r.reviews[rv.ID] = rv
	cp := *rv
	return &cp
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.UserID == review.UserID && rv.ProductID == review.ProductID {
			return apperr.InvalidField("product_id", "already reviewed")
		}
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) collect(keep func(*entity.Review) bool) []*entity.Review {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Review
	for _, rv := range r.reviews {
		if keep(rv) {
			cp := *rv
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Review) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (r *fakeReviewRepo) FindByProductID(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return r.collect(func(rv *entity.Review) bool { return rv.ProductID == productID }), nil
}

func (r *fakeReviewRepo) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	found := r.collect(func(rv *entity.Review) bool { return rv.UserID == userID && rv.ProductID == productID })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *fakeReviewRepo) FindAll(_ context.Context) ([]*entity.Review, error) {
	return r.collect(func(*entity.Review) bool { return true }), nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return apperr.NotFound("review", review.ID.String())
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return apperr.NotFound("review", id.String())
	}
	delete(r.reviews, id)
	return nil
}

// ==================== CATEGORIES ====================

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.Category) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name {
			return apperr.InvalidField("name", "already exists")
		}
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("category", id.String())
	}
	delete(r.categories, id)
	return nil
}
