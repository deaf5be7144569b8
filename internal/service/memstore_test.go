package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/repository"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the database used by the service
// tests. It mimics the contract of the gorm stores, including
// gorm.ErrRecordNotFound and the rollback behavior of UnitOfWork.Do.
type memStore struct {
	mu sync.Mutex

	users         map[uint]model.User
	refreshTokens map[uint]model.RefreshToken
	owners        map[uint]model.Owner
	properties    map[uint]model.Property
	images        map[uint]model.PropertyImage
	traces        map[uint]model.PropertyTrace

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uint]model.User{},
		refreshTokens: map[uint]model.RefreshToken{},
		owners:        map[uint]model.Owner{},
		properties:    map[uint]model.Property{},
		images:        map[uint]model.PropertyImage{},
		traces:        map[uint]model.PropertyTrace{},
		nextID:        1,
	}
}

func (s *memStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) snapshot() *memStore {
	clone := newMemStore()
	clone.nextID = s.nextID
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.refreshTokens {
		clone.refreshTokens[k] = v
	}
	for k, v := range s.owners {
		clone.owners[k] = v
	}
	for k, v := range s.properties {
		clone.properties[k] = v
	}
	for k, v := range s.images {
		clone.images[k] = v
	}
	for k, v := range s.traces {
		clone.traces[k] = v
	}
	return clone
}

func (s *memStore) restore(from *memStore) {
	s.users = from.users
	s.refreshTokens = from.refreshTokens
	s.owners = from.owners
	s.properties = from.properties
	s.images = from.images
	s.traces = from.traces
	s.nextID = from.nextID
}

// memUnitOfWork snapshots the store before fn and restores it when fn
// fails, which is what a rolled-back transaction looks like.
type memUnitOfWork struct {
	store *memStore
}

func newMemUnitOfWork() *memUnitOfWork {
	return &memUnitOfWork{store: newMemStore()}
}

func (u *memUnitOfWork) Repos() repository.Repositories {
	return repository.Repositories{
		Users:         &memUserRepo{store: u.store},
		RefreshTokens: &memRefreshTokenRepo{store: u.store},
		Owners:        &memOwnerRepo{store: u.store},
		Properties:    &memPropertyRepo{store: u.store},
		Images:        &memImageRepo{store: u.store},
		Traces:        &memTraceRepo{store: u.store},
	}
}

func (u *memUnitOfWork) Do(ctx context.Context, fn func(repository.Repositories) error) error {
	u.store.mu.Lock()
	before := u.store.snapshot()
	u.store.mu.Unlock()

	if err := fn(u.Repos()); err != nil {
		u.store.mu.Lock()
		u.store.restore(before)
		u.store.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, username) {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.id()
	user.CreatedAt = time.Now()
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLoginAt = &at
	r.store.users[id] = u
	return nil
}

type memRefreshTokenRepo struct{ store *memStore }

func (r *memRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.refreshTokens {
		if t.Token == token {
			found := t
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRefreshTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	token.ID = r.store.id()
	token.CreatedAt = time.Now()
	r.store.refreshTokens[token.ID] = *token
	return nil
}

func (r *memRefreshTokenRepo) Revoke(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.refreshTokens[id]
	if !ok || t.IsRevoked {
		return false, nil
	}
	t.IsRevoked = true
	r.store.refreshTokens[id] = t
	return true, nil
}

func (r *memRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for id, t := range r.store.refreshTokens {
		if t.UserID == userID && !t.IsRevoked {
			t.IsRevoked = true
			r.store.refreshTokens[id] = t
			count++
		}
	}
	return count, nil
}

type memOwnerRepo struct{ store *memStore }

func (r *memOwnerRepo) GetByID(ctx context.Context, id uint) (*model.Owner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if o, ok := r.store.owners[id]; ok {
		return &o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOwnerRepo) GetAll(ctx context.Context) ([]model.Owner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	owners := make([]model.Owner, 0, len(r.store.owners))
	for _, o := range r.store.owners {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].ID < owners[j].ID })
	return owners, nil
}

func (r *memOwnerRepo) Create(ctx context.Context, owner *model.Owner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	owner.ID = r.store.id()
	r.store.owners[owner.ID] = *owner
	return nil
}

func (r *memOwnerRepo) Update(ctx context.Context, owner *model.Owner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.owners[owner.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.owners[owner.ID] = *owner
	return nil
}

func (r *memOwnerRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.owners[id]; !ok {
		return false, nil
	}
	delete(r.store.owners, id)
	return true, nil
}

func (r *memOwnerRepo) Exists(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.owners[id]
	return ok, nil
}

func (r *memOwnerRepo) HasEnabledProperties(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.properties {
		if p.OwnerID == id && p.Enabled {
			return true, nil
		}
	}
	return false, nil
}

type memPropertyRepo struct{ store *memStore }

func (r *memPropertyRepo) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.properties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.hydrate(&p)
	return &p, nil
}

// hydrate mirrors the preloads of the gorm store: owner, enabled images,
// all traces oldest-first. Caller holds the lock.
func (r *memPropertyRepo) hydrate(p *model.Property) {
	if o, ok := r.store.owners[p.OwnerID]; ok {
		p.Owner = o
	}
	p.Images = nil
	for _, img := range r.store.images {
		if img.PropertyID == p.ID && img.Enabled {
			p.Images = append(p.Images, img)
		}
	}
	sort.Slice(p.Images, func(i, j int) bool { return p.Images[i].ID < p.Images[j].ID })
	p.Traces = nil
	for _, t := range r.store.traces {
		if t.PropertyID == p.ID {
			p.Traces = append(p.Traces, t)
		}
	}
	sort.Slice(p.Traces, func(i, j int) bool {
		return p.Traces[i].DateSale.Before(p.Traces[j].DateSale)
	})
}

func (r *memPropertyRepo) GetFiltered(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]model.Property, 0)
	for _, p := range r.store.properties {
		if filter.Matches(&p) {
			r.hydrate(&p)
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	start := filter.Offset()
	if start >= len(matched) {
		return []model.Property{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memPropertyRepo) Create(ctx context.Context, property *model.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	property.ID = r.store.id()
	r.store.properties[property.ID] = *property
	return nil
}

func (r *memPropertyRepo) Update(ctx context.Context, property *model.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.properties[property.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *property
	stored.Owner = model.Owner{}
	stored.Images = nil
	stored.Traces = nil
	r.store.properties[property.ID] = stored
	return nil
}

func (r *memPropertyRepo) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.properties[id]
	if !ok || !p.Enabled {
		return false, nil
	}
	p.Enabled = false
	r.store.properties[id] = p
	return true, nil
}

func (r *memPropertyRepo) Exists(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.properties[id]
	return ok, nil
}

type memImageRepo struct{ store *memStore }

func (r *memImageRepo) GetByID(ctx context.Context, id uint) (*model.PropertyImage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if img, ok := r.store.images[id]; ok {
		return &img, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memImageRepo) GetEnabledByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyImage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	images := make([]model.PropertyImage, 0)
	for _, img := range r.store.images {
		if img.PropertyID == propertyID && img.Enabled {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images, nil
}

func (r *memImageRepo) Create(ctx context.Context, image *model.PropertyImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	image.ID = r.store.id()
	r.store.images[image.ID] = *image
	return nil
}

func (r *memImageRepo) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	img, ok := r.store.images[id]
	if !ok || !img.Enabled {
		return false, nil
	}
	img.Enabled = false
	r.store.images[id] = img
	return true, nil
}

type memTraceRepo struct{ store *memStore }

func (r *memTraceRepo) GetByID(ctx context.Context, id uint) (*model.PropertyTrace, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if t, ok := r.store.traces[id]; ok {
		return &t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTraceRepo) GetByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyTrace, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	traces := make([]model.PropertyTrace, 0)
	for _, t := range r.store.traces {
		if t.PropertyID == propertyID {
			traces = append(traces, t)
		}
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].DateSale.Before(traces[j].DateSale)
	})
	return traces, nil
}

func (r *memTraceRepo) Create(ctx context.Context, trace *model.PropertyTrace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	trace.ID = r.store.id()
	r.store.traces[trace.ID] = *trace
	return nil
}

// seed helpers

func seedOwner(uow *memUnitOfWork, name string) *model.Owner {
	owner := &model.Owner{Name: name}
	_ = uow.Repos().Owners.Create(context.Background(), owner)
	return owner
}

func seedProperty(uow *memUnitOfWork, ownerID uint, name string, price float64, year int, enabled bool) *model.Property {
	p := &model.Property{
		Name:    name,
		Address: name + " street",
		Price:   &price,
		Year:    &year,
		OwnerID: ownerID,
		Enabled: enabled,
	}
	_ = uow.Repos().Properties.Create(context.Background(), p)
	return p
}
