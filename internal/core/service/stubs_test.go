package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Supplier repository
// ---------------------------------------------------------------------------

type stubSupplierRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Supplier
	roles     map[string][]string
	known     map[string]bool // role registry contents, by normalized name
	createErr error
	addErr    error
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{
		byID:  make(map[string]*domain.Supplier),
		roles: make(map[string][]string),
		known: make(map[string]bool),
	}
}

func cloneSupplier(s *domain.Supplier) *domain.Supplier {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (r *stubSupplierRepo) Create(_ context.Context, s *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.byID {
		if u.Email == s.Email {
			return domain.ErrDuplicateEmail
		}
		if u.UserName == s.UserName {
			return domain.ErrDuplicateUserName
		}
	}
	r.byID[s.ID] = cloneSupplier(s)
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id string) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	return cloneSupplier(s), nil
}

func (r *stubSupplierRepo) FindByEmail(_ context.Context, email string) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.Email == email {
			return cloneSupplier(s), nil
		}
	}
	return nil, domain.ErrSupplierNotFound
}

func (r *stubSupplierRepo) FindByUserName(_ context.Context, userName string) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.UserName == userName {
			return cloneSupplier(s), nil
		}
	}
	return nil, domain.ErrSupplierNotFound
}

func (r *stubSupplierRepo) List(_ context.Context, f ports.SupplierListFilter) ([]*domain.Supplier, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Supplier
	for _, s := range r.byID {
		if s.ID == f.ExcludeID {
			continue
		}
		all = append(all, cloneSupplier(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return paginate(all, f.Page, f.PageSize), int64(len(all)), nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(r.byID, id)
	delete(r.roles, id)
	return nil
}

func (r *stubSupplierRepo) AddToRole(_ context.Context, supplierID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	if !r.known[domain.NormalizeRole(role)] {
		return domain.ErrRoleNotFound
	}
	for _, have := range r.roles[supplierID] {
		if have == role {
			return domain.ErrAlreadyInRole
		}
	}
	r.roles[supplierID] = append(r.roles[supplierID], role)
	return nil
}

func (r *stubSupplierRepo) GetRoles(_ context.Context, supplierID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.roles[supplierID]...), nil
}

// Ensure makes the repo double as the role registry, the same way
// both live in one database in production.
func (r *stubSupplierRepo) Ensure(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[domain.NormalizeRole(name)] = true
	return nil
}

func paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	skip := (page - 1) * size
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []T{}
	}
	end := skip + size
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

type failingRoleRegistry struct{ err error }

func (f failingRoleRegistry) Ensure(context.Context, string) error { return f.err }

// ---------------------------------------------------------------------------
// Reference data
// ---------------------------------------------------------------------------

type stubLocations struct {
	cities    []string
	divisions []string
}

func newStubLocations() stubLocations {
	return stubLocations{
		cities:    []string{"Dhaka", "Chattogram", "Sylhet"},
		divisions: []string{"Dhaka", "Chattogram", "Sylhet"},
	}
}

func (l stubLocations) Cities() []string    { return l.cities }
func (l stubLocations) Divisions() []string { return l.divisions }

func (l stubLocations) ResolveCity(name string) (string, bool) {
	return resolveIn(l.cities, name)
}

func (l stubLocations) ResolveDivision(name string) (string, bool) {
	return resolveIn(l.divisions, name)
}

func resolveIn(list []string, name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range list {
		if strings.ToLower(v) == name {
			return v, true
		}
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Products, categories, photos
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	createErr error
	lastList  ports.ProductListFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	c := *p
	r.byID[p.ID] = &c
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	c := *p
	return &c, nil
}

// List applies the same filters the Mongo repository does.
func (r *stubProductRepo) List(_ context.Context, f ports.ProductListFilter) ([]*domain.Product, int64, error) {
	r.lastList = f
	var matched []*domain.Product
	for _, p := range r.byID {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), f.Name) {
			continue
		}
		if f.Category != "" && p.CategoryName != f.Category {
			continue
		}
		if f.City != "" && p.SupplierCity != f.City {
			continue
		}
		if f.Division != "" && p.SupplierDivision != f.Division {
			continue
		}
		c := *p
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		switch f.Sort {
		case domain.SortPriceLowHigh:
			return matched[i].Price < matched[j].Price
		case domain.SortPriceHighLow:
			return matched[i].Price > matched[j].Price
		case domain.SortDateOldToNew:
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
	})
	return paginate(matched, f.Page, f.PageSize), int64(len(matched)), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) DeleteBySupplier(_ context.Context, supplierID string) ([]*domain.Product, error) {
	var removed []*domain.Product
	for id, p := range r.byID {
		if p.SupplierID == supplierID {
			removed = append(removed, p)
			delete(r.byID, id)
		}
	}
	return removed, nil
}

type stubCategoryRepo struct {
	byName map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byName: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) GetOrCreate(_ context.Context, name string) (*domain.Category, error) {
	if c, ok := r.byName[name]; ok {
		return c, nil
	}
	c := &domain.Category{ID: "cat-" + name, Name: name}
	r.byName[name] = c
	return c, nil
}

type stubPhotoHost struct {
	uploads   []ports.Transformation
	failAfter int // fail the upload with this 1-based index; 0 = never
	err       error
}

func (h *stubPhotoHost) Upload(_ context.Context, p ports.PhotoUpload, t ports.Transformation) (*ports.UploadedPhoto, error) {
	h.uploads = append(h.uploads, t)
	if h.failAfter > 0 && len(h.uploads) == h.failAfter {
		return nil, h.err
	}
	id := fmt.Sprintf("img-%s-%d", p.Filename, len(h.uploads))
	return &ports.UploadedPhoto{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (h *stubPhotoHost) Delete(context.Context, string) error { return nil }

type recordingCleaner struct {
	jobs []ports.PhotoCleanupJob
}

func (c *recordingCleaner) Enqueue(job ports.PhotoCleanupJob) {
	c.jobs = append(c.jobs, job)
}

type stubIdempotency struct {
	values map[string]string
	err    error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{values: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[scope+"|"+key]
	return v, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[scope+"|"+key] = value
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var errStore = errors.New("store unavailable")

func newTestCredentialStore(repo ports.SupplierRepository) *CredentialStore {
	store := NewCredentialStore(repo)
	store.cost = bcrypt.MinCost
	return store
}

func newTestTokenService(now time.Time) *TokenService {
	ts, err := NewTokenService(testSecret)
	if err != nil {
		panic(err)
	}
	ts.now = func() time.Time { return now }
	return ts
}
