package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/catalog/model"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
	images   map[uuid.UUID][]model.ProductImage
	imageErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[uuid.UUID]*model.Product{},
		images:   map[uuid.UUID][]model.ProductImage{},
	}
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	p.IsActive = active
	return nil
}

func (f *fakeProductRepo) SetOfferStatus(_ context.Context, id uuid.UUID, status bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	p.OfferStatus = status
	return nil
}

func (f *fakeProductRepo) AddReview(_ context.Context, productID uuid.UUID, review *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return model.ErrProductNotFound
	}
	p.Reviews = append(p.Reviews, *review)
	return nil
}

func (f *fakeProductRepo) AddImage(_ context.Context, productID uuid.UUID, image model.ProductImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.imageErr != nil {
		return f.imageErr
	}
	f.images[productID] = append(f.images[productID], image)
	return nil
}

func (f *fakeProductRepo) DecrementStockWithTx(context.Context, pgx.Tx, uuid.UUID, string, int) error {
	return errors.New("not used")
}

func (f *fakeProductRepo) IncrementStockWithTx(context.Context, pgx.Tx, uuid.UUID, string, int) error {
	return errors.New("not used")
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category
	inUse      map[uuid.UUID]bool
}

func newFakeCategoryRepo(seed ...model.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{}, inUse: map[uuid.UUID]bool{}}
	for i := range seed {
		c := seed[i]
		f.categories[c.ID] = &c
	}
	return f
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return model.ErrCategoryExists
		}
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, name string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context, visibleOnly bool) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Category{}
	for _, c := range f.categories {
		if !visibleOnly || c.Visibility {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[c.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	if f.inUse[id] {
		return model.ErrCategoryInUse
	}
	delete(f.categories, id)
	return nil
}

type fakeImageStore struct {
	uploaded []string
	deleted  []string
	failOn   string
}

func (f *fakeImageStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.failOn != "" && strings.HasSuffix(key, f.failOn) {
		return "", errors.New("storage down")
	}
	f.uploaded = append(f.uploaded, key)
	return "http://cdn/" + key, nil
}

func (f *fakeImageStore) DeleteByPrefix(_ context.Context, prefix string) error {
	f.deleted = append(f.deleted, prefix)
	return nil
}

type fakeProcessor struct {
	invalid error
}

func (f fakeProcessor) ValidateImage([]byte) error { return f.invalid }

func (f fakeProcessor) ProcessImage([]byte) (map[string][]byte, error) {
	return map[string][]byte{"large": {1}, "medium": {2}, "thumbnail": {3}}, nil
}
