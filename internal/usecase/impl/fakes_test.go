package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Ids containing '!' are treated as malformed by the in-memory repositories.
func checkID(id string) error {
	if id == "" || strings.Contains(id, "!") {
		return repository.ErrInvalidID
	}

	return nil
}

type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++

	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type memUserRepo struct {
	mu    sync.Mutex
	seq   sequence
	users map[string]*entity.User

	createErr error

	// Run before Create and LinkGoogleID to simulate a concurrent login.
	beforeCreate func(*memUserRepo)
	beforeLink   func(*memUserRepo)
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}

	return repo
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		clone := *u

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return googleID != "" && u.GoogleID == googleID })
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)

	return r.findBy(func(u *entity.User) bool { return u.Email == email })
}

func (r *memUserRepo) findBy(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found[id] = u
		}
	}

	return found, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}

	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || (user.GoogleID != "" && u.GoogleID == user.GoogleID) {
			return domainerrors.ErrDuplicateAccount
		}
	}

	user.ID = r.seq.next("user")
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) LinkGoogleID(_ context.Context, id, googleID, displayName string) (*entity.User, error) {
	if hook := r.beforeLink; hook != nil {
		r.beforeLink = nil
		hook(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.GoogleID != "" {
		return nil, repository.ErrUserNotFound
	}

	u.GoogleID = googleID
	if u.DisplayName == "" {
		u.DisplayName = displayName
	}

	clone := *u

	return &clone, nil
}

// insert stores a user as if another request had written it.
func (r *memUserRepo) insert(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

type memCategoryRepo struct {
	seq        sequence
	categories map[string]*entity.Category
}

func newMemCategoryRepo(categories ...*entity.Category) *memCategoryRepo {
	repo := &memCategoryRepo{categories: map[string]*entity.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}

	return repo
}

func (r *memCategoryRepo) FindByID(_ context.Context, id string) (*entity.Category, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if c, ok := r.categories[id]; ok {
		clone := *c

		return &clone, nil
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindByIDs(_ context.Context, ids []string) (map[string]*entity.Category, error) {
	found := make(map[string]*entity.Category, len(ids))
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			found[id] = c
		}
	}

	return found, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	list := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}

	return list, nil
}

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return domainerrors.ErrCategoryAlreadyExists
		}
	}

	category.ID = r.seq.next("category")
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}

	for id, c := range r.categories {
		if id != category.ID && c.Name == category.Name {
			return domainerrors.ErrCategoryAlreadyExists
		}
	}

	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}

	delete(r.categories, id)

	return nil
}

type memRecipeRepo struct {
	seq     sequence
	recipes map[string]*entity.Recipe

	addReviewErr error
}

func newMemRecipeRepo(recipes ...*entity.Recipe) *memRecipeRepo {
	repo := &memRecipeRepo{recipes: map[string]*entity.Recipe{}}
	for _, rc := range recipes {
		repo.recipes[rc.ID] = rc
	}

	return repo
}

func (r *memRecipeRepo) FindByID(_ context.Context, id string) (*entity.Recipe, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if rc, ok := r.recipes[id]; ok {
		clone := *rc
		clone.ReviewIDs = append([]string(nil), rc.ReviewIDs...)

		return &clone, nil
	}

	return nil, repository.ErrRecipeNotFound
}

func (r *memRecipeRepo) List(_ context.Context) ([]*entity.Recipe, error) {
	list := make([]*entity.Recipe, 0, len(r.recipes))
	for _, rc := range r.recipes {
		list = append(list, rc)
	}

	return list, nil
}

func (r *memRecipeRepo) Create(_ context.Context, recipe *entity.Recipe) error {
	recipe.ID = r.seq.next("recipe")
	clone := *recipe
	r.recipes[recipe.ID] = &clone

	return nil
}

func (r *memRecipeRepo) Update(_ context.Context, recipe *entity.Recipe) error {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return repository.ErrRecipeNotFound
	}

	clone := *recipe
	r.recipes[recipe.ID] = &clone

	return nil
}

func (r *memRecipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.recipes[id]; !ok {
		return repository.ErrRecipeNotFound
	}

	delete(r.recipes, id)

	return nil
}

func (r *memRecipeRepo) AddReview(_ context.Context, recipeID, reviewID string) error {
	if r.addReviewErr != nil {
		return r.addReviewErr
	}

	rc, ok := r.recipes[recipeID]
	if !ok {
		return repository.ErrRecipeNotFound
	}

	rc.ReviewIDs = append(rc.ReviewIDs, reviewID)

	return nil
}

func (r *memRecipeRepo) RemoveReview(_ context.Context, recipeID, reviewID string) error {
	rc, ok := r.recipes[recipeID]
	if !ok {
		return repository.ErrRecipeNotFound
	}

	kept := rc.ReviewIDs[:0]
	for _, id := range rc.ReviewIDs {
		if id != reviewID {
			kept = append(kept, id)
		}
	}

	rc.ReviewIDs = kept

	return nil
}

type memReviewRepo struct {
	seq     sequence
	reviews map[string]*entity.Review
}

func newMemReviewRepo(reviews ...*entity.Review) *memReviewRepo {
	repo := &memReviewRepo{reviews: map[string]*entity.Review{}}
	for _, rv := range reviews {
		repo.reviews[rv.ID] = rv
	}

	return repo
}

func (r *memReviewRepo) FindByID(_ context.Context, id string) (*entity.Review, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if rv, ok := r.reviews[id]; ok {
		clone := *rv

		return &clone, nil
	}

	return nil, repository.ErrReviewNotFound
}

func (r *memReviewRepo) ListByRecipe(_ context.Context, recipeID string) ([]*entity.Review, error) {
	var list []*entity.Review
	for _, rv := range r.reviews {
		if rv.RecipeID == recipeID {
			clone := *rv
			list = append(list, &clone)
		}
	}

	return list, nil
}

func (r *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	review.ID = r.seq.next("review")
	clone := *review
	r.reviews[review.ID] = &clone

	return nil
}

func (r *memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}

	clone := *review
	r.reviews[review.ID] = &clone

	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}

	delete(r.reviews, id)

	return nil
}

func (r *memReviewRepo) DeleteByRecipe(_ context.Context, recipeID string) (int64, error) {
	var removed int64
	for id, rv := range r.reviews {
		if rv.RecipeID == recipeID {
			delete(r.reviews, id)
			removed++
		}
	}

	return removed, nil
}

type memSessionStore struct {
	values map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{values: map[string]string{}}
}

func (s *memSessionStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]

	return v, ok, nil
}

func (s *memSessionStore) Set(_ context.Context, key, userID string) error {
	s.values[key] = userID

	return nil
}

func (s *memSessionStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)

	return nil
}

type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockIdentityProvider) Exchange(ctx context.Context, code string) (*service.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	identity, _ := args.Get(0).(*service.ExternalIdentity)

	return identity, args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID string) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

type recordingMetrics struct {
	logins     []string
	rejections []string
}

func (m *recordingMetrics) RecordLogin(outcome string) { m.logins = append(m.logins, outcome) }

func (m *recordingMetrics) RecordAuthRejection(reason string) {
	m.rejections = append(m.rejections, reason)
}

func (m *recordingMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}

// clock returns successive instants one minute apart, starting at start.
func clock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start

	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		now := next
		next = next.Add(time.Minute)

		return now
	}
}

var clockStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type memContactRepo struct {
	seq      sequence
	contacts map[string]*entity.Contact
}

func newMemContactRepo(contacts ...*entity.Contact) *memContactRepo {
	repo := &memContactRepo{contacts: map[string]*entity.Contact{}}
	for _, c := range contacts {
		repo.contacts[c.ID] = c
	}

	return repo
}

func (r *memContactRepo) FindByID(_ context.Context, id string) (*entity.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if c, ok := r.contacts[id]; ok {
		clone := *c

		return &clone, nil
	}

	return nil, repository.ErrContactNotFound
}

func (r *memContactRepo) List(_ context.Context) ([]*entity.Contact, error) {
	list := make([]*entity.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		list = append(list, c)
	}

	return list, nil
}

func (r *memContactRepo) emailTaken(id, email string) bool {
	for otherID, c := range r.contacts {
		if otherID != id && c.Email == email {
			return true
		}
	}

	return false
}

func (r *memContactRepo) Create(_ context.Context, contact *entity.Contact) error {
	if r.emailTaken("", contact.Email) {
		return domainerrors.ErrContactAlreadyExists
	}

	contact.ID = r.seq.next("contact")
	clone := *contact
	r.contacts[contact.ID] = &clone

	return nil
}

func (r *memContactRepo) Update(_ context.Context, contact *entity.Contact) error {
	if _, ok := r.contacts[contact.ID]; !ok {
		return repository.ErrContactNotFound
	}

	if r.emailTaken(contact.ID, contact.Email) {
		return domainerrors.ErrContactAlreadyExists
	}

	clone := *contact
	r.contacts[contact.ID] = &clone

	return nil
}

func (r *memContactRepo) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if _, ok := r.contacts[id]; !ok {
		return repository.ErrContactNotFound
	}

	delete(r.contacts, id)

	return nil
}

type memProductRepo struct {
	seq      sequence
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	repo := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}

	return repo
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*entity.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if p, ok := r.products[id]; ok {
		clone := *p

		return &clone, nil
	}

	return nil, repository.ErrProductNotFound
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}

	return list, nil
}

func (r *memProductRepo) skuTaken(id, sku string) bool {
	for otherID, p := range r.products {
		if otherID != id && p.SKU == sku {
			return true
		}
	}

	return false
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	if r.skuTaken("", product.SKU) {
		return domainerrors.ErrProductAlreadyExists
	}

	product.ID = r.seq.next("product")
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}

	if r.skuTaken(product.ID, product.SKU) {
		return domainerrors.ErrProductAlreadyExists
	}

	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}

	delete(r.products, id)

	return nil
}
