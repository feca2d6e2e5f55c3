package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
)

// In-memory repository implementations backing the service tests.

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
	nextID    int
	creates   int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	r.nextID++
	r.creates++
	customer.ID = fmt.Sprintf("customer-%d", r.nextID)
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) FindByPhoneOrDocument(ctx context.Context, phone, document string) (*domain.Customer, error) {
	var match *domain.Customer
	for _, customer := range r.customers {
		if customer.Phone == phone || (document != "" && customer.DocumentNumber == document) {
			if match == nil || customer.CreatedAt.Before(match.CreatedAt) {
				match = customer
			}
		}
	}
	if match == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *match
	return &copied, nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, term string, limit, offset int) ([]domain.Customer, error) {
	var result []domain.Customer
	for _, customer := range r.customers {
		if term == "" || strings.Contains(strings.ToLower(customer.Name), strings.ToLower(term)) {
			result = append(result, *customer)
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	tickets    map[string]*domain.Ticket
	nextNumber int
	nextID     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.nextNumber++
	r.nextID++
	ticket.TicketNumber = r.nextNumber
	ticket.ID = fmt.Sprintf("ticket-%06d", r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByNumber(ctx context.Context, number int) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.TicketNumber == number {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.CustomerID != nil && ticket.CustomerID != *filter.CustomerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		result = append(result, *ticket)
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeTicketRepo) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status.IsTerminal() {
			continue
		}
		if ticket.UpdatedAt.Before(olderThan) {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

type fakeBrandRepo struct {
	brands map[string]*domain.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{brands: map[string]*domain.Brand{}}
}

func (r *fakeBrandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	brand.ID = fmt.Sprintf("brand-%d", len(r.brands)+1)
	copied := *brand
	r.brands[brand.ID] = &copied
	return nil
}

func (r *fakeBrandRepo) Update(ctx context.Context, brand *domain.Brand) error {
	if _, ok := r.brands[brand.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *brand
	r.brands[brand.ID] = &copied
	return nil
}

func (r *fakeBrandRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.brands[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.brands, id)
	return nil
}

func (r *fakeBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	brand, ok := r.brands[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *brand
	return &copied, nil
}

func (r *fakeBrandRepo) List(ctx context.Context, activeOnly bool) ([]domain.Brand, error) {
	var result []domain.Brand
	for _, brand := range r.brands {
		if activeOnly && !brand.IsActive {
			continue
		}
		result = append(result, *brand)
	}
	return result, nil
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*domain.Category{}}
}

func (r *fakeCategoryRepo) put(category domain.Category) {
	r.categories[category.ID] = &category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	category.ID = fmt.Sprintf("category-%d", len(r.categories)+1)
	r.put(*category)
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.put(*category)
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	var result []domain.Category
	for _, category := range r.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		result = append(result, *category)
	}
	return result, nil
}

type fakeQuestionRepo struct {
	questions map[string]*domain.TriageQuestion
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[string]*domain.TriageQuestion{}}
}

func (r *fakeQuestionRepo) put(question domain.TriageQuestion) {
	r.questions[question.ID] = &question
}

// Question ids must be uuids because intake filters malformed ids before the
// lookup ever sees them.
func (r *fakeQuestionRepo) Create(ctx context.Context, question *domain.TriageQuestion) error {
	question.ID = uuid.NewString()
	r.put(*question)
	return nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, question *domain.TriageQuestion) error {
	if _, ok := r.questions[question.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.put(*question)
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*domain.TriageQuestion, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *question
	return &copied, nil
}

func (r *fakeQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.TriageQuestion, error) {
	var result []domain.TriageQuestion
	for _, id := range ids {
		if question, ok := r.questions[id]; ok {
			result = append(result, *question)
		}
	}
	return result, nil
}

func (r *fakeQuestionRepo) ListForCategory(ctx context.Context, categoryID string) ([]domain.TriageQuestion, error) {
	var result []domain.TriageQuestion
	for _, question := range r.questions {
		if question.CategoryID == nil || *question.CategoryID == categoryID {
			result = append(result, *question)
		}
	}
	return result, nil
}

func (r *fakeQuestionRepo) ListAll(ctx context.Context) ([]domain.TriageQuestion, error) {
	var result []domain.TriageQuestion
	for _, question := range r.questions {
		result = append(result, *question)
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) put(user domain.User) {
	r.users[user.ID] = &user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.put(*user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.put(*user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleTechnician && user.Active {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakePhotoRepo struct {
	photos map[string]*domain.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[string]*domain.Photo{}}
}

func (r *fakePhotoRepo) Create(ctx context.Context, photo *domain.Photo) error {
	photo.ID = fmt.Sprintf("photo-%d", len(r.photos)+1)
	photo.CreatedAt = time.Now()
	copied := *photo
	r.photos[photo.ID] = &copied
	return nil
}

func (r *fakePhotoRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.photos, id)
	return nil
}

func (r *fakePhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	photo, ok := r.photos[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *photo
	return &copied, nil
}

func (r *fakePhotoRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Photo, error) {
	var result []domain.Photo
	for _, photo := range r.photos {
		if photo.TicketID == ticketID {
			result = append(result, *photo)
		}
	}
	return result, nil
}

type fakeChangeRepo struct {
	changes []domain.TicketChange
}

func (r *fakeChangeRepo) Create(ctx context.Context, change *domain.TicketChange) error {
	change.ID = fmt.Sprintf("change-%d", len(r.changes)+1)
	change.CreatedAt = time.Now()
	r.changes = append(r.changes, *change)
	return nil
}

func (r *fakeChangeRepo) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.TicketChange, error) {
	var result []domain.TicketChange
	for _, change := range r.changes {
		if change.TicketID == ticketID {
			result = append(result, change)
		}
	}
	return result, nil
}

type fakeSettingsRepo struct {
	company domain.CompanySettings
	site    domain.SiteSettings
}

func (r *fakeSettingsRepo) GetCompany(ctx context.Context) (*domain.CompanySettings, error) {
	copied := r.company
	return &copied, nil
}

func (r *fakeSettingsRepo) UpdateCompany(ctx context.Context, settings *domain.CompanySettings) error {
	r.company = *settings
	return nil
}

func (r *fakeSettingsRepo) GetSite(ctx context.Context) (*domain.SiteSettings, error) {
	copied := r.site
	return &copied, nil
}

func (r *fakeSettingsRepo) UpdateSite(ctx context.Context, settings *domain.SiteSettings) error {
	r.site = *settings
	return nil
}
