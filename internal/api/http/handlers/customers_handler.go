package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// CustomersHandler manages the back-office customer directory.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// Search GET /customers.
func (h *CustomersHandler) Search(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	customers, err := h.customers.Search(c.UserContext(), c.Query("search"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customer, err := h.customers.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	customer, err := h.customers.UpdateCustomer(c.UserContext(), c.Params("id"), service.CustomerUpdateInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	if err := h.customers.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tickets GET /customers/:id/tickets.
func (h *CustomersHandler) Tickets(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	tickets, err := h.customers.TicketsForCustomer(c.UserContext(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Email:          customer.Email,
		DocumentNumber: customer.DocumentNumber,
		Address:        customer.Address,
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}
}
