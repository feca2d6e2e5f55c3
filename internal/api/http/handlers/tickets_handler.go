package handlers

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/auth"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// TicketsHandler manages the staff ticket endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	photos   *service.PhotoService
	invoices *service.InvoiceService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, photos *service.PhotoService, invoices *service.InvoiceService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, photos: photos, invoices: invoices}
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListTickets(c.UserContext(), parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, photos, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, photos)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), req.Status, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// UpdatePriority PATCH /tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Priority {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh:
	default:
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
	}
	ticket, err := h.tickets.UpdatePriority(c.UserContext(), principal.User, c.Params("id"), req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AssignTechnician PATCH /tickets/:id/technician.
func (h *TicketsHandler) AssignTechnician(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.AssignTechnician(c.UserContext(), principal.User, c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// SaveCosts PUT /tickets/:id/costs.
func (h *TicketsHandler) SaveCosts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SaveCostsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.SaveCosts(c.UserContext(), principal.User, c.Params("id"),
		req.LaborCost, req.PartsCost, req.IncludeIVA, req.AppliedIVAPercentage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, nil)})
}

// SaveClosingFields PUT /tickets/:id/closing.
func (h *TicketsHandler) SaveClosingFields(c *fiber.Ctx) error {
	var req dto.ClosingFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.SaveClosingFields(c.UserContext(), c.Params("id"), req.TechnicianNotes, req.IsRepaired)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, nil)})
}

// AttachSignature POST /tickets/:id/signature. Accepts a multipart file,
// uploads it and stores the URL once.
func (h *TicketsHandler) AttachSignature(c *fiber.Ctx) error {
	data, err := readUploadedFile(c, "file")
	if err != nil {
		return err
	}
	url, err := h.photos.UploadSignature(c.UserContext(), c.Params("id"), data)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.AttachSignature(c.UserContext(), c.Params("id"), url)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, nil)})
}

// UpdateInvoiceOverrides PUT /tickets/:id/invoice-overrides.
func (h *TicketsHandler) UpdateInvoiceOverrides(c *fiber.Ctx) error {
	var req dto.InvoiceOverridesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateInvoiceOverrides(c.UserContext(), c.Params("id"),
		req.InvoiceName, req.InvoiceTaxID, req.InvoiceEmail, req.InvoiceAddress)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, nil)})
}

// GetInvoice GET /tickets/:id/invoice.
func (h *TicketsHandler) GetInvoice(c *fiber.Ctx) error {
	doc, err := h.invoices.BuildInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(doc)})
}

// ListChanges GET /tickets/:id/changes.
func (h *TicketsHandler) ListChanges(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	changes, err := h.tickets.ListChanges(c.UserContext(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.TicketChangeResponse, 0, len(changes))
	for _, change := range changes {
		items = append(items, dto.TicketChangeResponse{
			ID:          change.ID,
			ChangeType:  string(change.ChangeType),
			OldValue:    change.OldValue,
			NewValue:    change.NewValue,
			ChangedByID: change.ChangedByID,
			CreatedAt:   change.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteTicket DELETE /tickets/:id. Admin only, enforced at the route group.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.tickets.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if technician := c.Query("technician_id"); technician != "" {
		filter.TechnicianID = &technician
	}
	if customer := c.Query("customer_id"); customer != "" {
		filter.CustomerID = &customer
	}
	if category := c.Query("category_id"); category != "" {
		filter.CategoryID = &category
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func readUploadedFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, apperrors.NewValidationError("file required", map[string]any{"field": field})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable file", nil)
	}
	return data, nil
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            ticket.ID,
		TicketNumber:  ticket.TicketNumber,
		Status:        ticket.Status,
		Priority:      ticket.Priority,
		CustomerName:  ticket.CustomerName,
		CustomerPhone: ticket.CustomerPhone,
		DeviceModel:   ticket.DeviceModel,
		TechnicianID:  ticket.TechnicianID,
		TotalCost:     ticket.TotalCost,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, photos []domain.Photo) dto.TicketDetailResponse {
	photoResponses := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		photoResponses = append(photoResponses, dto.PhotoResponse{
			ID:        photo.ID,
			Type:      photo.Type,
			URL:       photo.URL,
			CreatedAt: photo.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		ID:               ticket.ID,
		TicketNumber:     ticket.TicketNumber,
		Status:           ticket.Status,
		Priority:         ticket.Priority,
		CustomerID:       ticket.CustomerID,
		CustomerName:     ticket.CustomerName,
		CustomerPhone:    ticket.CustomerPhone,
		CustomerAddress:  ticket.CustomerAddress,
		BrandID:          ticket.BrandID,
		CategoryID:       ticket.CategoryID,
		DeviceModel:      ticket.DeviceModel,
		SerialNumber:     ticket.SerialNumber,
		IssueDescription: ticket.IssueDescription,
		TriageData:       ticket.TriageData,
		TechnicianID:     ticket.TechnicianID,

		LaborCost:            ticket.LaborCost,
		PartsCost:            ticket.PartsCost,
		TotalCost:            ticket.TotalCost,
		IncludeIVA:           ticket.IncludeIVA,
		AppliedIVAPercentage: ticket.AppliedIVAPercentage,

		TechnicianNotes:    ticket.TechnicianNotes,
		IsRepaired:         ticket.IsRepaired,
		CancellationReason: ticket.CancellationReason,
		SignatureURL:       ticket.SignatureURL,

		InvoiceName:    ticket.InvoiceName,
		InvoiceTaxID:   ticket.InvoiceTaxID,
		InvoiceEmail:   ticket.InvoiceEmail,
		InvoiceAddress: ticket.InvoiceAddress,

		Photos: photoResponses,

		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
		ClosedAt:  ticket.ClosedAt,
	}
}

func invoiceResponse(doc *service.InvoiceDocument) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		TicketID:     doc.TicketID,
		TicketNumber: doc.TicketNumber,
		FriendlyID:   doc.FriendlyID,
		IssuedAt:     doc.IssuedAt,

		Company: dto.InvoiceCompanyResponse{
			Name:      doc.Company.Name,
			Address:   doc.Company.Address,
			TaxID:     doc.Company.TaxID,
			Phone:     doc.Company.Phone,
			Email:     doc.Company.Email,
			LegalText: doc.Company.LegalText,
		},
		BillTo: dto.InvoicePartyResponse{
			Name:    doc.BillTo.Name,
			TaxID:   doc.BillTo.TaxID,
			Email:   doc.BillTo.Email,
			Address: doc.BillTo.Address,
		},

		DeviceModel:      doc.DeviceModel,
		IssueDescription: doc.IssueDescription,
		TechnicianNotes:  doc.TechnicianNotes,
		IsRepaired:       doc.IsRepaired,

		LaborCost:  doc.LaborCost,
		PartsCost:  doc.PartsCost,
		Subtotal:   doc.Totals.Subtotal,
		IncludeIVA: doc.IncludeIVA,
		IVARate:    doc.Totals.IVARate,
		IVAAmount:  doc.Totals.IVAAmount,
		Total:      doc.Totals.Total,

		CurrencyCode:       doc.CurrencyCode,
		FormattedLabor:     doc.FormattedLabor,
		FormattedParts:     doc.FormattedParts,
		FormattedSubtotal:  doc.FormattedSubtotal,
		FormattedIVAAmount: doc.FormattedIVAAmount,
		FormattedTotal:     doc.FormattedTotal,
	}
}
