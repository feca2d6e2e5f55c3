package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func newTicketFixture() (*TicketService, *fakeTicketRepo, *fakeUserRepo, *fakeChangeRepo) {
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	changes := &fakeChangeRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		PhotoRepo:  newFakePhotoRepo(),
		ChangeRepo: changes,
	})
	return svc, tickets, users, changes
}

func seedTicket(t *testing.T, tickets *fakeTicketRepo, status domain.TicketStatus) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		Status:        status,
		Priority:      domain.TicketPriorityLow,
		CustomerID:    "customer-1",
		CustomerName:  "Marta Ruiz",
		CustomerPhone: "+34 600 111 222",
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatal(err)
	}
	return ticket
}

func seedUser(t *testing.T, users *fakeUserRepo, role domain.Role, active bool) *domain.User {
	t.Helper()
	email := fmt.Sprintf("staff-%d@shop.test", len(users.users)+1)
	user := &domain.User{Name: "Staff", Email: email, Role: role, Active: active}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TicketStatus
		to      domain.TicketStatus
		reason  string
		wantErr string
	}{
		{"pending to in progress", domain.TicketStatusPending, domain.TicketStatusInProgress, "", ""},
		{"in progress to finished", domain.TicketStatusInProgress, domain.TicketStatusFinished, "", ""},
		{"pending cancelled with reason", domain.TicketStatusPending, domain.TicketStatusCancelled, "customer declined", ""},
		{"in progress cancelled with reason", domain.TicketStatusInProgress, domain.TicketStatusCancelled, "parts unavailable", ""},
		{"pending straight to finished", domain.TicketStatusPending, domain.TicketStatusFinished, "", "CONFLICT"},
		{"backwards to pending", domain.TicketStatusInProgress, domain.TicketStatusPending, "", "CONFLICT"},
		{"finished is terminal", domain.TicketStatusFinished, domain.TicketStatusInProgress, "", "CONFLICT"},
		{"cancelled is terminal", domain.TicketStatusCancelled, domain.TicketStatusPending, "", "CONFLICT"},
		{"cancel without reason", domain.TicketStatusPending, domain.TicketStatusCancelled, "  ", "VALIDATION_FAILED"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, tickets, _, _ := newTicketFixture()
			ticket := seedTicket(t, tickets, tc.from)

			updated, err := svc.UpdateStatus(context.Background(), nil, ticket.ID, tc.to, tc.reason)
			if tc.wantErr != "" {
				if code := domainErrCode(t, err); code != tc.wantErr {
					t.Errorf("error code = %s, want %s", code, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if updated.Status != tc.to {
				t.Errorf("status = %s, want %s", updated.Status, tc.to)
			}
			if tc.to.IsTerminal() && updated.ClosedAt == nil {
				t.Error("terminal transition did not set ClosedAt")
			}
			if tc.to == domain.TicketStatusCancelled && updated.CancellationReason == "" {
				t.Error("cancellation reason not stored")
			}
		})
	}
}

func TestUpdateStatusRecordsChange(t *testing.T) {
	svc, tickets, users, changes := newTicketFixture()
	ticket := seedTicket(t, tickets, domain.TicketStatusPending)
	admin := seedUser(t, users, domain.RoleAdmin, true)

	if _, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, domain.TicketStatusInProgress, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(changes.changes) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(changes.changes))
	}
	entry := changes.changes[0]
	if entry.ChangeType != domain.ChangeTypeStatus {
		t.Errorf("change type = %s, want status", entry.ChangeType)
	}
	if entry.ChangedByID == nil || *entry.ChangedByID != admin.ID {
		t.Errorf("changed by = %v, want %s", entry.ChangedByID, admin.ID)
	}
}

func TestUpdatePriorityOnClosedTicket(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := seedTicket(t, tickets, domain.TicketStatusFinished)

	_, err := svc.UpdatePriority(context.Background(), nil, ticket.ID, domain.TicketPriorityHigh)
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Errorf("error code = %s, want CONFLICT", code)
	}
}

func TestAssignTechnician(t *testing.T) {
	svc, tickets, users, _ := newTicketFixture()
	technician := seedUser(t, users, domain.RoleTechnician, true)
	inactive := seedUser(t, users, domain.RoleTechnician, false)
	admin := seedUser(t, users, domain.RoleAdmin, true)

	ticket := seedTicket(t, tickets, domain.TicketStatusPending)

	updated, err := svc.AssignTechnician(context.Background(), nil, ticket.ID, &technician.ID)
	if err != nil {
		t.Fatalf("AssignTechnician: %v", err)
	}
	if updated.TechnicianID == nil || *updated.TechnicianID != technician.ID {
		t.Errorf("technician = %v, want %s", updated.TechnicianID, technician.ID)
	}

	if _, err := svc.AssignTechnician(context.Background(), nil, ticket.ID, &inactive.ID); err == nil {
		t.Error("expected inactive technician to be rejected")
	}
	if _, err := svc.AssignTechnician(context.Background(), nil, ticket.ID, &admin.ID); err == nil {
		t.Error("expected non-technician role to be rejected")
	}

	missing := "user-404"
	_, err = svc.AssignTechnician(context.Background(), nil, ticket.ID, &missing)
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Errorf("error code = %s, want NOT_FOUND", code)
	}

	// clearing the assignment is allowed
	updated, err = svc.AssignTechnician(context.Background(), nil, ticket.ID, nil)
	if err != nil {
		t.Fatalf("AssignTechnician clear: %v", err)
	}
	if updated.TechnicianID != nil {
		t.Errorf("technician = %v, want nil", updated.TechnicianID)
	}
}

func TestSaveCosts(t *testing.T) {
	svc, tickets, users, _ := newTicketFixture()
	technician := seedUser(t, users, domain.RoleTechnician, true)
	admin := seedUser(t, users, domain.RoleAdmin, true)
	ticket := seedTicket(t, tickets, domain.TicketStatusInProgress)

	updated, err := svc.SaveCosts(context.Background(), technician, ticket.ID, 80, 20.5, true, nil)
	if err != nil {
		t.Fatalf("SaveCosts: %v", err)
	}
	if updated.TotalCost != 100.5 {
		t.Errorf("total = %v, want 100.5", updated.TotalCost)
	}

	// nonzero total locks the fields for technicians
	_, err = svc.SaveCosts(context.Background(), technician, ticket.ID, 90, 20.5, true, nil)
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Errorf("error code = %s, want FORBIDDEN", code)
	}

	updated, err = svc.SaveCosts(context.Background(), admin, ticket.ID, 90, 10, true, nil)
	if err != nil {
		t.Fatalf("SaveCosts as admin: %v", err)
	}
	if updated.TotalCost != 100 {
		t.Errorf("total after admin edit = %v, want 100", updated.TotalCost)
	}
}

func TestSaveCostsNegative(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := seedTicket(t, tickets, domain.TicketStatusInProgress)

	_, err := svc.SaveCosts(context.Background(), nil, ticket.ID, -1, 0, false, nil)
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("error code = %s, want VALIDATION_FAILED", code)
	}
}

func TestAttachSignatureWriteOnce(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := seedTicket(t, tickets, domain.TicketStatusInProgress)

	updated, err := svc.AttachSignature(context.Background(), ticket.ID, "https://img.example/sig1.png")
	if err != nil {
		t.Fatalf("AttachSignature: %v", err)
	}
	if updated.SignatureURL != "https://img.example/sig1.png" {
		t.Errorf("signature url = %s", updated.SignatureURL)
	}

	_, err = svc.AttachSignature(context.Background(), ticket.ID, "https://img.example/sig2.png")
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Errorf("error code = %s, want CONFLICT", code)
	}

	_, err = svc.AttachSignature(context.Background(), ticket.ID, "  ")
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("error code = %s, want VALIDATION_FAILED", code)
	}
}

func TestSaveClosingFields(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := seedTicket(t, tickets, domain.TicketStatusInProgress)

	updated, err := svc.SaveClosingFields(context.Background(), ticket.ID, "  replaced pump  ", true)
	if err != nil {
		t.Fatalf("SaveClosingFields: %v", err)
	}
	if updated.TechnicianNotes != "replaced pump" {
		t.Errorf("notes = %q, want trimmed", updated.TechnicianNotes)
	}
	if !updated.IsRepaired {
		t.Error("is repaired not set")
	}
}

func TestDeleteTicketMissing(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	err := svc.DeleteTicket(context.Background(), "ticket-404")
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Errorf("error code = %s, want NOT_FOUND", code)
	}
}
