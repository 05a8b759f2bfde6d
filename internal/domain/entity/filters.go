package entity

import "github.com/google/uuid"

// CaseFilter narrows case listings. Zero values mean "no filter".
type CaseFilter struct {
	Status     CaseStatus
	Priority   CasePriority
	DentistID  uuid.UUID
	AssigneeID uuid.UUID
}

// InvoiceFilter narrows invoice listings. Zero values mean "no filter".
type InvoiceFilter struct {
	Status    InvoiceStatus
	DentistID uuid.UUID
	CaseID    uuid.UUID
}
