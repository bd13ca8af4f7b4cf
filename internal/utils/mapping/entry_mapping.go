package mapping

import (
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	"github.com/vslakit/vsla_ledger_app/internal/models"
)

// ToModelLedgerEntry flattens the owner variant into the (owner_type,
// owner_id) column pair for storage.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		ProjectID:       d.ProjectID,
		Amount:          d.Amount,
		SignedAmount:    d.SignedAmount,
		OwnerType:       string(d.Owner.Type),
		OwnerID:         d.Owner.ID,
		AccountType:     string(d.AccountType),
		TransactionType: string(d.TransactionType),
		Source:          string(d.Source),
		IsContraEntry:   d.IsContraEntry,
		ContraEntryID:   d.ContraEntryID,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a stored row back into the domain entry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		ProjectID:       m.ProjectID,
		Amount:          m.Amount,
		SignedAmount:    m.SignedAmount,
		Owner:           domain.Owner{Type: domain.OwnerType(m.OwnerType), ID: m.OwnerID},
		AccountType:     domain.AccountType(m.AccountType),
		TransactionType: domain.TransactionType(m.TransactionType),
		Source:          domain.EntrySource(m.Source),
		IsContraEntry:   m.IsContraEntry,
		ContraEntryID:   m.ContraEntryID,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a batch of stored rows.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}
