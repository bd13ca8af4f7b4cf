package mapping

import (
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	"github.com/vslakit/vsla_ledger_app/internal/models"
)

func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		UserID:      m.UserID,
		GroupID:     m.GroupID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		Balance:     m.Balance,
		LoanBalance: m.LoanBalance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		Balance:     m.Balance,
		LoanBalance: m.LoanBalance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:         m.ProjectID,
		GroupID:           m.GroupID,
		Name:              m.Name,
		LoanMaxMultiplier: m.LoanMaxMultiplier,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
