package mapping

import (
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/models"
)

// ToModelLookupValue converts a domain LookupValue to a model LookupValue
func ToModelLookupValue(d domain.LookupValue) models.LookupValue {
	return models.LookupValue{
		Kind:        string(d.Kind),
		Code:        d.Code,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLookupValue converts a model LookupValue to a domain LookupValue
func ToDomainLookupValue(m models.LookupValue) domain.LookupValue {
	return domain.LookupValue{
		Kind:        domain.LookupKind(m.Kind),
		Code:        m.Code,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
