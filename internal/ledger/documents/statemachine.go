package documents

import "github.com/inkbill/inkbill/internal/shared"

// ValidateTransition checks a requested status change against the lifecycle
// rules. Requesting the current status is an accepted no-op. Beyond the rules
// below, transitions are unrestricted; richer workflow policy belongs to the
// caller.
func ValidateTransition(docType DocumentType, from, to DocumentStatus) error {
	if from == to {
		return nil
	}

	// Paid is terminal except for the void escape hatch.
	if from == StatusPaid && to != StatusVoid {
		return &shared.InvalidTransitionError{DocType: string(docType), From: string(from), To: string(to)}
	}

	if docType == TypeQuotation {
		// A quotation becomes an invoice only after approval.
		if to == StatusInvoiced && from != StatusApproved {
			return &shared.InvalidTransitionError{DocType: string(docType), From: string(from), To: string(to)}
		}
		return nil
	}

	// Invoices never enter the quotation-only workflow states.
	if quotationOnly(to) {
		return &shared.InvalidTransitionError{DocType: string(docType), From: string(from), To: string(to)}
	}

	return nil
}
