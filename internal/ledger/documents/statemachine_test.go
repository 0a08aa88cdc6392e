package documents

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkbill/inkbill/internal/shared"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name    string
		docType DocumentType
		from    DocumentStatus
		to      DocumentStatus
		wantErr bool
	}{
		{"invoice draft to sent", TypeInvoice, StatusDraft, StatusSent, false},
		{"invoice sent to paid", TypeInvoice, StatusSent, StatusPaid, false},
		{"invoice sent to partially paid", TypeInvoice, StatusSent, StatusPartiallyPaid, false},
		{"invoice sent to void", TypeInvoice, StatusSent, StatusVoid, false},
		{"same status is a no-op", TypeInvoice, StatusSent, StatusSent, false},
		{"paid is terminal", TypeInvoice, StatusPaid, StatusSent, true},
		{"paid may still void", TypeInvoice, StatusPaid, StatusVoid, false},
		{"invoice cannot be approved", TypeInvoice, StatusSent, StatusApproved, true},
		{"invoice cannot be rejected", TypeInvoice, StatusSent, StatusRejected, true},
		{"invoice cannot be invoiced", TypeInvoice, StatusSent, StatusInvoiced, true},
		{"quotation sent to approved", TypeQuotation, StatusSent, StatusApproved, false},
		{"quotation sent to rejected", TypeQuotation, StatusSent, StatusRejected, false},
		{"quotation approved to invoiced", TypeQuotation, StatusApproved, StatusInvoiced, false},
		{"quotation skips approval", TypeQuotation, StatusSent, StatusInvoiced, true},
		{"quotation draft to invoiced", TypeQuotation, StatusDraft, StatusInvoiced, true},
		{"quotation rejected to void", TypeQuotation, StatusRejected, StatusVoid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.docType, tc.from, tc.to)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, shared.ErrInvalidTransition))
				var invalid *shared.InvalidTransitionError
				require.ErrorAs(t, err, &invalid)
				require.Equal(t, string(tc.from), invalid.From)
				require.Equal(t, string(tc.to), invalid.To)
				return
			}
			require.NoError(t, err)
		})
	}
}
