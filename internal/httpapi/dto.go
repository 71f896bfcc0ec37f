package httpapi

import (
	"errors"

	"github.com/vemurilakshmikanth/bill-splitter/internal/extraction"
	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/settlement"
)

type createSessionRequest struct {
	Roster []string `json:"roster,omitempty"`
}

type assignRequest struct {
	Participants []string `json:"participants"`
}

type visitorRequest struct {
	Name string `json:"name"`
}

type payerRequest struct {
	Payer string `json:"payer"`
}

type itemResponse struct {
	Number       int      `json:"number"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Participants []string `json:"participants"`
	Assigned     bool     `json:"assigned"`
}

type billResponse struct {
	Number    int            `json:"number"`
	StoreName string         `json:"store_name"`
	Date      string         `json:"date,omitempty"`
	Total     float64        `json:"total"`
	Currency  string         `json:"currency"`
	Payer     string         `json:"payer,omitempty"`
	Filename  string         `json:"filename,omitempty"`
	Items     []itemResponse `json:"items"`
}

type progressResponse struct {
	AssignedItems int `json:"assigned_items"`
	TotalItems    int `json:"total_items"`
	UnpaidBills   int `json:"unpaid_bills"`
}

type sessionResponse struct {
	ID       string             `json:"id"`
	State    models.WizardState `json:"state"`
	Roster   []string           `json:"roster"`
	Bills    []billResponse     `json:"bills"`
	Progress progressResponse   `json:"progress"`
}

type uploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
	Raw      string `json:"raw,omitempty"`
}

type uploadResponse struct {
	Session  sessionResponse `json:"session"`
	Added    int             `json:"added"`
	Failures []uploadFailure `json:"failures,omitempty"`
}

type debtDetailResponse struct {
	BillNumber int     `json:"bill_number"`
	BillName   string  `json:"bill_name"`
	ItemNumber int     `json:"item_number"`
	ItemName   string  `json:"item_name"`
	Amount     float64 `json:"amount"`
	Creditor   string  `json:"creditor"`
}

type entryResponse struct {
	Owed    map[string]float64   `json:"owed"`
	Net     float64              `json:"net"`
	Details []debtDetailResponse `json:"details"`
}

type settlementResponse struct {
	Ledger   map[string]entryResponse `json:"ledger"`
	Progress progressResponse         `json:"progress"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(s *models.Session) sessionResponse {
	assigned, total := settlement.Progress(s.Bills)
	resp := sessionResponse{
		ID:     s.ID,
		State:  s.State,
		Roster: s.Roster,
		Bills:  make([]billResponse, len(s.Bills)),
		Progress: progressResponse{
			AssignedItems: assigned,
			TotalItems:    total,
			UnpaidBills:   settlement.UnpaidBills(s.Bills),
		},
	}
	for i, bill := range s.Bills {
		items := make([]itemResponse, len(bill.Items))
		for j, item := range bill.Items {
			items[j] = itemResponse{
				Number:       j + 1,
				Name:         item.Name,
				Price:        item.Price,
				Participants: item.Participants,
				Assigned:     item.Assigned(),
			}
		}
		resp.Bills[i] = billResponse{
			Number:    i + 1,
			StoreName: bill.StoreName,
			Date:      bill.Date,
			Total:     bill.Total,
			Currency:  bill.Currency,
			Payer:     bill.Payer,
			Filename:  bill.Filename,
			Items:     items,
		}
	}
	return resp
}

func toSettlementResponse(ledger models.Settlement, s *models.Session) settlementResponse {
	assigned, total := settlement.Progress(s.Bills)
	resp := settlementResponse{
		Ledger: make(map[string]entryResponse, len(ledger)),
		Progress: progressResponse{
			AssignedItems: assigned,
			TotalItems:    total,
			UnpaidBills:   settlement.UnpaidBills(s.Bills),
		},
	}
	for person, entry := range ledger {
		details := make([]debtDetailResponse, len(entry.Details))
		for i, d := range entry.Details {
			details[i] = debtDetailResponse{
				BillNumber: d.BillNumber,
				BillName:   d.BillName,
				ItemNumber: d.ItemNumber,
				ItemName:   d.ItemName,
				Amount:     d.Amount,
				Creditor:   d.Creditor,
			}
		}
		resp.Ledger[person] = entryResponse{
			Owed:    entry.Owed,
			Net:     entry.Net,
			Details: details,
		}
	}
	return resp
}

func toUploadFailures(failures []extraction.Failure) []uploadFailure {
	out := make([]uploadFailure, len(failures))
	for i, f := range failures {
		out[i] = uploadFailure{Filename: f.Filename, Error: f.Err.Error()}
		var extErr *extraction.ExtractionError
		if errors.As(f.Err, &extErr) {
			out[i].Raw = extErr.Raw
		}
	}
	return out
}
