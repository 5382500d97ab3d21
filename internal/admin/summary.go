package admin

import (
	"log"
	"sort"

	"github.com/gdg-garage/reso-client/internal/models"
)

// SortRegistrations orders records pending first, then newest first.
func SortRegistrations(recs []models.RegistrationRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Approved != recs[j].Approved {
			return !recs[i].Approved
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

// Summary aggregates a list of registrations.
type Summary struct {
	Total        int
	Approved     int
	Pending      int
	ApprovedFees float64
	PendingFees  float64
	ByEvent      map[string]int
}

func Summarize(recs []models.RegistrationRecord) Summary {
	s := Summary{Total: len(recs), ByEvent: map[string]int{}}
	for _, rec := range recs {
		fee, err := rec.Event.Fee.Amount()
		if err != nil {
			log.Printf("Skipping unparsable fee %q for registration %d", rec.Event.Fee, rec.ID)
			fee = 0
		}
		if rec.Approved {
			s.Approved++
			s.ApprovedFees += fee
		} else {
			s.Pending++
			s.PendingFees += fee
		}
		s.ByEvent[rec.Event.Name]++
	}
	return s
}
