// Taseroncum | 2026
// entity.go

package job

import (
	"time"
)

// JobPost carries two independent state axes: the moderation axis
// (ApprovalStatus) and the availability axis (Status). Only
// APPROVED && OPEN && !IsDeleted posts are publicly listed.
type JobPost struct {
	ID               string     `db:"id"`
	CreatedByID      string     `db:"created_by_id"`
	CompanyProfileID string     `db:"company_profile_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Category         string     `db:"category"`
	City             string     `db:"city"`
	BudgetMin        *float64   `db:"budget_min"`
	BudgetMax        *float64   `db:"budget_max"`
	ApprovalStatus   string     `db:"approval_status"`
	Status           string     `db:"status"`
	ApprovedAt       *time.Time `db:"approved_at"`
	ApprovedByID     *string    `db:"approved_by_id"`
	RejectedAt       *time.Time `db:"rejected_at"`
	RejectedByID     *string    `db:"rejected_by_id"`
	RejectionReason  *string    `db:"rejection_reason"`
	PublishedAt      *time.Time `db:"published_at"`
	ViewsCount       int        `db:"views_count"`
	IsDeleted        bool       `db:"is_deleted"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const (
	ApprovalDraft    = "DRAFT"
	ApprovalPending  = "PENDING_APPROVAL"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortBudgetLow  = "budget_low"
	SortBudgetHigh = "budget_high"
)

// Categories is the closed set of construction trades a post may carry.
var Categories = []string{
	"KABA_INSAAT",
	"INCE_INSAAT",
	"ELEKTRIK",
	"TESISAT",
	"BOYA_BADANA",
	"DEKORASYON",
	"IZOLASYON",
	"CELIK_YAPI",
	"PEYZAJ",
	"RESTORASYON",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// PubliclyVisible reports whether anyone may read the post's detail
// page. A CLOSED post stays readable; the public listing additionally
// requires OPEN via its query.
func (j *JobPost) PubliclyVisible() bool {
	return j.ApprovalStatus == ApprovalApproved && !j.IsDeleted
}

func (j *JobPost) Editable() bool {
	return j.ApprovalStatus == ApprovalDraft ||
		j.ApprovalStatus == ApprovalRejected
}

func (j *JobPost) AcceptsBids() bool {
	return j.ApprovalStatus == ApprovalApproved &&
		j.Status == StatusOpen &&
		!j.IsDeleted
}
