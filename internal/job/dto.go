// Taseroncum | 2026
// dto.go

package job

import (
	"time"
)

type CreateJobRequest struct {
	Title       string   `json:"title"       validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,min=30,max=5000"`
	Category    string   `json:"category"    validate:"required,oneof=KABA_INSAAT INCE_INSAAT ELEKTRIK TESISAT BOYA_BADANA DEKORASYON IZOLASYON CELIK_YAPI PEYZAJ RESTORASYON"`
	City        string   `json:"city"        validate:"required,min=2,max=80"`
	BudgetMin   *float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax   *float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty"       validate:"omitempty,min=5,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=30,max=5000"`
	Category    *string  `json:"category,omitempty"    validate:"omitempty,oneof=KABA_INSAAT INCE_INSAAT ELEKTRIK TESISAT BOYA_BADANA DEKORASYON IZOLASYON CELIK_YAPI PEYZAJ RESTORASYON"`
	City        *string  `json:"city,omitempty"        validate:"omitempty,min=2,max=80"`
	BudgetMin   *float64 `json:"budget_min,omitempty"  validate:"omitempty,gte=0"`
	BudgetMax   *float64 `json:"budget_max,omitempty"  validate:"omitempty,gte=0"`
}

type RejectJobRequest struct {
	Reason string `json:"reason" validate:"required,min=10,max=1000"`
}

type UnpublishJobRequest struct {
	Reason string `json:"reason" validate:"omitempty,min=10,max=1000"`
}

type ListJobsParams struct {
	Page      int      `json:"page"`
	PageSize  int      `json:"page_size"`
	Search    string   `json:"search"`
	Category  string   `json:"category"`
	City      string   `json:"city"`
	BudgetMin *float64 `json:"budget_min"`
	BudgetMax *float64 `json:"budget_max"`
	Sort      string   `json:"sort"`
}

func (p *ListJobsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	switch p.Sort {
	case SortNewest, SortOldest, SortBudgetLow, SortBudgetHigh:
	default:
		p.Sort = SortNewest
	}
}

func (p *ListJobsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ListMineParams struct {
	Page           int    `json:"page"`
	PageSize       int    `json:"page_size"`
	ApprovalStatus string `json:"approval_status"`
}

func (p *ListMineParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListMineParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type JobResponse struct {
	ID               string     `json:"id"`
	CreatedByID      string     `json:"created_by_id"`
	CompanyProfileID string     `json:"company_profile_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	City             string     `json:"city"`
	BudgetMin        *float64   `json:"budget_min,omitempty"`
	BudgetMax        *float64   `json:"budget_max,omitempty"`
	ApprovalStatus   string     `json:"approval_status"`
	Status           string     `json:"status"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ViewsCount       int        `json:"views_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToJobResponse(j *JobPost) JobResponse {
	return JobResponse{
		ID:               j.ID,
		CreatedByID:      j.CreatedByID,
		CompanyProfileID: j.CompanyProfileID,
		Title:            j.Title,
		Description:      j.Description,
		Category:         j.Category,
		City:             j.City,
		BudgetMin:        j.BudgetMin,
		BudgetMax:        j.BudgetMax,
		ApprovalStatus:   j.ApprovalStatus,
		Status:           j.Status,
		RejectionReason:  j.RejectionReason,
		PublishedAt:      j.PublishedAt,
		ViewsCount:       j.ViewsCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func ToJobResponseList(jobs []JobPost) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	return responses
}
