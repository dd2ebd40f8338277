package domain

// RequestType is the kind of request an employee submits.
type RequestType string

const (
	RequestTypeLeave       RequestType = "Leave Application"
	RequestTypeFund        RequestType = "Fund Request"
	RequestTypePromotion   RequestType = "Promotion Request"
	RequestTypeSponsorship RequestType = "Sponsorship Request"
	RequestTypeOther       RequestType = "Other"
)

func (t RequestType) String() string { return string(t) }

func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeLeave, RequestTypeFund, RequestTypePromotion,
		RequestTypeSponsorship, RequestTypeOther:
		return true
	}
	return false
}

// Category is the derived classification of a request.
type Category string

const (
	CategoryLeave     Category = "Leave"
	CategoryFunds     Category = "Funds"
	CategoryPromotion Category = "Promotion"
	CategoryOther     Category = "Other"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryLeave, CategoryFunds, CategoryPromotion, CategoryOther:
		return true
	}
	return false
}

// Priority is the derived urgency of a request.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the review state of a request. Pending is the initial state;
// Accepted and Rejected are terminal.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// SuggestedAction is the recommended handling of a request.
type SuggestedAction string

const (
	SuggestedActionApprove  SuggestedAction = "Approve"
	SuggestedActionReview   SuggestedAction = "Review"
	SuggestedActionEscalate SuggestedAction = "Escalate"
)

func (a SuggestedAction) String() string { return string(a) }

func (a SuggestedAction) IsValid() bool {
	switch a {
	case SuggestedActionApprove, SuggestedActionReview, SuggestedActionEscalate:
		return true
	}
	return false
}

// RiskLevel is the assessed risk of acting on (or delaying) a request.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

func (r RiskLevel) String() string { return string(r) }

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

// NotificationType is the kind of notification sent to an employee.
type NotificationType string

const (
	NotificationRecognition  NotificationType = "recognition"
	NotificationNotice       NotificationType = "notice"
	NotificationSalaryReview NotificationType = "salary_review"
)

func (n NotificationType) String() string { return string(n) }

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationRecognition, NotificationNotice, NotificationSalaryReview:
		return true
	}
	return false
}

// Role is the authorization level of a profile.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager:
		return true
	}
	return false
}

func (r Role) IsManager() bool {
	return r == RoleManager
}
