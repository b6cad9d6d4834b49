package storage

// Filter fields are optional; nil means unset. Set fields are ANDed.

type CustomerFilter struct {
	Type *string
}

type ComplaintFilter struct {
	CustomerID *int64
}

type EmployeeFilter struct {
	DepartmentID *int64
}

type TeamFilter struct {
	DepartmentID *int64
}

type TaskFilter struct {
	AssignedTo *int64
	TeamID     *int64
	ProjectID  *int64
}

type ProjectFilter struct {
	TeamID *int64
}

type MeetingFilter struct {
	TeamID    *int64
	ProjectID *int64
}

type FinancialRecordFilter struct {
	Type *string
}

type BudgetFilter struct {
	DepartmentID *int64
	ProjectID    *int64
}

// MatchInt reports whether an optional filter value accepts v.
func MatchInt(want, v *int64) bool {
	if want == nil {
		return true
	}
	return v != nil && *v == *want
}

func MatchString(want, v *string) bool {
	if want == nil {
		return true
	}
	return v != nil && *v == *want
}
