package domain

// Status represents the lifecycle flag stored on admin managed records.
type Status int

const (
	// StatusArchived marks records kept for history only
	StatusArchived Status = -2
	// StatusReview marks records waiting for approval
	StatusReview Status = -1
	// StatusDisabled hides a record without deleting it
	StatusDisabled Status = 0
	// StatusEnabled marks active records
	StatusEnabled Status = 1
)

// Active reports whether the record is visible to consumers.
func (s Status) Active() bool {
	return s == StatusEnabled
}
