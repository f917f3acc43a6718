package bookings

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsDecision reports whether s is a status an admin may set
func (s Status) IsDecision() bool {
	return s == StatusAccepted || s == StatusCancelled
}

// CanTransitionTo applies the transition table: only PENDING -> ACCEPTED and PENDING -> CANCELLED.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsDecision()
}

// BlocksDates reports whether a booking in this status makes its dates unavailable
func (s Status) BlocksDates() bool {
	return s == StatusAccepted
}
