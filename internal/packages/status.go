package packages

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

// IsValid checks if the package status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanBeLinked checks if new quotes may link a package with this status
func (s Status) CanBeLinked() bool {
	return s == StatusActive
}

// IsMutable checks if a package with this status accepts edits.
// Deleted packages are retained for quotes that reference them but are frozen.
func (s Status) IsMutable() bool {
	return s != StatusDeleted
}
