package model

// Kind identifies a remote resource type managed by the provisioning
// workflow.
type Kind string

const (
	KindClient         Kind = "Client"
	KindRealmRole      Kind = "RealmRole"
	KindClientScope    Kind = "ClientScope"
	KindProtocolMapper Kind = "ProtocolMapper"
	KindGroup          Kind = "Group"
	KindUser           Kind = "User"
)

// ReconcileStatus is the terminal state of a single resource reconciliation.
// Within one run a resource moves Unknown -> Checking -> {Found | Creating}
// -> {Created | ConflictExists | Failed}; only terminal states are recorded.
// Found, Created, and ConflictExists are all success outcomes.
type ReconcileStatus string

const (
	StatusFound          ReconcileStatus = "Found"
	StatusCreated        ReconcileStatus = "Created"
	StatusConflictExists ReconcileStatus = "ConflictExists"
	StatusFailed         ReconcileStatus = "Failed"
)

// Success reports whether the status represents a terminal-success state.
func (s ReconcileStatus) Success() bool {
	switch s {
	case StatusFound, StatusCreated, StatusConflictExists:
		return true
	}
	return false
}

// RemoteResource is a resource held by the IAM service. NaturalKey is the
// human-meaningful lookup identifier (client id, role name, scope name,
// mapper name, group name, user email); RemoteID is the opaque identifier
// the service assigned once the resource exists.
type RemoteResource struct {
	Kind       Kind
	NaturalKey string
	RemoteID   string
}

// Role is a realm role.
type Role struct {
	ID          string
	Name        string
	Description string
}

// User is a realm user. Attributes carries the multi-valued user attribute
// map the IAM service exposes to protocol mappers.
type User struct {
	ID         string
	Username   string
	Email      string
	Attributes map[string][]string
}

// Group is a realm group representing a tenant/organization.
type Group struct {
	ID         string
	Name       string
	Attributes map[string][]string
}
