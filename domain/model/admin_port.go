package model

import "context"

// ClientSpec is the creation payload for a Client.
type ClientSpec struct {
	ClientID            string
	Name                string
	Description         string
	RedirectURIs        []string
	WebOrigins          []string
	AccessTokenLifespan string
}

// ScopeSpec is the creation payload for a ClientScope.
type ScopeSpec struct {
	Name                   string
	Description            string
	IncludeInTokenScope    bool
	DisplayOnConsentScreen bool
}

// MapperSpec is the creation payload for a ProtocolMapper attached to a
// client scope. Type is the mapper implementation id, e.g.
// oidc-usermodel-attribute-mapper or oidc-group-membership-mapper.
type MapperSpec struct {
	Name          string
	Type          string
	UserAttribute string
	ClaimName     string
	FullPath      bool
}

// UserSpec is the creation payload for a User (bootstrap only; the
// provisioning workflow itself never creates users).
type UserSpec struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// AdminPort is the domain port for the realm-scoped admin API of the IAM
// service. Login must be called first; implementations attach the obtained
// bearer credential to every subsequent call for the session's lifetime.
//
// Lookup methods return (nil, nil) when the resource is absent. Create
// methods return ErrConflict (possibly wrapped) when the resource already
// exists and *RemoteError for any other non-2xx response.
type AdminPort interface {
	Login(ctx context.Context) error

	GetClient(ctx context.Context, realm, clientID string) (*RemoteResource, error)
	CreateClient(ctx context.Context, realm string, spec ClientSpec) (*RemoteResource, error)

	GetRealmRole(ctx context.Context, realm, name string) (*Role, error)
	CreateRealmRole(ctx context.Context, realm string, role Role) error
	DeleteRealmRole(ctx context.Context, realm, name string) error

	GetClientScope(ctx context.Context, realm, name string) (*RemoteResource, error)
	CreateClientScope(ctx context.Context, realm string, spec ScopeSpec) (*RemoteResource, error)

	GetProtocolMapper(ctx context.Context, realm, scopeID, name string) (*RemoteResource, error)
	CreateProtocolMapper(ctx context.Context, realm, scopeID string, spec MapperSpec) (*RemoteResource, error)

	// AddDefaultClientScope makes the scope a default scope of the client.
	// A 404 from the service means the scope is already default or not
	// applicable; implementations treat it as success because the desired
	// end state already holds.
	AddDefaultClientScope(ctx context.Context, realm, clientID, scopeID string) error

	GetUserByEmail(ctx context.Context, realm, email string) (*User, error)
	CreateUser(ctx context.Context, realm string, spec UserSpec) (*User, error)
	SetUserPassword(ctx context.Context, realm, userID, password string, temporary bool) error
	SetUserAttribute(ctx context.Context, realm, userID, key string, values []string) error

	GetGroup(ctx context.Context, realm, name string) (*Group, error)
	CreateGroup(ctx context.Context, realm string, group Group) (*Group, error)
	AddUserToGroup(ctx context.Context, realm, userID, groupID string) error

	GetUserRealmRoles(ctx context.Context, realm, userID string) ([]Role, error)
	AddUserRealmRoles(ctx context.Context, realm, userID string, roles []Role) error
	RemoveUserRealmRoles(ctx context.Context, realm, userID string, roles []Role) error
}
