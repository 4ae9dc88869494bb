// Package iamtest provides an in-memory AdminPort for tests. It records
// every call and counts creations so tests can assert on idempotence and
// fail-fast ordering without a running IAM service.
package iamtest

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// FakePort is an in-memory model.AdminPort.
type FakePort struct {
	Calls []string

	LoginErr error

	Clients map[string]string // clientId -> remote id
	Scopes  map[string]string // scope name -> remote id
	Mappers map[string]string // scopeID/name -> remote id
	Roles   map[string]model.Role
	Users   map[string]model.User // email -> user
	Groups  map[string]model.Group

	// ConflictRoles simulates a concurrent actor: creation returns a
	// conflict while still inserting the role, so a re-lookup finds it.
	ConflictRoles map[string]bool

	CreateClientErr error
	DefaultScopeErr error

	CreatedClients int
	CreatedRoles   int
	CreatedScopes  int
	CreatedMappers int
	CreatedGroups  int
	CreatedUsers   int

	UserAttrs     map[string]map[string][]string // user id -> attributes
	GroupMembers  map[string][]string            // group id -> user ids
	AssignedRoles map[string][]model.Role        // user id -> roles
	Passwords     map[string]string              // user id -> password
}

// New returns an empty FakePort.
func New() *FakePort {
	return &FakePort{
		Clients:       map[string]string{},
		Scopes:        map[string]string{},
		Mappers:       map[string]string{},
		Roles:         map[string]model.Role{},
		Users:         map[string]model.User{},
		Groups:        map[string]model.Group{},
		ConflictRoles: map[string]bool{},
		UserAttrs:     map[string]map[string][]string{},
		GroupMembers:  map[string][]string{},
		AssignedRoles: map[string][]model.Role{},
		Passwords:     map[string]string{},
	}
}

func (f *FakePort) record(call string) { f.Calls = append(f.Calls, call) }

// Creations is the total number of creation requests across all kinds.
func (f *FakePort) Creations() int {
	return f.CreatedClients + f.CreatedRoles + f.CreatedScopes + f.CreatedMappers + f.CreatedGroups + f.CreatedUsers
}

func (f *FakePort) Login(ctx context.Context) error {
	f.record("Login")
	if f.LoginErr != nil {
		return &model.AuthError{Err: f.LoginErr}
	}
	return nil
}

func (f *FakePort) GetClient(ctx context.Context, realm, clientID string) (*model.RemoteResource, error) {
	f.record("GetClient")
	id, ok := f.Clients[clientID]
	if !ok {
		return nil, nil
	}
	return &model.RemoteResource{Kind: model.KindClient, NaturalKey: clientID, RemoteID: id}, nil
}

func (f *FakePort) CreateClient(ctx context.Context, realm string, spec model.ClientSpec) (*model.RemoteResource, error) {
	f.record("CreateClient")
	if f.CreateClientErr != nil {
		return nil, f.CreateClientErr
	}
	if _, ok := f.Clients[spec.ClientID]; ok {
		return nil, model.ErrConflict
	}
	f.CreatedClients++
	id := fmt.Sprintf("client-uuid-%d", f.CreatedClients)
	f.Clients[spec.ClientID] = id
	return &model.RemoteResource{Kind: model.KindClient, NaturalKey: spec.ClientID, RemoteID: id}, nil
}

func (f *FakePort) GetRealmRole(ctx context.Context, realm, name string) (*model.Role, error) {
	f.record("GetRealmRole")
	r, ok := f.Roles[name]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *FakePort) CreateRealmRole(ctx context.Context, realm string, role model.Role) error {
	f.record("CreateRealmRole")
	if _, ok := f.Roles[role.Name]; ok {
		return model.ErrConflict
	}
	role.ID = "role-uuid-" + role.Name
	f.Roles[role.Name] = role
	if f.ConflictRoles[role.Name] {
		return model.ErrConflict
	}
	f.CreatedRoles++
	return nil
}

func (f *FakePort) DeleteRealmRole(ctx context.Context, realm, name string) error {
	f.record("DeleteRealmRole")
	if _, ok := f.Roles[name]; !ok {
		return model.ErrNotFound
	}
	delete(f.Roles, name)
	return nil
}

func (f *FakePort) GetClientScope(ctx context.Context, realm, name string) (*model.RemoteResource, error) {
	f.record("GetClientScope")
	id, ok := f.Scopes[name]
	if !ok {
		return nil, nil
	}
	return &model.RemoteResource{Kind: model.KindClientScope, NaturalKey: name, RemoteID: id}, nil
}

func (f *FakePort) CreateClientScope(ctx context.Context, realm string, spec model.ScopeSpec) (*model.RemoteResource, error) {
	f.record("CreateClientScope")
	if _, ok := f.Scopes[spec.Name]; ok {
		return nil, model.ErrConflict
	}
	f.CreatedScopes++
	id := fmt.Sprintf("scope-uuid-%d", f.CreatedScopes)
	f.Scopes[spec.Name] = id
	return &model.RemoteResource{Kind: model.KindClientScope, NaturalKey: spec.Name, RemoteID: id}, nil
}

func (f *FakePort) GetProtocolMapper(ctx context.Context, realm, scopeID, name string) (*model.RemoteResource, error) {
	f.record("GetProtocolMapper")
	id, ok := f.Mappers[scopeID+"/"+name]
	if !ok {
		return nil, nil
	}
	return &model.RemoteResource{Kind: model.KindProtocolMapper, NaturalKey: name, RemoteID: id}, nil
}

func (f *FakePort) CreateProtocolMapper(ctx context.Context, realm, scopeID string, spec model.MapperSpec) (*model.RemoteResource, error) {
	f.record("CreateProtocolMapper")
	key := scopeID + "/" + spec.Name
	if _, ok := f.Mappers[key]; ok {
		return nil, model.ErrConflict
	}
	f.CreatedMappers++
	id := fmt.Sprintf("mapper-uuid-%d", f.CreatedMappers)
	f.Mappers[key] = id
	return &model.RemoteResource{Kind: model.KindProtocolMapper, NaturalKey: spec.Name, RemoteID: id}, nil
}

func (f *FakePort) AddDefaultClientScope(ctx context.Context, realm, clientID, scopeID string) error {
	f.record("AddDefaultClientScope")
	return f.DefaultScopeErr
}

func (f *FakePort) GetUserByEmail(ctx context.Context, realm, email string) (*model.User, error) {
	f.record("GetUserByEmail:" + realm)
	u, ok := f.Users[realm+"/"+email]
	if !ok {
		// Users stored without a realm prefix match any realm lookup.
		u, ok = f.Users[email]
		if !ok {
			return nil, nil
		}
	}
	return &u, nil
}

func (f *FakePort) CreateUser(ctx context.Context, realm string, spec model.UserSpec) (*model.User, error) {
	f.record("CreateUser")
	key := realm + "/" + spec.Email
	if _, ok := f.Users[key]; ok {
		return nil, model.ErrConflict
	}
	f.CreatedUsers++
	u := model.User{ID: fmt.Sprintf("user-uuid-%d", f.CreatedUsers), Username: spec.Username, Email: spec.Email}
	f.Users[key] = u
	return &u, nil
}

func (f *FakePort) SetUserPassword(ctx context.Context, realm, userID, password string, temporary bool) error {
	f.record("SetUserPassword")
	f.Passwords[userID] = password
	return nil
}

func (f *FakePort) SetUserAttribute(ctx context.Context, realm, userID, key string, values []string) error {
	f.record("SetUserAttribute")
	if f.UserAttrs[userID] == nil {
		f.UserAttrs[userID] = map[string][]string{}
	}
	f.UserAttrs[userID][key] = values
	return nil
}

func (f *FakePort) GetGroup(ctx context.Context, realm, name string) (*model.Group, error) {
	f.record("GetGroup")
	g, ok := f.Groups[name]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (f *FakePort) CreateGroup(ctx context.Context, realm string, group model.Group) (*model.Group, error) {
	f.record("CreateGroup")
	if _, ok := f.Groups[group.Name]; ok {
		return nil, model.ErrConflict
	}
	f.CreatedGroups++
	group.ID = fmt.Sprintf("group-uuid-%d", f.CreatedGroups)
	f.Groups[group.Name] = group
	return &group, nil
}

func (f *FakePort) AddUserToGroup(ctx context.Context, realm, userID, groupID string) error {
	f.record("AddUserToGroup")
	f.GroupMembers[groupID] = append(f.GroupMembers[groupID], userID)
	return nil
}

func (f *FakePort) GetUserRealmRoles(ctx context.Context, realm, userID string) ([]model.Role, error) {
	f.record("GetUserRealmRoles")
	return f.AssignedRoles[userID], nil
}

func (f *FakePort) AddUserRealmRoles(ctx context.Context, realm, userID string, roles []model.Role) error {
	f.record("AddUserRealmRoles")
	f.AssignedRoles[userID] = append(f.AssignedRoles[userID], roles...)
	return nil
}

func (f *FakePort) RemoveUserRealmRoles(ctx context.Context, realm, userID string, roles []model.Role) error {
	f.record("RemoveUserRealmRoles")
	keep := f.AssignedRoles[userID][:0]
	for _, have := range f.AssignedRoles[userID] {
		drop := false
		for _, r := range roles {
			if r.Name == have.Name {
				drop = true
				break
			}
		}
		if !drop {
			keep = append(keep, have)
		}
	}
	f.AssignedRoles[userID] = keep
	return nil
}

var _ model.AdminPort = (*FakePort)(nil)
