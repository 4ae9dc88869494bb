package keycloak

import (
	"context"
	"fmt"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// GetGroup looks up a top-level group by exact name. The admin API search
// is a substring match, so results are filtered. Absence is (nil, nil).
func (a *Admin) GetGroup(ctx context.Context, realm, name string) (*model.Group, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := a.gc.GetGroups(ctx, token, realm, gocloak.GetGroupsParams{Search: gocloak.StringP(name)})
	if err != nil {
		return nil, mapError(err)
	}
	var matches []*gocloak.Group
	for _, g := range groups {
		if g.Name != nil && *g.Name == name {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		out := &model.Group{ID: gocloak.PString(matches[0].ID), Name: name}
		if matches[0].Attributes != nil {
			out.Attributes = *matches[0].Attributes
		}
		return out, nil
	default:
		return nil, &model.LookupAmbiguityError{Kind: model.KindGroup, NaturalKey: name, Matches: len(matches)}
	}
}

func (a *Admin) CreateGroup(ctx context.Context, realm string, group model.Group) (*model.Group, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	rep := gocloak.Group{Name: gocloak.StringP(group.Name)}
	if group.Attributes != nil {
		rep.Attributes = &group.Attributes
	}
	id, err := a.gc.CreateGroup(ctx, token, realm, rep)
	if err != nil {
		return nil, fmt.Errorf("create group %s: %w", group.Name, mapError(err))
	}
	return &model.Group{ID: id, Name: group.Name, Attributes: group.Attributes}, nil
}

func (a *Admin) AddUserToGroup(ctx context.Context, realm, userID, groupID string) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	if err := a.gc.AddUserToGroup(ctx, token, realm, userID, groupID); err != nil {
		return fmt.Errorf("add user to group: %w", mapError(err))
	}
	return nil
}
