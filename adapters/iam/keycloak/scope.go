package keycloak

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// GetClientScope looks up a client scope by name. The admin API has no
// by-name endpoint for scopes, so this lists and filters. Absence is
// (nil, nil).
func (a *Admin) GetClientScope(ctx context.Context, realm, name string) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	scopes, err := a.gc.GetClientScopes(ctx, token, realm)
	if err != nil {
		return nil, mapError(err)
	}
	var matches []*gocloak.ClientScope
	for _, s := range scopes {
		if s.Name != nil && *s.Name == name {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &model.RemoteResource{Kind: model.KindClientScope, NaturalKey: name, RemoteID: gocloak.PString(matches[0].ID)}, nil
	default:
		return nil, &model.LookupAmbiguityError{Kind: model.KindClientScope, NaturalKey: name, Matches: len(matches)}
	}
}

func (a *Admin) CreateClientScope(ctx context.Context, realm string, spec model.ScopeSpec) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	id, err := a.gc.CreateClientScope(ctx, token, realm, gocloak.ClientScope{
		Name:        gocloak.StringP(spec.Name),
		Description: gocloak.StringP(spec.Description),
		Protocol:    gocloak.StringP("openid-connect"),
		ClientScopeAttributes: &gocloak.ClientScopeAttributes{
			IncludeInTokenScope:    gocloak.StringP(strconv.FormatBool(spec.IncludeInTokenScope)),
			DisplayOnConsentScreen: gocloak.StringP(strconv.FormatBool(spec.DisplayOnConsentScreen)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create client scope %s: %w", spec.Name, mapError(err))
	}
	return &model.RemoteResource{Kind: model.KindClientScope, NaturalKey: spec.Name, RemoteID: id}, nil
}

// GetProtocolMapper looks up a protocol mapper by name within a client
// scope. Absence is (nil, nil).
func (a *Admin) GetProtocolMapper(ctx context.Context, realm, scopeID, name string) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	mappers, err := a.gc.GetClientScopeProtocolMappers(ctx, token, realm, scopeID)
	if err != nil {
		return nil, mapError(err)
	}
	for _, m := range mappers {
		if m.Name != nil && *m.Name == name {
			return &model.RemoteResource{Kind: model.KindProtocolMapper, NaturalKey: name, RemoteID: gocloak.PString(m.ID)}, nil
		}
	}
	return nil, nil
}

func (a *Admin) CreateProtocolMapper(ctx context.Context, realm, scopeID string, spec model.MapperSpec) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	cfg := gocloak.ProtocolMappersConfig{
		ClaimName:          gocloak.StringP(spec.ClaimName),
		IDTokenClaim:       gocloak.StringP("true"),
		AccessTokenClaim:   gocloak.StringP("true"),
		UserinfoTokenClaim: gocloak.StringP("true"),
	}
	switch spec.Type {
	case "oidc-group-membership-mapper":
		cfg.FullPath = gocloak.StringP(strconv.FormatBool(spec.FullPath))
	default:
		cfg.UserAttribute = gocloak.StringP(spec.UserAttribute)
		cfg.JSONTypeLabel = gocloak.StringP("String")
		cfg.Multivalued = gocloak.StringP("false")
		cfg.AggregateAttrs = gocloak.StringP("false")
	}
	id, err := a.gc.CreateClientScopeProtocolMapper(ctx, token, realm, scopeID, gocloak.ProtocolMappers{
		Name:                  gocloak.StringP(spec.Name),
		Protocol:              gocloak.StringP("openid-connect"),
		ProtocolMapper:        gocloak.StringP(spec.Type),
		ProtocolMappersConfig: &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("create protocol mapper %s: %w", spec.Name, mapError(err))
	}
	return &model.RemoteResource{Kind: model.KindProtocolMapper, NaturalKey: spec.Name, RemoteID: id}, nil
}
