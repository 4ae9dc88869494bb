package keycloak

import (
	"context"
	"fmt"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// GetClient looks up a client by its clientId. Absence is (nil, nil).
func (a *Admin) GetClient(ctx context.Context, realm, clientID string) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := a.gc.GetClients(ctx, token, realm, gocloak.GetClientsParams{ClientID: gocloak.StringP(clientID)})
	if err != nil {
		return nil, mapError(err)
	}
	var matches []*gocloak.Client
	for _, c := range clients {
		if c.ClientID != nil && *c.ClientID == clientID {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &model.RemoteResource{Kind: model.KindClient, NaturalKey: clientID, RemoteID: gocloak.PString(matches[0].ID)}, nil
	default:
		return nil, &model.LookupAmbiguityError{Kind: model.KindClient, NaturalKey: clientID, Matches: len(matches)}
	}
}

// CreateClient registers a public OIDC client with standard flow and direct
// access grants enabled.
func (a *Admin) CreateClient(ctx context.Context, realm string, spec model.ClientSpec) (*model.RemoteResource, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	attrs := map[string]string{}
	if spec.AccessTokenLifespan != "" {
		attrs["access.token.lifespan"] = spec.AccessTokenLifespan
	}
	id, err := a.gc.CreateClient(ctx, token, realm, gocloak.Client{
		ClientID:                  gocloak.StringP(spec.ClientID),
		Name:                      gocloak.StringP(spec.Name),
		Description:               gocloak.StringP(spec.Description),
		Enabled:                   gocloak.BoolP(true),
		Protocol:                  gocloak.StringP("openid-connect"),
		PublicClient:              gocloak.BoolP(true),
		StandardFlowEnabled:       gocloak.BoolP(true),
		DirectAccessGrantsEnabled: gocloak.BoolP(true),
		ServiceAccountsEnabled:    gocloak.BoolP(false),
		RedirectURIs:              &spec.RedirectURIs,
		WebOrigins:                &spec.WebOrigins,
		Attributes:                &attrs,
	})
	if err != nil {
		return nil, fmt.Errorf("create client %s: %w", spec.ClientID, mapError(err))
	}
	return &model.RemoteResource{Kind: model.KindClient, NaturalKey: spec.ClientID, RemoteID: id}, nil
}

// AddDefaultClientScope makes the scope a default scope of the client. A
// 404 means the desired end state already holds and is reported as success.
func (a *Admin) AddDefaultClientScope(ctx context.Context, realm, clientID, scopeID string) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	if err := a.gc.AddDefaultScopeToClient(ctx, token, realm, clientID, scopeID); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("assign default scope: %w", mapError(err))
	}
	return nil
}
