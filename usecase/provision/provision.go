package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/internal/naming"
)

// Identifier keys threaded between pipeline steps.
const (
	idSession = "session"
	idClient  = "client"
	idRoles   = "roles"
	idScope   = "scope"
	idUser    = "user"
	idGroup   = "group"
	idTenant  = "tenant"
)

// ProvisionInput configures one orchestration run.
type ProvisionInput struct {
	Config *iamopscfg.Config
	Style  Style
	// TenantID reuses an existing tenant identifier instead of minting one.
	// A re-run that should converge on prior state passes the identifier
	// from the first run's summary.
	TenantID string
	// OnResult observes step outcomes for progress reporting.
	OnResult func(StepResult)
}

// ProvisionOutput carries the run outcome.
type ProvisionOutput struct {
	TenantID string
	Result   *Result
	// Run is the persisted run record, nil when no run store is configured.
	Run *model.Run
}

// Provision executes the full provisioning pipeline: authenticate, ensure
// client, realm roles, client scope and protocol mappers, make the scope a
// client default, then locate the pre-existing user and attach the tenant
// identifier (attribute and/or group) and the realm roles. Every step is
// individually idempotent, so a failed run is recovered by re-running.
func (u *UseCase) Provision(ctx context.Context, in *ProvisionInput) (*ProvisionOutput, error) {
	if in == nil || in.Config == nil {
		return nil, fmt.Errorf("provision input missing configuration")
	}
	if err := in.Config.Validate(); err != nil {
		return nil, err
	}
	style := in.Style
	if style == "" {
		style = StyleBoth
	}
	if !style.Valid() {
		return nil, fmt.Errorf("unknown provisioning style %q", in.Style)
	}

	tenantID := in.TenantID
	if tenantID == "" {
		tenantID = naming.NewTenantID()
	} else if !naming.IsTenantID(tenantID) {
		return nil, fmt.Errorf("tenant identifier %q is not a valid UUID", tenantID)
	}

	pipeline := u.buildPipeline(in.Config, style)
	pipeline.OnResult = in.OnResult

	startedAt := time.Now().UTC()
	result, execErr := pipeline.Execute(ctx, Identifiers{idTenant: tenantID})

	out := &ProvisionOutput{TenantID: tenantID, Result: result}
	if u.Runs != nil && result != nil {
		run := runRecord(in.Config, tenantID, startedAt, result)
		if err := u.Runs.Create(ctx, run); err == nil {
			out.Run = run
		}
		// A run-history write failure never masks the provisioning outcome.
	}
	if execErr != nil {
		return out, execErr
	}
	return out, nil
}

func (u *UseCase) buildPipeline(cfg *iamopscfg.Config, style Style) *Pipeline {
	realm := cfg.Realm
	steps := []Step{
		{
			Name:     "authenticate",
			Produces: []string{idSession},
			Run: func(ctx context.Context, _ Identifiers) (*StepResult, error) {
				if err := u.Port.Login(ctx); err != nil {
					return nil, err
				}
				return &StepResult{
					Status:   model.StatusCreated,
					Detail:   "admin session established",
					Produced: Identifiers{idSession: "bearer"},
				}, nil
			},
		},
		{
			Name:     "ensure-client",
			Consumes: []string{idSession},
			Produces: []string{idClient},
			Run: func(ctx context.Context, _ Identifiers) (*StepResult, error) {
				res, status, err := Ensure(ctx, EnsureSpec{
					Kind:       model.KindClient,
					NaturalKey: cfg.Client.ClientID,
					Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
						return u.Port.GetClient(ctx, realm, cfg.Client.ClientID)
					},
					Create: func(ctx context.Context) (*model.RemoteResource, error) {
						return u.Port.CreateClient(ctx, realm, model.ClientSpec{
							ClientID:            cfg.Client.ClientID,
							Name:                cfg.Client.Name,
							Description:         cfg.Client.Description,
							RedirectURIs:        cfg.Client.RedirectURIs,
							WebOrigins:          cfg.Client.WebOrigins,
							AccessTokenLifespan: cfg.Client.AccessTokenLifespan,
						})
					},
				})
				if err != nil {
					return nil, err
				}
				return &StepResult{
					Status:   status,
					Resource: res,
					Produced: Identifiers{idClient: res.RemoteID},
				}, nil
			},
		},
		{
			Name:     "ensure-realm-roles",
			Consumes: []string{idSession},
			Produces: []string{idRoles},
			Run: func(ctx context.Context, _ Identifiers) (*StepResult, error) {
				return u.ensureRealmRoles(ctx, cfg)
			},
		},
		{
			Name:     "ensure-client-scope",
			Consumes: []string{idSession},
			Produces: []string{idScope},
			Run: func(ctx context.Context, _ Identifiers) (*StepResult, error) {
				res, status, err := Ensure(ctx, EnsureSpec{
					Kind:       model.KindClientScope,
					NaturalKey: cfg.Scope.Name,
					Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
						return u.Port.GetClientScope(ctx, realm, cfg.Scope.Name)
					},
					Create: func(ctx context.Context) (*model.RemoteResource, error) {
						return u.Port.CreateClientScope(ctx, realm, model.ScopeSpec{
							Name:                cfg.Scope.Name,
							Description:         cfg.Scope.Description,
							IncludeInTokenScope: true,
						})
					},
				})
				if err != nil {
					return nil, err
				}
				return &StepResult{
					Status:   status,
					Resource: res,
					Produced: Identifiers{idScope: res.RemoteID},
				}, nil
			},
		},
		{
			Name:     "ensure-protocol-mappers",
			Consumes: []string{idSession, idScope},
			Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
				return u.ensureProtocolMappers(ctx, cfg, style, ids[idScope])
			},
		},
		{
			Name:     "assign-default-scope",
			Consumes: []string{idSession, idClient, idScope},
			Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
				if err := u.Port.AddDefaultClientScope(ctx, realm, ids[idClient], ids[idScope]); err != nil {
					return nil, err
				}
				return &StepResult{
					Status: model.StatusCreated,
					Detail: fmt.Sprintf("scope %s assigned to client as default", cfg.Scope.Name),
				}, nil
			},
		},
		{
			Name:     "find-user",
			Consumes: []string{idSession},
			Produces: []string{idUser},
			Run: func(ctx context.Context, _ Identifiers) (*StepResult, error) {
				email := cfg.UserEmailOrDefault()
				user, err := u.Port.GetUserByEmail(ctx, realm, email)
				if err != nil {
					return nil, err
				}
				if user == nil {
					return nil, &model.MissingPrerequisiteError{Kind: model.KindUser, NaturalKey: email}
				}
				return &StepResult{
					Status:   model.StatusFound,
					Resource: &model.RemoteResource{Kind: model.KindUser, NaturalKey: email, RemoteID: user.ID},
					Produced: Identifiers{idUser: user.ID},
				}, nil
			},
		},
	}

	if style.attribute() {
		steps = append(steps, Step{
			Name:     "set-tenant-attribute",
			Consumes: []string{idSession, idUser, idTenant},
			Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
				if err := u.Port.SetUserAttribute(ctx, realm, ids[idUser], cfg.Scope.ClaimName, []string{ids[idTenant]}); err != nil {
					return nil, err
				}
				return &StepResult{
					Status: model.StatusCreated,
					Detail: fmt.Sprintf("%s=%s set on user", cfg.Scope.ClaimName, ids[idTenant]),
				}, nil
			},
		})
	}
	if style.group() {
		steps = append(steps,
			Step{
				Name:     "ensure-tenant-group",
				Consumes: []string{idSession, idTenant},
				Produces: []string{idGroup},
				Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
					res, status, err := Ensure(ctx, EnsureSpec{
						Kind:       model.KindGroup,
						NaturalKey: cfg.Group.Name,
						Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
							g, err := u.Port.GetGroup(ctx, realm, cfg.Group.Name)
							if err != nil || g == nil {
								return nil, err
							}
							return &model.RemoteResource{Kind: model.KindGroup, NaturalKey: cfg.Group.Name, RemoteID: g.ID}, nil
						},
						Create: func(ctx context.Context) (*model.RemoteResource, error) {
							g, err := u.Port.CreateGroup(ctx, realm, model.Group{
								Name: cfg.Group.Name,
								Attributes: map[string][]string{
									cfg.Scope.ClaimName: {ids[idTenant]},
									"company_name":      {cfg.Group.CompanyName},
								},
							})
							if err != nil {
								return nil, err
							}
							return &model.RemoteResource{Kind: model.KindGroup, NaturalKey: cfg.Group.Name, RemoteID: g.ID}, nil
						},
					})
					if err != nil {
						return nil, err
					}
					return &StepResult{
						Status:   status,
						Resource: res,
						Produced: Identifiers{idGroup: res.RemoteID},
					}, nil
				},
			},
			Step{
				Name:     "add-user-to-group",
				Consumes: []string{idSession, idUser, idGroup},
				Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
					if err := u.Port.AddUserToGroup(ctx, realm, ids[idUser], ids[idGroup]); err != nil {
						return nil, err
					}
					return &StepResult{
						Status: model.StatusCreated,
						Detail: fmt.Sprintf("user added to group %s", cfg.Group.Name),
					}, nil
				},
			},
		)
	}

	steps = append(steps, Step{
		Name:     "assign-realm-roles",
		Consumes: []string{idSession, idUser, idRoles},
		Run: func(ctx context.Context, ids Identifiers) (*StepResult, error) {
			return u.assignRealmRoles(ctx, cfg, ids[idUser])
		},
	})

	return &Pipeline{Steps: steps}
}

// ensureRealmRoles reconciles every configured realm role. The aggregate
// status is Created when any role was created, ConflictExists when any
// create conflicted, Found otherwise.
func (u *UseCase) ensureRealmRoles(ctx context.Context, cfg *iamopscfg.Config) (*StepResult, error) {
	var created, conflicted int
	details := make([]string, 0, len(cfg.Roles.Names))
	for _, name := range cfg.Roles.Names {
		_, status, err := Ensure(ctx, EnsureSpec{
			Kind:       model.KindRealmRole,
			NaturalKey: name,
			Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
				r, err := u.Port.GetRealmRole(ctx, cfg.Realm, name)
				if err != nil || r == nil {
					return nil, err
				}
				return &model.RemoteResource{Kind: model.KindRealmRole, NaturalKey: name, RemoteID: r.ID}, nil
			},
			Create: func(ctx context.Context) (*model.RemoteResource, error) {
				err := u.Port.CreateRealmRole(ctx, cfg.Realm, model.Role{
					Name:        name,
					Description: cfg.RoleDescription(name),
				})
				if err != nil {
					return nil, err
				}
				return &model.RemoteResource{Kind: model.KindRealmRole, NaturalKey: name}, nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
		switch status {
		case model.StatusCreated:
			created++
		case model.StatusConflictExists:
			conflicted++
		}
		details = append(details, fmt.Sprintf("%s:%s", name, status))
	}

	status := model.StatusFound
	if created > 0 {
		status = model.StatusCreated
	} else if conflicted > 0 {
		status = model.StatusConflictExists
	}
	return &StepResult{
		Status:   status,
		Detail:   strings.Join(details, " "),
		Produced: Identifiers{idRoles: strings.Join(cfg.Roles.Names, ",")},
	}, nil
}

// ensureProtocolMappers reconciles the mappers the selected style needs on
// the tenant claim scope.
func (u *UseCase) ensureProtocolMappers(ctx context.Context, cfg *iamopscfg.Config, style Style, scopeID string) (*StepResult, error) {
	mappers := []model.MapperSpec{}
	if style.group() {
		mappers = append(mappers, model.MapperSpec{
			Name:      cfg.Scope.GroupMapperName,
			Type:      "oidc-group-membership-mapper",
			ClaimName: "groups",
			FullPath:  false,
		})
	}
	mappers = append(mappers, model.MapperSpec{
		Name:          cfg.Scope.MapperName,
		Type:          "oidc-usermodel-attribute-mapper",
		UserAttribute: cfg.Scope.ClaimName,
		ClaimName:     cfg.Scope.ClaimName,
	})

	var created, conflicted int
	details := make([]string, 0, len(mappers))
	for _, m := range mappers {
		spec := m
		_, status, err := Ensure(ctx, EnsureSpec{
			Kind:       model.KindProtocolMapper,
			NaturalKey: spec.Name,
			Lookup: func(ctx context.Context) (*model.RemoteResource, error) {
				return u.Port.GetProtocolMapper(ctx, cfg.Realm, scopeID, spec.Name)
			},
			Create: func(ctx context.Context) (*model.RemoteResource, error) {
				return u.Port.CreateProtocolMapper(ctx, cfg.Realm, scopeID, spec)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("mapper %s: %w", spec.Name, err)
		}
		switch status {
		case model.StatusCreated:
			created++
		case model.StatusConflictExists:
			conflicted++
		}
		details = append(details, fmt.Sprintf("%s:%s", spec.Name, status))
	}

	status := model.StatusFound
	if created > 0 {
		status = model.StatusCreated
	} else if conflicted > 0 {
		status = model.StatusConflictExists
	}
	return &StepResult{Status: status, Detail: strings.Join(details, " ")}, nil
}

// assignRealmRoles resolves the full configured role set by name and maps
// it onto the user in one batch. Roles reconciled earlier in the run are
// re-fetched so the payload carries their remote ids regardless of whether
// they were found, created, or conflicted.
func (u *UseCase) assignRealmRoles(ctx context.Context, cfg *iamopscfg.Config, userID string) (*StepResult, error) {
	roles := make([]model.Role, 0, len(cfg.Roles.Names))
	for _, name := range cfg.Roles.Names {
		r, err := u.Port.GetRealmRole(ctx, cfg.Realm, name)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
		if r == nil {
			return nil, fmt.Errorf("role %s: %w", name, model.ErrNotFound)
		}
		roles = append(roles, *r)
	}
	if err := u.Port.AddUserRealmRoles(ctx, cfg.Realm, userID, roles); err != nil {
		return nil, err
	}
	return &StepResult{
		Status: model.StatusCreated,
		Detail: "roles assigned: " + strings.Join(cfg.Roles.Names, ", "),
	}, nil
}

// runRecord converts a pipeline result into a persistable run record.
func runRecord(cfg *iamopscfg.Config, tenantID string, startedAt time.Time, result *Result) *model.Run {
	run := &model.Run{
		Workflow:   "provision",
		Realm:      cfg.Realm,
		ClientID:   cfg.Client.ClientID,
		UserEmail:  cfg.UserEmailOrDefault(),
		TenantID:   tenantID,
		OK:         result.OK,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	for _, sr := range result.Steps {
		step := model.RunStep{Name: sr.Name, Status: sr.Status, Detail: sr.Detail}
		if sr.Resource != nil {
			step.Kind = sr.Resource.Kind
			step.NaturalKey = sr.Resource.NaturalKey
			step.RemoteID = sr.Resource.RemoteID
		}
		run.Steps = append(run.Steps, step)
	}
	return run
}
