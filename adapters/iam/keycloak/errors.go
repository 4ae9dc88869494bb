package keycloak

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Nerzal/gocloak/v13"
	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
)

// mapError translates a gocloak API error into the domain error taxonomy:
// 409 becomes ErrConflict, 404 becomes ErrNotFound, any other non-2xx
// becomes RemoteError. Transport errors pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *gocloak.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", model.ErrConflict, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, apiErr.Message)
	default:
		return &model.RemoteError{Status: apiErr.Code, Body: apiErr.Message}
	}
}

// isNotFound reports whether the error is a 404, either already mapped or
// straight from gocloak. Lookups use it to report absence as (nil, nil).
func isNotFound(err error) bool {
	if errors.Is(err, model.ErrNotFound) {
		return true
	}
	var apiErr *gocloak.APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
