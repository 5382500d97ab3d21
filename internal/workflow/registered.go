package workflow

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
)

// Registered lists the confirmed registrations of the signed-in user.
func Registered(ctx context.Context, api gateway.Requester) ([]models.RegistrationRecord, error) {
	var resp models.RegisteredResponse
	if err := api.DoAuth(ctx, http.MethodGet, "/users/registered", nil, &resp); err != nil {
		if errors.Is(err, gateway.ErrNoCredential) {
			return nil, &Redirect{To: Landing, Reason: err.Error()}
		}
		return nil, err
	}
	return resp.RegisteredDetails, nil
}
