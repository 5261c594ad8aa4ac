package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/model"
)

var _ model.IdentityAdmin = (*Admin)(nil)

// Admin calls the provider's privileged endpoints. Its Config.APIKey must
// be the service-role key.
type Admin struct {
	client *Client
}

// NewAdmin creates an admin client.
func NewAdmin(cfg Config) (*Admin, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("service role key is required")
	}
	client, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Admin{client: client}, nil
}

type listUsersResponse struct {
	Users []userPayload `json:"users"`
}

// ListIdentities returns one page of identities. Pages start at 1.
func (a *Admin) ListIdentities(ctx context.Context, page, perPage int) ([]model.Identity, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var resp listUsersResponse
	if err := a.client.do(ctx, "list users", http.MethodGet, "/auth/v1/admin/users", query, "", nil, &resp); err != nil {
		return nil, err
	}

	identities := make([]model.Identity, 0, len(resp.Users))
	for _, u := range resp.Users {
		identity, err := u.identity()
		if err != nil {
			return nil, fmt.Errorf("failed to read identity list: %w", err)
		}
		identities = append(identities, identity)
	}

	return identities, nil
}

// DeleteIdentity removes an identity. Deleting an unknown identity succeeds.
func (a *Admin) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	err := a.client.do(ctx, "delete user", http.MethodDelete, "/auth/v1/admin/users/"+id.String(), nil, "", nil, nil)
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Status == http.StatusNotFound {
		return nil
	}
	return err
}
