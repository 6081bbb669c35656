package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Resolver turns a request credential into a stable participant identity.
// Unresolvable credentials fail with domain.ErrUnauthenticated.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (domain.Identity, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, credential string) (domain.Identity, error)

// Resolve calls f(ctx, credential)
func (f ResolverFunc) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	return f(ctx, credential)
}

// HeaderResolver trusts the credential itself, formatted "<id>" or "<id>:<display name>".
// Only for deployments behind an upstream that authenticates and rewrites the header.
type HeaderResolver struct{}

// NewHeaderResolver creates a resolver for trusted upstream credentials
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{}
}

func (HeaderResolver) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, domain.ErrUnauthenticated)
	}

	id, name, _ := strings.Cut(credential, CredentialSeparator)
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxIdentityIDLength {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, domain.ErrUnauthenticated)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = id
	}
	return domain.Identity{ID: id, DisplayName: name}, nil
}
