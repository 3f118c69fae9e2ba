package service

import (
	"fmt"
	"strings"
)

// RolePrefix marks an authority as the principal's role rather than a scope.
const RolePrefix = "ROLE_"

// PartitionAuthorities splits authorities into the single role and the
// remaining scopes. Scopes keep their order and duplicates. Exactly one role
// with a non-empty name is required, anything else is a configuration error.
func PartitionAuthorities(authorities []string) (string, []string, error) {
	var roles []string
	scopes := make([]string, 0, len(authorities))

	for _, a := range authorities {
		if strings.HasPrefix(a, RolePrefix) {
			if a == RolePrefix {
				return "", nil, fmt.Errorf("%w: %q has no role name", ErrNoRoleAssigned, a)
			}
			roles = append(roles, a)
			continue
		}
		scopes = append(scopes, a)
	}

	switch len(roles) {
	case 0:
		return "", nil, ErrNoRoleAssigned
	case 1:
		return roles[0], scopes, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrAmbiguousRole, strings.Join(roles, ", "))
	}
}
