package models

// Principal is the request-scoped identity view of an authenticated user.
// It is never persisted: on login it is built from the user row plus its
// resolved roles, on subsequent requests it is rebuilt from token claims.
type Principal struct {
	UserID      int64
	Username    string
	Email       string
	FullName    string
	FabrikaKod  int64
	Authorities []string

	Enabled               bool
	AccountNonExpired     bool
	CredentialsNonExpired bool
	AccountNonLocked      bool
}

// NewPrincipal assembles a Principal from a user row and its resolved roles.
// Pure function over its inputs. Assignments to inactive roles are silently
// ignored rather than treated as data corruption.
func NewPrincipal(user *User, roles []Role) *Principal {
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		if role.Active {
			authorities = append(authorities, role.RoleCode)
		}
	}

	return &Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		FabrikaKod:  user.FabrikaKod,
		Authorities: authorities,
		Enabled:     user.Active,
		// TODO: account expiry is not modeled yet; wire a real policy here
		// once t_user grows an expires_at column.
		AccountNonExpired:     true,
		CredentialsNonExpired: !user.PasswordExpired,
		AccountNonLocked:      !user.Locked,
	}
}

// PrincipalFromClaims rebuilds a Principal from parsed token claims. The
// token carries no account-state flags, so the boolean predicates take the
// values the token was issued under; freshness comes only from a new login.
func PrincipalFromClaims(claims *TokenClaims) *Principal {
	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}

	return &Principal{
		UserID:                claims.UserID,
		Username:              claims.Subject,
		Authorities:           roles,
		Enabled:               true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
	}
}

// HasAuthority reports whether the principal holds the given role code.
func (p *Principal) HasAuthority(code string) bool {
	for _, a := range p.Authorities {
		if a == code {
			return true
		}
	}
	return false
}
