package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/catalog-service/cmd/api/pkgerrors"
)

type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

const (
	subjectAnonymous     = "anonymous"
	subjectAuthenticated = "authenticated"
	objectBook           = "book"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// DefaultRules lets everybody read the catalog and only employees change it.
var DefaultRules = [][]string{
	{subjectAnonymous, objectBook, string(OperationRead)},
	{subjectAuthenticated, objectBook, string(OperationRead)},
	{RoleEmployee, objectBook, string(OperationCreate)},
	{RoleEmployee, objectBook, string(OperationUpdate)},
	{RoleEmployee, objectBook, string(OperationDelete)},
}

type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

/* Builds the catalog access policy on top of a casbin enforcer loaded with the given rules. */
func NewPolicy(rules [][]string) (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("loading policy model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("creating policy enforcer: %w", err)
	}

	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("adding policy rules: %w", err)
		}
	}

	return &Policy{enforcer: enforcer}, nil
}

func NewDefaultPolicy() (*Policy, error) {
	return NewPolicy(DefaultRules)
}

/* Decides whether the caller may perform op on the catalog. Denials come back as
ErrResponseUnauthenticated for anonymous callers and ErrResponseForbidden otherwise. */
func (p *Policy) Authorize(caller *Identity, op Operation) error {
	for _, sub := range subjects(caller) {
		allowed, err := p.enforcer.Enforce(sub, objectBook, string(op))
		if err != nil {
			return fmt.Errorf("enforcing policy: %w", err)
		}
		if allowed {
			return nil
		}
	}

	if caller == nil {
		return fmt.Errorf("authorizing %s: %w", op, pkgerrors.ErrResponseUnauthenticated)
	}
	return fmt.Errorf("authorizing %s for %s: %w", op, caller.Username, pkgerrors.ErrResponseForbidden)
}

func subjects(caller *Identity) []string {
	if caller == nil {
		return []string{subjectAnonymous}
	}
	subs := make([]string, 0, len(caller.Roles)+1)
	subs = append(subs, subjectAuthenticated)
	subs = append(subs, caller.Roles...)
	return subs
}
