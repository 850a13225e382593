package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// rolePolicies is the institution's fixed permission matrix. Roles are a
// closed set here, so policies live in code rather than a tenant-editable
// store. Faculty search is deliberately absent: that endpoint answers
// disallowed roles with an empty result instead of a 403.
var rolePolicies = [][]string{
	{domain.RoleFaculty, "leave", "create"},
	{domain.RoleFaculty, "leave", "read"},
	{domain.RoleFaculty, "leave", "cancel"},
	{domain.RoleFaculty, "catalog", "read"},

	{domain.RoleHOD, "leave", "create"},
	{domain.RoleHOD, "leave", "read"},
	{domain.RoleHOD, "leave", "cancel"},
	{domain.RoleHOD, "catalog", "read"},

	{domain.RoleCentralAdmin, "leave", "create"},
	{domain.RoleCentralAdmin, "leave", "read"},
	{domain.RoleCentralAdmin, "leave", "cancel"},
	{domain.RoleCentralAdmin, "catalog", "read"},

	{domain.RoleAdmin, "leave", "create"},
	{domain.RoleAdmin, "leave", "read"},
	{domain.RoleAdmin, "leave", "cancel"},
	{domain.RoleAdmin, "catalog", "read"},
}

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
