package rbac

const modelText = `
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

// DefaultPolicies is the role matrix the service boots with. Staff is a
// grouping role shared by admins and employees.
var DefaultPolicies = []Policy{
	{Role: "admin", Resource: "visit", Action: "assign"},
	{Role: "admin", Resource: "user", Action: "read"},
	{Role: "admin", Resource: "reconcile", Action: "run"},

	{Role: "employee", Resource: "attendance", Action: "write"},

	{Role: "staff", Resource: "attendance", Action: "read"},
	{Role: "staff", Resource: "visit", Action: "read"},
	{Role: "admin", Resource: "image", Action: "read"},

	{Role: "client", Resource: "visit", Action: "read"},
	{Role: "client", Resource: "image", Action: "read"},
}

var defaultGroups = [][]string{
	{"admin", "staff"},
	{"employee", "staff"},
}
