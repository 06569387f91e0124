// Package authz decides what an authenticated user may do.
//
// Decisions come from a casbin policy table (policy.csv) keyed by role,
// action and scope. Scope "own" grants the action only on issues the
// caller reported.
package authz

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"cityhelp-be/errs"
	"cityhelp-be/models"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

type Action string

const (
	UpdateStatus  Action = "issue:update_status"
	UpdateNotes   Action = "issue:update_notes"
	AssignIssue   Action = "issue:assign"
	DeleteIssue   Action = "issue:delete"
	ListAllIssues Action = "issue:list_all"
	ListUsers     Action = "user:list"
	UpdateRole    Action = "user:update_role"
)

var denials = map[Action]string{
	DeleteIssue: "Not authorized to delete this issue",
}

const adminRequired = "Access denied. Admin role required."

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns nil when allowed, otherwise a Forbidden error carrying Reason.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return errs.Forbidden(d.Reason)
}

type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// New loads the embedded model and policy.
func New() (*Authorizer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}
	if err := loadPolicy(e, embeddedPolicy); err != nil {
		return nil, err
	}
	return &Authorizer{enforcer: e}, nil
}

func loadPolicy(e *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] != "p" || len(parts) != 4 {
			return fmt.Errorf("malformed policy line %q", line)
		}
		if _, err := e.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
			return fmt.Errorf("add policy %v: %w", parts[1:], err)
		}
	}
	return nil
}

// Decide reports whether user may perform act. issue is the target for
// issue-scoped actions and may be nil otherwise.
func (a *Authorizer) Decide(user *models.User, act Action, issue *models.Issue) Decision {
	if user == nil {
		return Decision{Reason: "User not authenticated"}
	}

	allowed, err := a.enforcer.Enforce(string(user.Role), string(act), strconv.FormatBool(IsOwner(user, issue)))
	if err != nil {
		return Decision{Reason: "authorization check failed"}
	}
	if allowed {
		return Decision{Allowed: true}
	}
	if msg, ok := denials[act]; ok {
		return Decision{Reason: msg}
	}
	return Decision{Reason: adminRequired}
}

func IsAdmin(user *models.User) bool {
	return user.IsAdmin()
}

// IsOwner reports whether user reported issue.
func IsOwner(user *models.User, issue *models.Issue) bool {
	return user != nil && issue != nil && !user.ID.IsZero() && user.ID == issue.ReportedBy
}
