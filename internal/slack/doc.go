// Package slack maps the gateway's Slack wire shapes (workspaces and
// conversations) into the generic collection-scope model. Slack differs from
// Discord only in its record shapes; the inheritance and toggle rules are the
// shared ones from the scope package.
package slack
