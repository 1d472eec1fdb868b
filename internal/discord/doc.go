// Package discord maps the gateway's Discord wire shapes (servers and
// channels) into the generic collection-scope model and persists scope
// intents back through the gateway.
//
// Discord-specific knowledge stays here: the shape of the channel record and
// which flag marks an archived thread. All inheritance and toggle logic lives
// in the scope package.
package discord
