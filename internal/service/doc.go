// Package service contains the business logic for the Haven API.
//
// Services sit between handlers and repositories. Each service declares
// the repository interfaces it needs, takes them through a config struct,
// and returns the sentinel errors defined in errors.go; handlers translate
// those into HTTP problem responses.
//
// # Invite admission
//
// InviteService.Join is the admission pipeline: the actor is screened
// (bot check, server quota) before the invite is even resolved, then the
// resolved invite dispatches on its kind. Server joins write membership
// and read the channel list in one transaction; group joins append the
// actor to the recipient list and project the other participants into
// actor-relative views, fetched concurrently with a bounded errgroup.
//
// # Invite references
//
// InviteRef is a lazy, caching handle on an invite identifier. Successful
// resolutions are pinned so repeated Resolve calls are cheap; failures
// are never pinned.
package service
