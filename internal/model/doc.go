// Package model defines the domain entities for the Haven API.
//
// The model package contains plain data types shared across the repository,
// service, and handler layers: users, servers, channels, invites, and the
// request/response shapes derived from them. Types here carry no behavior
// beyond pure helpers (validation, projection); all I/O lives in the
// repository layer.
//
// # Invites
//
// Invite is a tagged union discriminated by Kind. Server invites reference a
// server (and optionally a channel inside it); group invites reference a
// standalone group channel. Validate enforces that exactly one variant shape
// is populated.
//
// # Relative views
//
// RelativeUserView is the only shape in which one user's account is shown to
// another. It is computed per request by User.RelativeTo and carries the
// relationship status between the pair; it is never stored.
//
// # Errors
//
// ProblemDetails implements RFC 9457 problem responses. Handlers construct
// them through the New*Error helpers so that type URLs and codes stay
// consistent across endpoints.
package model
