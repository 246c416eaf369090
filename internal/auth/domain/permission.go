// Package domain defines the access control model: permissions carried by
// bearer tokens and the identity decoded from a verified token.
package domain

// Permission names an action on a resource type, e.g. "post:movies".
type Permission string

// Endpoint permissions.
const (
	GetMovies    Permission = "get:movies"
	PostMovies   Permission = "post:movies"
	PatchMovies  Permission = "patch:movies"
	DeleteMovies Permission = "delete:movies"

	GetActors    Permission = "get:actors"
	PostActors   Permission = "post:actors"
	PatchActors  Permission = "patch:actors"
	DeleteActors Permission = "delete:actors"
)

// String returns the permission as a plain string.
func (p Permission) String() string {
	return string(p)
}

// AllPermissions lists every endpoint permission.
var AllPermissions = []Permission{
	GetMovies, PostMovies, PatchMovies, DeleteMovies,
	GetActors, PostActors, PatchActors, DeleteActors,
}
