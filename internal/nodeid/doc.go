// internal/nodeid/doc.go

/*
Package nodeid provides the identity types of the dependency graph.

An Identity is a (package name, version) pair whose canonical string form is
`name@version`, e.g. `left-pad@1.3.0` or `@types/node@20.1.0`. The canonical
form is used as the key of every graph and index in the system.

A Spec is a dependency as declared by a package's metadata. Its version is
whatever string the metadata carried (possibly a range like `^1.2.0`) and is
never resolved or compared semantically: `1.0` and `1.0.0` are different
identities.
*/
package nodeid
