// Package config loads and validates the run configuration: which package to
// start from, where its metadata lives and how deep to traverse.
//
// The configuration is a flat document of a handful of keys:
//
//	package_name    = "A"
//	package_version = "1.0"
//	repo_mode       = "local"            # or "remote"
//	repository_url  = "snapshot.json"    # snapshot path, or registry base URL
//	max_depth       = 2
//
// Documents are read by a format-specific Loader chosen from the file
// extension: HCL native syntax (`.hcl`, `.conf`), HCL JSON syntax (`.json`),
// TOML (`.toml`) and YAML (`.yaml`, `.yml`). Values are type checked as
// written, so a quoted depth or an unquoted numeric version is an error. HCL
// documents may reference the process environment through the
// `env` object, e.g. `repository_url = "${env.REGISTRY_URL}"`.
//
// Every problem found, from syntax errors to rule violations, is reported in
// one *Error so a user can fix the whole file in one pass.
package config
