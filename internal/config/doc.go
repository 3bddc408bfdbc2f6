// Package config defines the format-agnostic setup table, which names the
// template files used for every (method, time, geometry, model) combination,
// along with the Loader interface for reading it from a concrete format.
//
// Concrete loaders, such as the HCL one, live in separate packages.
package config
