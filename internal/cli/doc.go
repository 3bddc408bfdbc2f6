// Package cli turns the magnetsetup command line into an app.Config. Usage
// errors come back as *ExitError so main can pick the exit code.
package cli
