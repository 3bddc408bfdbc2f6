// Package engine runs one model assembly: it enumerates the geometry,
// converts units, builds every section and returns the configuration
// record, the model document and the output names. It reads templates but
// writes nothing.
package engine
