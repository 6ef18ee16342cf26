// Package staticcopy is the reporter that copies static files into build
// output directories once a build succeeds.
//
// A reaction processes the staticFiles entries of package.json strictly in
// order. For each entry the environment gate is checked, destinations are
// computed, the source is inspected, and the copy engine runs once per
// destination. The first error aborts the whole reaction; entries that
// already ran keep their output. Entries writing the same destination
// overwrite each other in order without any warning.
package staticcopy
