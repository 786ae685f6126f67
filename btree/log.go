package btree

import "github.com/sirupsen/logrus"

// log is the package-level logger used to report corruption encountered
// during reads. It never aborts a query on its own; see errors.go and the
// error handling design in SPEC_FULL.md §7.
var log = logrus.StandardLogger()
