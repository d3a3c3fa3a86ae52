// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("expr", "Expression graph compilation and rewriting")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
