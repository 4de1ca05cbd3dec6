// Package modules lists the site's feature modules.
package modules

import (
	"github.com/louisbranch/voicebridge/internal/services/site/module"
	"github.com/louisbranch/voicebridge/internal/services/site/modules/contact"
	"github.com/louisbranch/voicebridge/internal/services/site/modules/pages"
)

// Default returns the modules mounted by the site server.
func Default() []module.Module {
	return []module.Module{
		pages.New(),
		contact.New(),
	}
}
