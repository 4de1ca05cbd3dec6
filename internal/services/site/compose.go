package site

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/voicebridge/internal/services/site/module"
)

// compose mounts modules on a root mux, rejecting duplicate prefixes.
func compose(deps module.Dependencies, modules []module.Module) (*http.ServeMux, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	for _, feature := range modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefix, err := resolveMount(feature, deps)
		if err != nil {
			return nil, err
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, mount.Handler)
		// Serve the bare path too instead of redirecting it to the subtree.
		if bare := strings.TrimSuffix(prefix, "/"); bare != "" {
			root.Handle(bare, mount.Handler)
		}
	}
	return root, nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
