package inbuilt

import (
	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/static"
)

// Static serves files from root for every path starting with prefix, unless a route
// for the exact path is registered. Failures are logged into the router's logger, so
// Logger must be called before.
func (r *Router) Static(prefix, root string) *Router {
	return r.Resolver(static.New(staticConfig(prefix, root), r.logger))
}

// Resolver mounts an already constructed static resolver.
func (r *Router) Resolver(resolver *static.Resolver) *Router {
	r.mustNotBeBuilt()
	r.resolvers = append(r.resolvers, resolver)
	return r
}

func staticConfig(prefix, root string) config.Static {
	cfg := config.Default().Static
	cfg.Prefix = prefix
	cfg.Root = root

	return cfg
}
