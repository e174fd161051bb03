// Package route holds the table of named HTTP endpoints. The router registers
// handlers from it and the link builder resolves hrefs from it, so a link can
// never point at a path the router doesn't serve.
package route

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Name is the symbolic name of an endpoint.
type Name string

const (
	HealthPing     Name = "health.ping"
	ProductsList   Name = "products.list"
	ProductsCreate Name = "products.create"
	ProductsGet    Name = "products.get"
	ProductsUpdate Name = "products.update"
	ProductsDelete Name = "products.delete"
)

const (
	// ParamID is the path parameter holding a product identifier.
	ParamID = "id"

	// RelSelf links a representation to itself.
	RelSelf = "self"
	// RelProducts links a representation to the product collection.
	RelProducts = "products"
)

var (
	// ErrUnknownRoute is returned when a name is not in the table.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrMissingParam is returned when a path parameter has no value.
	ErrMissingParam = errors.New("missing route parameter")
)

// Route binds a name to an HTTP method and a gin-style path template.
type Route struct {
	Name   Name
	Method string
	Path   string
}

var table = []Route{
	{Name: HealthPing, Method: http.MethodGet, Path: "/ping"},
	{Name: ProductsList, Method: http.MethodGet, Path: "/products"},
	{Name: ProductsCreate, Method: http.MethodPost, Path: "/products"},
	{Name: ProductsGet, Method: http.MethodGet, Path: "/products/:" + ParamID},
	{Name: ProductsUpdate, Method: http.MethodPut, Path: "/products/:" + ParamID},
	{Name: ProductsDelete, Method: http.MethodDelete, Path: "/products/:" + ParamID},
}

var byName = func() map[Name]Route {
	m := make(map[Name]Route, len(table))
	for _, r := range table {
		m[r.Name] = r
	}
	return m
}()

// Table returns a copy of every known route.
func Table() []Route {
	routes := make([]Route, len(table))
	copy(routes, table)
	return routes
}

// Params are the values substituted into a path template.
type Params map[string]string

// Expand resolves the path of the named route, substituting ":param" segments.
func Expand(name Name, params Params) (string, error) {
	r, ok := byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}

	segments := strings.Split(r.Path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		key := seg[1:]
		val, ok := params[key]
		if !ok || val == "" {
			return "", fmt.Errorf("%w: %s for %s", ErrMissingParam, key, name)
		}
		segments[i] = url.PathEscape(val)
	}
	return strings.Join(segments, "/"), nil
}
