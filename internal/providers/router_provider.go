package providers

import (
	"blueghost/internal/structures"
	"net/http"
)

// RouterProviderInterface collects routes. Get and Post routes sit behind the
// login gate; the Public variants do not.
type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	PublicGet(url string, handler http.Handler)
	PublicPost(url string, handler http.Handler)
	Fallback(handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) add(url, method string, handler http.Handler, public bool) {
	for i, route := range rp.routes {
		if route.Url == url && route.Public == public {
			rp.routes[i].Handler = mergeMethods(route.Handler, method, handler)
			return
		}
	}
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(method, handler),
		Public:  public,
	})
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler, false)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler, false)
}

func (rp *RouterProvider) PublicGet(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler, true)
}

func (rp *RouterProvider) PublicPost(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler, true)
}

// Fallback serves every method on gated paths that no other route matches.
func (rp *RouterProvider) Fallback(handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{Url: "/", Handler: handler})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

type methodMux map[string]http.Handler

func (m methodMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m[r.Method]
	if !ok {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return methodMux{method: handler}
}

// mergeMethods lets one URL serve both GET and POST (e.g. /login).
func mergeMethods(existing http.Handler, method string, handler http.Handler) http.Handler {
	mm, ok := existing.(methodMux)
	if !ok {
		return existing
	}
	merged := make(methodMux, len(mm)+1)
	for k, v := range mm {
		merged[k] = v
	}
	merged[method] = handler
	return merged
}
