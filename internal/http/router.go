package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/products-api/internal/http/controller"
	"github.com/iyhunko/products-api/internal/http/middleware"
	"github.com/iyhunko/products-api/internal/http/route"
)

// InitRouter installs the middleware chain and registers a handler for every entry of the route table.
func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController) (*gin.Engine, error) {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery(), middleware.Logger(), middleware.Metrics(), middleware.CORS())

	handlers := map[route.Name]gin.HandlerFunc{
		route.HealthPing:     ctr.Ping,
		route.ProductsList:   productCtr.ListProducts,
		route.ProductsCreate: productCtr.CreateProduct,
		route.ProductsGet:    productCtr.GetProduct,
		route.ProductsUpdate: productCtr.UpdateProduct,
		route.ProductsDelete: productCtr.DeleteProduct,
	}

	for _, r := range route.Table() {
		handler, ok := handlers[r.Name]
		if !ok {
			return nil, fmt.Errorf("no handler for route %s", r.Name)
		}
		server.Handle(r.Method, r.Path, handler)
		delete(handlers, r.Name)
	}
	for name := range handlers {
		return nil, fmt.Errorf("handler for unknown route %s", name)
	}

	return server, nil
}
