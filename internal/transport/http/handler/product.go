package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/feature/product"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type ProductModule struct {
	d        *dispatch.Dispatcher
	defaults config.Catalog
}

func NewProductModule(d *dispatch.Dispatcher, defaults config.Catalog) *ProductModule {
	return &ProductModule{d: d, defaults: defaults}
}

func (m *ProductModule) Priority() int { return 20 }

// MountAPI mounts the anonymous catalog reads.
func (m *ProductModule) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, m.d, ez.Action[product.ListProductsQuery, domain.PagedResult[product.ProductResponse]]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindQuery,
		Prepare: func(c *gin.Context, in *product.ListProductsQuery) error {
			// absent means default; an explicit 0 still fails validation
			if _, ok := c.GetQuery("pageNumber"); !ok {
				in.PageNumber = 1
			}
			if _, ok := c.GetQuery("pageSize"); !ok {
				in.PageSize = m.defaults.DefaultPageSize
			}
			return nil
		},
		Render: func(p domain.PagedResult[product.ProductResponse]) any {
			return gin.H{
				"items":      p.Items,
				"pageNumber": p.PageNumber,
				"pageSize":   p.PageSize,
				"totalCount": p.TotalCount,
				"totalPages": p.TotalPages(),
			}
		},
	})

	ez.RegisterAction(e, m.d, ez.Action[product.SearchProductsQuery, []product.ProductResponse]{
		Method: http.MethodGet,
		Path:   "/products/search",
		Binder: ez.BindQuery,
		Prepare: func(_ *gin.Context, in *product.SearchProductsQuery) error {
			in.Keyword = strings.TrimSpace(in.Keyword)
			if in.Keyword == "" {
				return ez.BadRequest("keyword is required")
			}
			return nil
		},
	})

	ez.RegisterAction(e, m.d, ez.Action[product.GetProductByIDQuery, product.ProductResponse]{
		Method: http.MethodGet,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Prepare: func(c *gin.Context, in *product.GetProductByIDQuery) error {
			id, err := ez.ParamUUID(c, "id")
			in.ID = id
			return err
		},
	})
}

// MountAdmin mounts catalog writes and the low-stock report. The group is
// expected to carry AuthJWT; Roles repeats the check per action.
func (m *ProductModule) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin)
	roles := []string{domain.RoleAdmin}

	ez.RegisterAction(e, m.d, ez.Action[product.CreateProductCommand, uuid.UUID]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: ez.BindJSON,
		Auth:   true,
		Roles:  roles,
		Render: func(id uuid.UUID) any { return gin.H{"id": id} },
	})

	ez.RegisterAction(e, m.d, ez.Action[product.UpdateProductCommand, dispatch.Unit]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Roles:  roles,
		Prepare: func(c *gin.Context, in *product.UpdateProductCommand) error {
			id, err := ez.ParamUUID(c, "id")
			in.ID = id
			return err
		},
	})

	ez.RegisterAction(e, m.d, ez.Action[product.DeleteProductCommand, dispatch.Unit]{
		Method: http.MethodDelete,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  roles,
		Prepare: func(c *gin.Context, in *product.DeleteProductCommand) error {
			id, err := ez.ParamUUID(c, "id")
			in.ID = id
			return err
		},
	})

	ez.RegisterAction(e, m.d, ez.Action[product.LowStockProductsQuery, []product.ProductResponse]{
		Method: http.MethodGet,
		Path:   "/products/low-stock",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  roles,
		Prepare: func(c *gin.Context, in *product.LowStockProductsQuery) error {
			if _, ok := c.GetQuery("threshold"); !ok {
				in.Threshold = m.defaults.LowStockThreshold
			}
			return nil
		},
	})
}
