package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	orgService "github.com/phoenixpgs/guardian-api/internal/service/organization"
)

const (
	HeaderXOrganizationID = "X-Organization-ID"
	ContextOrganization   = "organization"
	ContextOrganizationID = "organizationID"
)

type TenantConfig struct {
	CacheDuration   time.Duration
	CleanupInterval time.Duration
	RequireTenant   bool
}

func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		CacheDuration:   15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
		RequireTenant:   false,
	}
}

// TenantMiddleware resolves the caller's organization from the
// X-Organization-ID header, which carries either the organization UUID or
// its short code. Resolved organizations are cached.
type TenantMiddleware struct {
	orgs   orgService.OrganizationServicer
	cache  *cache.Cache
	config TenantConfig
}

func NewTenantMiddleware(orgs orgService.OrganizationServicer, config TenantConfig) *TenantMiddleware {
	return &TenantMiddleware{
		orgs:   orgs,
		cache:  cache.New(config.CacheDuration, config.CleanupInterval),
		config: config,
	}
}

func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.GetHeader(HeaderXOrganizationID)
		if ref == "" {
			if m.config.RequireTenant {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("organization ID is required"))
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if cached, found := m.cache.Get(ref); found {
			org := cached.(*model.Organization)
			c.Set(ContextOrganization, org)
			c.Set(ContextOrganizationID, org.ID.String())
			c.Next()
			return
		}

		org, err := m.resolve(c, ref)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown organization"))
			c.Abort()
			return
		}

		m.cache.Set(ref, org, cache.DefaultExpiration)
		c.Set(ContextOrganization, org)
		c.Set(ContextOrganizationID, org.ID.String())
		c.Next()
	}
}

func (m *TenantMiddleware) resolve(c *gin.Context, ref string) (*model.Organization, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return m.orgs.Get(c.Request.Context(), id)
	}
	return m.orgs.GetByCode(c.Request.Context(), ref)
}
