package api

import (
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc mounts an area's routes on the authenticated /api group.
// Each api/<area> package registers one from init().
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc mounts routes on the root Echo instance, outside auth
// (health, metrics, extension endpoints).
type RouteFunc func(e *echo.Echo, db *gorm.DB)

func getModules() []ModuleFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryAPI); ok && v != nil {
		return v.([]ModuleFunc)
	}
	return nil
}

func getRoutes() []RouteFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]RouteFunc)
	}
	return nil
}

// RegisterModule queues an /api area module. Panics after ApplyModules has run.
func RegisterModule(fn ModuleFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryAPI) {
		panic("api/registry: API modules locked (register only during init)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryAPI, append(getModules(), fn))
}

// ApplyModules mounts every registered area on the /api group and locks the
// module registry.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	for _, fn := range getModules() {
		fn(g, db)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
}

// RegisterRoute queues a root-level route module. Panics after ApplyRoutes.
func RegisterRoute(fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("api/registry: routes locked (register only during init)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, append(getRoutes(), fn))
}

// RegisterGET queues a single public GET handler.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *gorm.DB) {
		e.GET(path, handler)
	})
}

// RegisterPOST queues a single public POST handler.
func RegisterPOST(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *gorm.DB) {
		e.POST(path, handler)
	})
}

// ApplyRoutes mounts every registered root-level route and locks the registry.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) {
	for _, fn := range getRoutes() {
		fn(e, db)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}
