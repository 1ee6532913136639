package pulseboard

// Module names checked against a tenant's allowedModules list.
const (
	ModuleDashboards  = "dashboards"
	ModuleKPIs        = "kpis"
	ModuleDataSources = "datasources"
	ModuleUsers       = "users"
	ModuleSettings    = "settings"
)

// AllModules returns every known module name, the default allowance for a
// fresh tenant.
func AllModules() []string {
	return []string{
		ModuleDashboards,
		ModuleKPIs,
		ModuleDataSources,
		ModuleUsers,
		ModuleSettings,
	}
}
