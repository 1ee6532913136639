// Command pulseboardd is the pulseboard daemon. It serves the tenant,
// organization, user, data source and KPI APIs over HTTP backed by a single
// boltdb file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/pulseboard/pulseboard/authorizer"
	"github.com/pulseboard/pulseboard/bolt"
	"github.com/pulseboard/pulseboard/datasource"
	pulseboardhttp "github.com/pulseboard/pulseboard/http"
	"github.com/pulseboard/pulseboard/jsonweb"
	"github.com/pulseboard/pulseboard/kit/cli"
	"github.com/pulseboard/pulseboard/kpi"
	"github.com/pulseboard/pulseboard/logger"
	"github.com/pulseboard/pulseboard/tenant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var flags struct {
		boltPath    string
		bindAddr    string
		probeAddr   string
		tokenSecret string
		logLevel    zapcore.Level
		logFormat   string
	}

	prog := &cli.Program{
		Name: "pulseboardd",
		Opts: []cli.Opt{
			cli.NewOpt(&flags.boltPath, "bolt-path", defaultBoltPath(), "path to the boltdb database file"),
			cli.NewOpt(&flags.bindAddr, "http-bind-address", ":8080", "bind address for the HTTP API"),
			cli.NewOpt(&flags.probeAddr, "probe-addr", "http://localhost:9090", "address of the connection probe service"),
			cli.NewOpt(&flags.tokenSecret, "session-token-secret", "", "shared secret used to verify session tokens"),
			cli.NewOpt(&flags.logLevel, "log-level", zapcore.InfoLevel, "supported log levels are debug, info, warn and error"),
			cli.NewOpt(&flags.logFormat, "log-format", "auto", "log output format, one of auto, logfmt, json or console"),
		},
	}
	prog.Run = func() error {
		logConf := logger.NewConfig()
		logConf.Level = flags.logLevel
		logConf.Format = flags.logFormat
		log, err := logConf.New(os.Stdout)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return run(ctx, log, runConfig{
			boltPath:    flags.boltPath,
			bindAddr:    flags.bindAddr,
			probeAddr:   flags.probeAddr,
			tokenSecret: flags.tokenSecret,
		})
	}

	if err := cli.NewCommand(prog).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runConfig struct {
	boltPath    string
	bindAddr    string
	probeAddr   string
	tokenSecret string
}

func run(ctx context.Context, log *zap.Logger, conf runConfig) error {
	kvStore := bolt.NewKVStore(conf.boltPath)
	kvStore.WithLogger(log.With(zap.String("store", "bolt")))
	if err := kvStore.Open(ctx); err != nil {
		return err
	}
	defer kvStore.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tenantStore, err := tenant.NewStore(kvStore)
	if err != nil {
		return err
	}
	tenantSvc := tenant.NewService(tenantStore)

	dsStore, err := datasource.NewStore(kvStore)
	if err != nil {
		return err
	}
	dsSvc := datasource.NewService(dsStore,
		datasource.NewHTTPConnectionTester(conf.probeAddr),
		datasource.WithLogger(log.With(zap.String("service", "datasource"))),
	)

	kpiStore, err := kpi.NewStore(kvStore)
	if err != nil {
		return err
	}
	kpiSvc := kpi.NewService(kpiStore, dsSvc)

	// Observability wraps the raw services, then the gate wraps the
	// observed services so denied calls are still visible in the metrics.
	tenants := tenant.NewTenantMetrics(reg, tenant.NewTenantLogger(log, tenantSvc))
	orgs := tenant.NewOrgMetrics(reg, tenant.NewOrgLogger(log, tenantSvc))
	users := tenant.NewUserMetrics(reg, tenant.NewUserLogger(log, tenantSvc))
	invitations := tenant.NewInvitationMetrics(reg, tenant.NewInvitationLogger(log, tenantSvc))
	sources := datasource.NewMetrics(reg, datasource.NewLogger(log, dsSvc))
	kpis := kpi.NewMetrics(reg, kpi.NewLogger(log, kpiSvc))

	gate := authorizer.NewGate(tenants, orgs, users)

	handler := pulseboardhttp.NewAPIHandler(log, reg, pulseboardhttp.Handlers{
		TenantHandler:     tenant.NewHTTPTenantHandler(log, authorizer.NewTenantService(gate, tenants)),
		OrgHandler:        tenant.NewHTTPOrgHandler(log, authorizer.NewOrgService(gate, orgs)),
		UserHandler:       tenant.NewHTTPUserHandler(log, authorizer.NewUserService(gate, users)),
		InvitationHandler: tenant.NewHTTPInvitationHandler(log, authorizer.NewInvitationService(gate, invitations)),
		DataSourceHandler: datasource.NewHTTPDataSourceHandler(log, authorizer.NewDataSourceService(gate, sources)),
		KPIHandler:        kpi.NewHTTPKPIHandler(log, authorizer.NewKPIService(gate, kpis)),
	}, pulseboardhttp.WithSessionMiddleware(
		pulseboardhttp.SessionMiddleware(log, jsonweb.NewTokenParser(keyStore(conf.tokenSecret))),
	))

	srv := pulseboardhttp.NewServer(log.With(zap.String("service", "http")), handler)
	return srv.Serve(ctx, conf.bindAddr)
}

// keyStore returns a key store resolving every key ID to the shared secret,
// or the empty store when no secret is configured.
func keyStore(secret string) jsonweb.KeyStore {
	if secret == "" {
		return jsonweb.EmptyKeyStore
	}
	return jsonweb.KeyStoreFunc(func(string) ([]byte, error) {
		return []byte(secret), nil
	})
}

func defaultBoltPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "pulseboard.bolt"
	}
	return dir + "/.pulseboard/pulseboard.bolt"
}
