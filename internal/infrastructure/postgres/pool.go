package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-admin/pkg/config"
)

// Límites del pool cuando DB_MAX_CONNS no está definido.
const (
	defaultMaxConns     = 20
	defaultMinConns     = 2
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultHealthCheck  = time.Minute
	fallbackDNSServer   = "8.8.8.8:53"
	defaultPostgresPort = "5432"
	ipv4LookupTimeout   = 3 * time.Second
)

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool abre el pool de PostgreSQL, registra el codec NUMERIC -> decimal.Decimal
// (precios y costos) y verifica la conexión con un ping.
// Con cfg.ForceIPv4 el host se resuelve a IPv4 tanto en el DSN como en cada dial.
// appName se reporta como application_name en pg_stat_activity.
func NewPool(ctx context.Context, cfg config.DBConfig, appName string) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = withIPv4Host(ctx, dsn)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolCfg.ConnConfig.DialFunc = dialIPv4
	}
	if appName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = appName
	}

	poolCfg.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = min(defaultMinConns, poolCfg.MaxConns)
	poolCfg.MaxConnLifetime = defaultConnLifetime
	poolCfg.MaxConnIdleTime = defaultConnIdleTime
	poolCfg.HealthCheckPeriod = defaultHealthCheck

	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4 conecta por tcp4; si el host no tiene IPv4 cae al dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// withIPv4Host reescribe el host de un DSN en formato URL. Los DSN key=value y los hosts
// sin IPv4 se devuelven sin cambios.
func withIPv4Host(ctx context.Context, dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = defaultPostgresPort
	}
	ip, err := lookupIPv4(ctx, u.Hostname())
	if err != nil {
		return dsn
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

// lookupIPv4 usa el resolver del sistema y, si no devuelve A records (DNS de Docker
// con solo AAAA), un resolver público.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", errNoIPv4
	}
	ctx, cancel := context.WithTimeout(ctx, ipv4LookupTimeout)
	defer cancel()

	if ip, err := firstIPv4(ctx, net.DefaultResolver, host); err == nil {
		return ip, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", fallbackDNSServer)
		},
	}
	return firstIPv4(ctx, public, host)
}

func firstIPv4(ctx context.Context, r *net.Resolver, host string) (string, error) {
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", errNoIPv4
}
